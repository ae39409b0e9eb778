package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/erazemk/lostfound/internal/form"
	"github.com/erazemk/lostfound/internal/imaging"
	"github.com/erazemk/lostfound/internal/query"
	"github.com/erazemk/lostfound/internal/tracker"
)

// ItemsHandler handles item endpoints.
type ItemsHandler struct {
	Tracker *tracker.Tracker
}

type createItemRequest struct {
	form.Fields
	// Image is an optional base64 data URI.
	Image string `json:"image"`
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	f := query.Filter{
		Query: r.URL.Query().Get("q"),
		Type:  query.ParseTypeFilter(r.URL.Query().Get("type")),
	}
	board, err := h.Tracker.Board(r.Context(), f)
	if err != nil {
		slog.Error("failed to list items", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	jsonResponse(w, http.StatusOK, board)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.Tracker.Item(r.Context(), r.PathValue("id"))
	if errors.Is(err, tracker.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		slog.Error("failed to get item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// maxBodyBytes bounds a create request. Base64 images are a third larger
// than the file.
var maxBodyBytes int64 = 16 << 20

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, http.StatusRequestEntityTooLarge, "request body must be under "+humanize.IBytes(uint64(tooLarge.Limit)))
			return
		}
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var src form.ImageSource
	if req.Image != "" {
		data, mimeType, err := imaging.Decode(req.Image)
		if err != nil {
			slog.Warn("image read failed, adding item without image", "error", err)
		} else {
			src = form.FromBytes(data, mimeType)
		}
	}

	ctx, rec := recordNotices(r)

	item, err := h.Tracker.Submit(ctx, req.Fields, src)
	var ve *form.ValidationError
	if errors.As(err, &ve) {
		jsonAction(w, http.StatusUnprocessableEntity, rec, actionResponse{
			Error:  "Validation failed",
			Fields: ve.Fields,
		})
		return
	}
	if err != nil {
		slog.Error("failed to create item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	jsonAction(w, http.StatusCreated, rec, actionResponse{Item: item})
}

// MarkReturned handles POST /api/items/{id}/returned.
func (h *ItemsHandler) MarkReturned(w http.ResponseWriter, r *http.Request) {
	ctx, rec := recordNotices(r)

	err := h.Tracker.MarkReturned(ctx, r.PathValue("id"))
	if errors.Is(err, tracker.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		slog.Error("failed to mark item returned", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to mark item returned")
		return
	}
	jsonAction(w, http.StatusOK, rec, actionResponse{})
}

// CopyContact handles POST /api/items/{id}/copy.
func (h *ItemsHandler) CopyContact(w http.ResponseWriter, r *http.Request) {
	ctx, rec := recordNotices(r)

	err := h.Tracker.CopyContact(ctx, r.PathValue("id"))
	if errors.Is(err, tracker.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		slog.Error("failed to copy contact", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to copy contact")
		return
	}
	jsonAction(w, http.StatusOK, rec, actionResponse{})
}
