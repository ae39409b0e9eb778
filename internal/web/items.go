package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/erazemk/lostfound/internal/form"
	"github.com/erazemk/lostfound/internal/notify"
	"github.com/erazemk/lostfound/internal/render"
	"github.com/erazemk/lostfound/internal/tracker"
)

// maxUploadBytes bounds the multipart body of the new item form.
var maxUploadBytes int64 = 32 << 20

// ItemCreateSubmit handles POST /items.
func (s *Server) ItemCreateSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			slog.Warn("upload rejected", "limit", humanize.IBytes(uint64(tooLarge.Limit)))
			http.Error(w, "upload too large: the form and image must be under "+humanize.IBytes(uint64(tooLarge.Limit)), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	fields := form.Fields{
		Type:        r.FormValue("type"),
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Location:    r.FormValue("location"),
		Contact:     r.FormValue("contact"),
		Date:        r.FormValue("date"),
		Category:    r.FormValue("category"),
	}

	var src form.ImageSource
	if r.MultipartForm != nil {
		if files := r.MultipartForm.File["image"]; len(files) > 0 {
			src = form.FromFileHeader(files[0])
		}
	}

	rec := &notify.Recorder{}
	ctx := notify.WithNotifier(r.Context(), rec)
	f := filterFrom(r)

	_, err := s.Tracker.Submit(ctx, fields, src)
	var ve *form.ValidationError
	if errors.As(err, &ve) {
		s.renderBoard(w, r, http.StatusUnprocessableEntity, f, fields, ve.Fields, rec.Notices())
		return
	}
	if err != nil {
		slog.Error("failed to create item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.flash(w, r, rec.Notices())
	http.Redirect(w, r, boardURL(f), http.StatusSeeOther)
}

// ItemReturnedSubmit handles POST /items/{id}/returned.
func (s *Server) ItemReturnedSubmit(w http.ResponseWriter, r *http.Request) {
	s.runAction(w, r, render.ActionMarkReturned)
}

// ItemCopySubmit handles POST /items/{id}/copy.
func (s *Server) ItemCopySubmit(w http.ResponseWriter, r *http.Request) {
	s.runAction(w, r, render.ActionCopyContact)
}

func (s *Server) runAction(w http.ResponseWriter, r *http.Request, kind render.ActionKind) {
	rec := &notify.Recorder{}
	ctx := notify.WithNotifier(r.Context(), rec)

	err := s.Tracker.Run(ctx, r.PathValue("id"), kind)
	if errors.Is(err, tracker.ErrNotFound) {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("card action failed", "action", kind, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.flash(w, r, rec.Notices())
	http.Redirect(w, r, boardURL(filterFrom(r)), http.StatusSeeOther)
}
