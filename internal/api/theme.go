package api

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/tracker"
)

// ThemeHandler handles the theme preference endpoints.
type ThemeHandler struct {
	Tracker *tracker.Tracker
}

type themeRequest struct {
	Theme string `json:"theme"`
	// Current is the scheme the client shows, used when toggling without a
	// saved theme.
	Current string `json:"current,omitempty"`
}

// Get handles GET /api/theme.
func (h *ThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	theme, err := h.Tracker.Theme(r.Context())
	if err != nil {
		slog.Error("failed to get theme", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get theme")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"theme": string(theme)})
}

// Set handles PUT /api/theme. An empty theme toggles the one shown.
func (h *ThemeHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	requested := model.ParseTheme(req.Theme)
	if req.Theme != "" && requested == model.ThemeAuto {
		jsonError(w, http.StatusBadRequest, "theme must be dark or light")
		return
	}

	var theme model.Theme
	var err error
	if requested == model.ThemeAuto {
		theme, err = h.Tracker.ToggleTheme(r.Context(), model.ParseTheme(req.Current))
	} else {
		theme, err = h.Tracker.SetTheme(r.Context(), requested)
	}
	if err != nil {
		slog.Error("failed to set theme", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to set theme")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"theme": string(theme)})
}
