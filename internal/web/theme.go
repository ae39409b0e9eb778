package web

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/lostfound/internal/model"
)

// ThemeSubmit handles POST /theme. Without a theme value it toggles away
// from the scheme the page was showing, sent as "current".
func (s *Server) ThemeSubmit(w http.ResponseWriter, r *http.Request) {
	var err error
	if theme := model.ParseTheme(r.FormValue("theme")); theme != model.ThemeAuto {
		_, err = s.Tracker.SetTheme(r.Context(), theme)
	} else {
		_, err = s.Tracker.ToggleTheme(r.Context(), model.ParseTheme(r.FormValue("current")))
	}
	if err != nil {
		slog.Error("failed to save theme", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, boardURL(filterFrom(r)), http.StatusSeeOther)
}
