package web

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/erazemk/lostfound/internal/form"
	"github.com/erazemk/lostfound/internal/notify"
	"github.com/erazemk/lostfound/internal/query"
	"github.com/erazemk/lostfound/internal/render"
)

type boardPage struct {
	PageData
	Query  string
	Type   query.TypeFilter
	Lost   *render.Pane
	Found  *render.Pane
	Values form.Fields
	Errors map[string]string
}

// Board handles GET /.
func (s *Server) Board(w http.ResponseWriter, r *http.Request) {
	f := filterFrom(r)
	notices := s.popFlashes(w, r)
	s.renderBoard(w, r, http.StatusOK, f, form.Fields{Type: "lost"}, nil, notices)
}

func (s *Server) renderBoard(w http.ResponseWriter, r *http.Request, status int, f query.Filter, values form.Fields, errs map[string]string, notices []notify.Notice) {
	ctx := r.Context()

	lost, found, err := s.Tracker.Panes(ctx, f)
	if err != nil {
		slog.Error("failed to load items", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	theme, err := s.Tracker.Theme(ctx)
	if err != nil {
		slog.Error("failed to load theme", "error", err)
	}

	s.Templates.Render(w, status, "index.html", &boardPage{
		PageData: PageData{Title: "Lost & Found", Theme: theme, Notices: notices},
		Query:    f.Query,
		Type:     f.Type,
		Lost:     lost,
		Found:    found,
		Values:   values,
		Errors:   errs,
	})
}

// filterFrom reads the search box and type select. Both GET query
// parameters and posted form values are honoured.
func filterFrom(r *http.Request) query.Filter {
	return query.Filter{
		Query: r.FormValue("q"),
		Type:  query.ParseTypeFilter(r.FormValue("filter")),
	}
}

// boardURL returns the board location that keeps the current filter.
func boardURL(f query.Filter) string {
	v := url.Values{}
	if f.Query != "" {
		v.Set("q", f.Query)
	}
	if f.Type != query.TypeAll {
		v.Set("filter", string(f.Type))
	}
	if len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}
