package web

import (
	"net/http"

	"github.com/erazemk/lostfound/internal/tracker"
	webembed "github.com/erazemk/lostfound/web"
)

// NewRouter creates the web page router with all page routes registered.
// sessionKey authenticates the flash cookie; empty means a random key.
func NewRouter(t *tracker.Tracker, sessionKey []byte) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Tracker:   t,
		Templates: templates,
		Sessions:  NewSessionStore(sessionKey),
	}

	mux := http.NewServeMux()

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	mux.HandleFunc("GET /{$}", s.Board)
	mux.HandleFunc("POST /items", s.ItemCreateSubmit)
	mux.HandleFunc("POST /items/{id}/returned", s.ItemReturnedSubmit)
	mux.HandleFunc("POST /items/{id}/copy", s.ItemCopySubmit)
	mux.HandleFunc("POST /theme", s.ThemeSubmit)

	if t.Metrics != nil {
		mux.Handle("GET /metrics", t.Metrics.Handler())
	}

	return mux, nil
}
