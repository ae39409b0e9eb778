package api

import (
	"net/http"

	"github.com/erazemk/lostfound/internal/tracker"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(t *tracker.Tracker) http.Handler {
	mux := http.NewServeMux()

	itemsHandler := &ItemsHandler{Tracker: t}
	themeHandler := &ThemeHandler{Tracker: t}

	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("POST /api/items", itemsHandler.Create)
	mux.HandleFunc("GET /api/items/{id}", itemsHandler.Get)
	mux.HandleFunc("POST /api/items/{id}/returned", itemsHandler.MarkReturned)
	mux.HandleFunc("POST /api/items/{id}/copy", itemsHandler.CopyContact)

	mux.HandleFunc("GET /api/theme", themeHandler.Get)
	mux.HandleFunc("PUT /api/theme", themeHandler.Set)

	return mux
}
