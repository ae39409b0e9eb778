package web

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"

	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/notify"
	"github.com/erazemk/lostfound/internal/render"
	"github.com/erazemk/lostfound/internal/tracker"
	webembed "github.com/erazemk/lostfound/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"actionPath": func(id string, kind render.ActionKind) string {
			switch kind {
			case render.ActionMarkReturned:
				return "/items/" + id + "/returned"
			case render.ActionCopyContact:
				return "/items/" + id + "/copy"
			default:
				return "/"
			}
		},
		"dict": func(pairs ...any) (map[string]any, error) {
			if len(pairs)%2 != 0 {
				return nil, fmt.Errorf("dict: odd number of arguments")
			}
			m := make(map[string]any, len(pairs)/2)
			for i := 0; i < len(pairs); i += 2 {
				key, ok := pairs[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
				}
				m[key] = pairs[i+1]
			}
			return m, nil
		},
		// imageSrc trusts embedded data URIs only. Files of unknown type
		// keep their declared MIME type, so any data: URI is allowed.
		"imageSrc": func(s string) template.URL {
			if strings.HasPrefix(s, "data:") {
				return template.URL(s)
			}
			return ""
		},
	}
}

// layoutFile wraps every page.
const layoutFile = "layout.html"

// LoadTemplates parses every page template in the embedded templates
// directory together with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	pages, err := fs.Glob(tfs, "*.html")
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}

	ts := &Templates{templates: make(map[string]*template.Template)}
	for _, page := range pages {
		if page == layoutFile {
			continue
		}
		tmpl, err := template.New(page).Funcs(FuncMap()).ParseFS(tfs, layoutFile, page)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		ts.templates[page] = tmpl
	}
	if len(ts.templates) == 0 {
		return nil, errors.New("no page templates found")
	}
	return ts, nil
}

// Render renders a template with the given status and data.
func (ts *Templates) Render(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title   string
	Theme   model.Theme
	Notices []notify.Notice
}

// Server holds all dependencies for page handlers.
type Server struct {
	Tracker   *tracker.Tracker
	Templates *Templates
	Sessions  sessions.Store
}
