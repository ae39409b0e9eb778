package web

import (
	"encoding/gob"
	"log/slog"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"github.com/erazemk/lostfound/internal/notify"
)

const sessionName = "lostfound"

func init() {
	gob.Register(notify.Notice{})
}

// NewSessionStore returns a cookie store for flash notices. An empty key
// generates a random one, so notices do not survive a restart.
func NewSessionStore(key []byte) *sessions.CookieStore {
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
	}
	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// flash stores notices to be shown on the next page load.
func (s *Server) flash(w http.ResponseWriter, r *http.Request, notices []notify.Notice) {
	if len(notices) == 0 {
		return
	}
	session, err := s.Sessions.Get(r, sessionName)
	if err != nil {
		// A stale cookie from a previous key; start over.
		slog.Warn("discarding unreadable session", "error", err)
	}
	for _, n := range notices {
		session.AddFlash(n)
	}
	if err := session.Save(r, w); err != nil {
		slog.Error("failed to save session", "error", err)
	}
}

// popFlashes returns and clears pending notices.
func (s *Server) popFlashes(w http.ResponseWriter, r *http.Request) []notify.Notice {
	session, err := s.Sessions.Get(r, sessionName)
	if err != nil {
		return nil
	}
	flashes := session.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	if err := session.Save(r, w); err != nil {
		slog.Error("failed to save session", "error", err)
	}

	notices := make([]notify.Notice, 0, len(flashes))
	for _, f := range flashes {
		if n, ok := f.(notify.Notice); ok {
			notices = append(notices, n)
		}
	}
	return notices
}
