package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/notify"
)

// actionResponse is returned by endpoints that change state. Notices are the
// messages the web UI would show as toasts.
type actionResponse struct {
	Item    *model.Item       `json:"item,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
	Notices []notify.Notice   `json:"notices"`
}

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("error encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// jsonAction writes resp with the notices collected in rec.
func jsonAction(w http.ResponseWriter, status int, rec *notify.Recorder, resp actionResponse) {
	resp.Notices = rec.Notices()
	if resp.Notices == nil {
		resp.Notices = []notify.Notice{}
	}
	jsonResponse(w, status, resp)
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// recordNotices returns a request context whose notices are captured.
func recordNotices(r *http.Request) (context.Context, *notify.Recorder) {
	rec := &notify.Recorder{}
	return notify.WithNotifier(r.Context(), rec), rec
}
