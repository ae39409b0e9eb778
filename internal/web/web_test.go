package web

import (
	"bytes"
	"context"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	"github.com/erazemk/lostfound/internal/clipboard"
	"github.com/erazemk/lostfound/internal/db"
	"github.com/erazemk/lostfound/internal/form"
	"github.com/erazemk/lostfound/internal/kv"
	"github.com/erazemk/lostfound/internal/metrics"
	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/query"
	"github.com/erazemk/lostfound/internal/render"
	"github.com/erazemk/lostfound/internal/tracker"
)

type testEnv struct {
	server    *httptest.Server
	client    *http.Client
	tracker   *tracker.Tracker
	clipboard *clipboard.Memory
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()
	cb := &clipboard.Memory{}
	tr := tracker.New(kv.NewSQLite(db.NewTestDB(t)), cb, metrics.New())

	router, err := NewRouter(tr, []byte("0123456789abcdef0123456789abcdef"))
	if err != nil {
		t.Fatalf("creating router: %v", err)
	}
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("creating cookie jar: %v", err)
	}
	return &testEnv{
		server:    server,
		client:    &http.Client{Jar: jar},
		tracker:   tr,
		clipboard: cb,
	}
}

func (e *testEnv) addItem(t *testing.T, typ, name, contact string) *model.Item {
	t.Helper()
	item, err := e.tracker.Submit(context.Background(), form.Fields{
		Type: typ, Name: name, Description: "Brown leather", Location: "Bus 6", Contact: contact,
	}, nil)
	if err != nil {
		t.Fatalf("adding item: %v", err)
	}
	return item
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return string(data)
}

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("writing field: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestBoardShowsPlaceholders(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.client.Get(env.server.URL + "/")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	body := readBody(t, resp)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := strings.Count(body, "No items yet."); got != 2 {
		t.Errorf("expected 2 placeholders, got %d", got)
	}
}

func TestCreateItemShowsToastAfterRedirect(t *testing.T) {
	env := setupTestServer(t)

	body, contentType := multipartBody(t, map[string]string{
		"type":        "lost",
		"name":        "Wallet",
		"description": "Brown leather",
		"location":    "Bus 6",
		"contact":     "a@example.com",
		"date":        "2024-05-03",
	})
	resp, err := env.client.Post(env.server.URL+"/items", contentType, body)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	page := readBody(t, resp)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 after redirect, got %d", resp.StatusCode)
	}
	if !strings.Contains(page, "Item added") {
		t.Error("expected 'Item added' toast")
	}
	if !strings.Contains(page, "Wallet") {
		t.Error("expected new item on the board")
	}
	if !strings.Contains(page, "3 May 2024") {
		t.Error("expected formatted date in meta line")
	}

	// The flash is shown once.
	resp, err = env.client.Get(env.server.URL + "/")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if strings.Contains(readBody(t, resp), "Item added") {
		t.Error("expected toast to be cleared after display")
	}
}

func multipartWithImage(t *testing.T, fields map[string]string, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("writing field: %v", err)
		}
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("creating image part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("writing image part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

var itemFields = map[string]string{
	"type":        "found",
	"name":        "Badge",
	"description": "Round enamel",
	"location":    "Library",
	"contact":     "b@example.com",
}

func TestCreateItemKeepsSVGImage(t *testing.T) {
	env := setupTestServer(t)

	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="8" height="8"><circle r="4"/></svg>`)
	body, contentType := multipartWithImage(t, itemFields, "badge.svg", "image/svg+xml", svg)
	resp, err := env.client.Post(env.server.URL+"/items", contentType, body)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	page := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 after redirect, got %d", resp.StatusCode)
	}
	if !strings.Contains(page, `src="data:image/svg+xml;base64,`) {
		t.Error("expected SVG image on the board")
	}
}

func TestCreateItemTooLarge(t *testing.T) {
	env := setupTestServer(t)

	old := maxUploadBytes
	maxUploadBytes = 1 << 10
	t.Cleanup(func() { maxUploadBytes = old })

	body, contentType := multipartWithImage(t, itemFields, "photo.png", "image/png", bytes.Repeat([]byte{0x89}, 4<<10))
	resp, err := env.client.Post(env.server.URL+"/items", contentType, body)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	msg := readBody(t, resp)

	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", resp.StatusCode)
	}
	if !strings.Contains(msg, "1.0 KiB") {
		t.Errorf("expected limit in message, got %q", msg)
	}

	board, err := env.tracker.Board(context.Background(), query.Filter{})
	if err != nil {
		t.Fatalf("loading board: %v", err)
	}
	if len(board.Lost)+len(board.Found) != 0 {
		t.Error("expected no item to be stored")
	}
}

func TestCreateItemValidationKeepsInput(t *testing.T) {
	env := setupTestServer(t)

	body, contentType := multipartBody(t, map[string]string{
		"type":        "found",
		"name":        "  ",
		"description": "Blue umbrella",
		"location":    "Library",
		"contact":     "b@example.com",
	})
	resp, err := env.client.Post(env.server.URL+"/items", contentType, body)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	page := readBody(t, resp)

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	if !strings.Contains(page, "Please fill all required fields") {
		t.Error("expected required fields toast")
	}
	if !strings.Contains(page, "Blue umbrella") {
		t.Error("expected submitted description to be kept")
	}

	items, err := env.tracker.Items.Load(context.Background())
	if err != nil {
		t.Fatalf("loading items: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no stored items, got %d", len(items))
	}
}

func TestMarkReturnedHidesItem(t *testing.T) {
	env := setupTestServer(t)
	item := env.addItem(t, "lost", "Wallet", "a@example.com")

	resp, err := env.client.PostForm(env.server.URL+"/items/"+item.ID+"/returned", nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	page := readBody(t, resp)

	if !strings.Contains(page, "Item marked as returned") {
		t.Error("expected returned toast")
	}
	if strings.Contains(page, "Wallet") {
		t.Error("expected returned item to be hidden")
	}
}

func TestActionOnUnknownItem(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.client.PostForm(env.server.URL+"/items/itm_missing/returned", nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestCopyContact(t *testing.T) {
	env := setupTestServer(t)
	item := env.addItem(t, "found", "Keys", "b@example.com")

	resp, err := env.client.PostForm(env.server.URL+"/items/"+item.ID+"/copy", nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	page := readBody(t, resp)

	if env.clipboard.Text != "b@example.com" {
		t.Errorf("expected contact on clipboard, got %q", env.clipboard.Text)
	}
	if !strings.Contains(page, "Contact copied") {
		t.Error("expected copied toast")
	}
}

func TestActionKeepsFilter(t *testing.T) {
	env := setupTestServer(t)
	item := env.addItem(t, "lost", "Wallet", "a@example.com")

	noRedirect := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
	resp, err := noRedirect.PostForm(env.server.URL+"/items/"+item.ID+"/copy", url.Values{
		"q":      {"wall"},
		"filter": {"lost"},
	})
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != "/?filter=lost&q=wall" {
		t.Errorf("unexpected redirect %q", got)
	}
}

func TestSearchFiltersBoard(t *testing.T) {
	env := setupTestServer(t)
	env.addItem(t, "lost", "Wallet", "a@example.com")
	env.addItem(t, "found", "Keys", "b@example.com")

	resp, err := env.client.Get(env.server.URL + "/?q=WALL")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	page := readBody(t, resp)

	if !strings.Contains(page, "Wallet") {
		t.Error("expected matching item")
	}
	if strings.Contains(page, "Keys") {
		t.Error("expected non-matching item to be hidden")
	}
	if got := strings.Count(page, "No items yet."); got != 1 {
		t.Errorf("expected found pane placeholder, got %d placeholders", got)
	}
}

func TestThemeToggleFollowsShownScheme(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.client.Get(env.server.URL + "/")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	page := readBody(t, resp)
	for _, want := range []string{`name="current" value="light"`, `name="current" value="dark"`} {
		if !strings.Contains(page, want) {
			t.Errorf("expected toggle button %s without a saved theme", want)
		}
	}

	// A browser preferring dark shows the dark scheme, so toggling goes light.
	resp, err = env.client.PostForm(env.server.URL+"/theme", url.Values{"current": {"dark"}})
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	page = readBody(t, resp)
	if !strings.Contains(page, `data-theme="light"`) {
		t.Error("expected light theme after toggling from dark")
	}
	if strings.Contains(page, `value="dark" class="btn btn-ghost theme-from-dark"`) {
		t.Error("expected a single toggle button once a theme is saved")
	}

	// The saved preference wins over what the client reports.
	resp, err = env.client.PostForm(env.server.URL+"/theme", url.Values{"current": {"light"}})
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if !strings.Contains(readBody(t, resp), `data-theme="dark"`) {
		t.Error("expected dark theme after toggling from saved light")
	}
}

func TestThemeToggle(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.client.PostForm(env.server.URL+"/theme", nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if !strings.Contains(readBody(t, resp), `data-theme="dark"`) {
		t.Error("expected dark theme after first toggle")
	}

	resp, err = env.client.PostForm(env.server.URL+"/theme", nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if !strings.Contains(readBody(t, resp), `data-theme="light"`) {
		t.Error("expected light theme after second toggle")
	}
}

func TestStaticAndMetrics(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.client.Get(env.server.URL + "/static/style.css")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected stylesheet, got %d", resp.StatusCode)
	}

	env.addItem(t, "lost", "Wallet", "a@example.com")
	resp, err = env.client.Get(env.server.URL + "/metrics")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if !strings.Contains(readBody(t, resp), `lostfound_items_created_total{type="lost"} 1`) {
		t.Error("expected created counter in metrics output")
	}
}

func TestFuncMap(t *testing.T) {
	funcs := FuncMap()

	imageSrc := funcs["imageSrc"].(func(string) template.URL)
	if got := imageSrc("data:image/png;base64,AAAA"); got != "data:image/png;base64,AAAA" {
		t.Errorf("expected data URI to pass through, got %q", got)
	}
	if got := imageSrc("data:image/svg+xml;base64,PHN2Zy8+"); got != "data:image/svg+xml;base64,PHN2Zy8+" {
		t.Errorf("expected SVG data URI to pass through, got %q", got)
	}
	if got := imageSrc("data:application/octet-stream;base64,AAAA"); got == "" {
		t.Error("expected untyped data URI to pass through")
	}
	if got := imageSrc("javascript:alert(1)"); got != "" {
		t.Errorf("expected non-data source to be dropped, got %q", got)
	}

	actionPath := funcs["actionPath"].(func(string, render.ActionKind) string)
	if got := actionPath("itm_1", render.ActionMarkReturned); got != "/items/itm_1/returned" {
		t.Errorf("unexpected returned path %q", got)
	}
	if got := actionPath("itm_1", render.ActionCopyContact); got != "/items/itm_1/copy" {
		t.Errorf("unexpected copy path %q", got)
	}
}
