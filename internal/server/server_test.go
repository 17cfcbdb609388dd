package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-formfields/pkg/config"
	"github.com/goliatone/go-formfields/pkg/layout"
)

func newTestServer(t *testing.T) (*Server, *observer.ObservedLogs) {
	t.Helper()
	store, err := config.LoadFS(config.EmbeddedFS())
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	renderer, err := layout.New(layout.WithStore(store))
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	core, logs := observer.New(zapcore.DebugLevel)
	srv, err := New(store, renderer, WithLogger(zap.New(core)))
	if err != nil {
		t.Fatalf("server: %v", err)
	}
	return srv, logs
}

func do(t *testing.T, srv *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestPreviewPages(t *testing.T) {
	srv, logs := newTestServer(t)

	cases := []struct {
		name   string
		path   string
		status int
		want   []string
	}{
		{name: "health", path: "/healthz", status: http.StatusOK, want: []string{"ok"}},
		{name: "index", path: "/", status: http.StatusOK, want: []string{`<a href="/forms/contact">contact</a>`}},
		{
			name:   "form",
			path:   "/forms/contact",
			status: http.StatusOK,
			want: []string{
				"<title>ContactForm</title>",
				`<form action="/contact" method="post">`,
				"bootstrap.min.css",
			},
		},
		{name: "theme override", path: "/forms/contact?theme=bulma", status: http.StatusOK, want: []string{"bulma.min.css"}},
		{name: "unknown theme falls back", path: "/forms/contact?theme=nope", status: http.StatusOK, want: []string{"bootstrap.min.css"}},
		{name: "missing form", path: "/forms/missing", status: http.StatusNotFound, want: []string{`form "missing" not found`}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, srv, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if rec.Code != tc.status {
				t.Fatalf("expected status %d, got %d: %s", tc.status, rec.Code, rec.Body.String())
			}
			for _, want := range tc.want {
				if !strings.Contains(rec.Body.String(), want) {
					t.Fatalf("expected %q in body:\n%s", want, rec.Body.String())
				}
			}
		})
	}

	requests := logs.FilterMessage("request").All()
	if len(requests) != len(cases) {
		t.Fatalf("expected %d request log entries, got %d", len(cases), len(requests))
	}
	if status := requests[0].ContextMap()["status"]; status != int64(http.StatusOK) {
		t.Fatalf("unexpected logged status %v", status)
	}
	notFound := logs.FilterMessage(`form "missing" not found`).All()
	if len(notFound) != 1 || notFound[0].Level != zapcore.DebugLevel {
		t.Fatalf("expected one debug entry for the missing form, got %v", notFound)
	}
}

func TestSubmitKeepsValues(t *testing.T) {
	srv, logs := newTestServer(t)

	form := url.Values{}
	form.Set("ContactForm[name]", "Ada <Lovelace>")
	form.Set("ContactForm[topic]", "press")
	req := httptest.NewRequest(http.MethodPost, "/forms/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := do(t, srv, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `value="Ada &lt;Lovelace&gt;"`) {
		t.Fatalf("submitted name not rendered back:\n%s", body)
	}
	if !strings.Contains(body, `<option value="press" selected>Press</option>`) {
		t.Fatalf("submitted topic not selected:\n%s", body)
	}
	if len(logs.FilterMessage("form submitted").All()) != 1 {
		t.Fatalf("expected a submission log entry")
	}
}

func postForm(t *testing.T, srv *Server, raw string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/forms/contact", strings.NewReader(raw))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(t, srv, req)
}

func TestSubmitCheckedCheckbox(t *testing.T) {
	srv, _ := newTestServer(t)

	page := do(t, srv, httptest.NewRequest(http.MethodGet, "/forms/contact", nil)).Body.String()
	uncheck := `<input type="hidden" name="ContactForm[subscribe]" value="0">`
	if !strings.Contains(page, uncheck) {
		t.Fatalf("expected uncheck input in:\n%s", page)
	}

	// A checked box posts its uncheck input first and its own value last.
	rec := postForm(t, srv, "ContactForm%5Bsubscribe%5D=0&ContactForm%5Bsubscribe%5D=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `name="ContactForm[subscribe]" value="1" checked`) {
		t.Fatalf("checkbox not rendered checked:\n%s", rec.Body.String())
	}

	rec = postForm(t, srv, "ContactForm%5Bsubscribe%5D=0")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), `value="1" checked`) {
		t.Fatalf("checkbox should be unchecked:\n%s", rec.Body.String())
	}
}

func TestSubmitInvalidValue(t *testing.T) {
	srv, logs := newTestServer(t)

	rec := postForm(t, srv, "ContactForm%5Bname%5D%5B%5D=a&ContactForm%5Bname%5D%5B%5D=b")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `invalid value for "name"`) {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
	if len(logs.FilterMessage("render failed").All()) != 0 {
		t.Fatalf("client errors must not be logged as render failures")
	}
}

func TestDefinitionJSON(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, httptest.NewRequest(http.MethodGet, "/forms/contact/definition", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	var def config.FormDefinition
	if err := json.Unmarshal(rec.Body.Bytes(), &def); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if def.FormName != "ContactForm" || len(def.Fields) != 5 {
		t.Fatalf("unexpected definition: %+v", def)
	}
}

func TestNewValidatesArguments(t *testing.T) {
	if _, err := New(nil, nil); err == nil {
		t.Fatalf("expected error without store")
	}
	if _, err := New(config.NewStore(), nil); err == nil {
		t.Fatalf("expected error without renderer")
	}
}
