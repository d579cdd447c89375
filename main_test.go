package main

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/folio/internal/api"
	"github.com/Zachkp/folio/internal/api/mock"
	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/logger"
	"github.com/Zachkp/folio/internal/notify"
	"github.com/Zachkp/folio/internal/visits"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		Port:          "0",
		APIURL:        "http://api.test",
		AdminEmail:    "admin@example.com",
		AdminPassword: "secret",
		ContactEmail:  "hello@example.com",
	}
}

type testApp struct {
	*App
	router *gin.Engine
	client *mock.MockClient
}

func newTestApp(t *testing.T, client *mock.MockClient, opts ...func(*config.Config)) *testApp {
	t.Helper()
	return newTestAppWithStore(t, client, nil, opts...)
}

func newTestAppWithStore(t *testing.T, client *mock.MockClient, store *visits.Store, opts ...func(*config.Config)) *testApp {
	t.Helper()
	if client == nil {
		client = &mock.MockClient{}
	}
	cfg := testConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	app, err := NewApp(cfg, client, store, notify.NewMailer(config.SMTP{}))
	require.NoError(t, err)
	return &testApp{App: app, router: app.Router(), client: client}
}

func openVisits(t *testing.T) *visits.Store {
	t.Helper()
	store, err := visits.Open(filepath.Join(t.TempDir(), "visits.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func (ta *testApp) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ta.router.ServeHTTP(rec, req)
	return rec
}

// admin signs req in as the admin, optionally with an API key cookie
func (ta *testApp) admin(req *http.Request, apiKey string) *http.Request {
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: ta.adminToken})
	if apiKey != "" {
		req.AddCookie(&http.Cookie{Name: apiKeyCookie, Value: apiKey})
	}
	return req
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

type upload struct {
	field, name, content string
}

func postMultipart(t *testing.T, target string, values url.Values, files ...upload) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for key, vs := range values {
		for _, v := range vs {
			require.NoError(t, w.WriteField(key, v))
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

// flashOf returns the flash cookie set by rec as "kind|message"
func flashOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == flashCookie && c.MaxAge >= 0 {
			v, err := url.QueryUnescape(c.Value)
			require.NoError(t, err)
			return v
		}
	}
	return ""
}

func TestHealthz(t *testing.T) {
	ta := newTestApp(t, nil)
	rec := ta.serve(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestRequestID(t *testing.T) {
	ta := newTestApp(t, nil)

	rec := ta.serve(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Len(t, rec.Header().Get(headerRequestID), 36)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(headerRequestID, "abc-123")
	rec = ta.serve(req)
	assert.Equal(t, "abc-123", rec.Header().Get(headerRequestID))
}

func TestStaticFiles(t *testing.T) {
	ta := newTestApp(t, nil)
	rec := ta.serve(httptest.NewRequest(http.MethodGet, "/static/site.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".project-card")
}

func TestNewAPIClientCaching(t *testing.T) {
	cfg := testConfig()
	cfg.CacheTTL = 0
	client, err := newAPIClient(cfg)
	require.NoError(t, err)
	_, cached := client.(*api.Cached)
	assert.False(t, cached)

	cfg.CacheTTL = 30 * time.Second
	client, err = newAPIClient(cfg)
	require.NoError(t, err)
	_, cached = client.(*api.Cached)
	assert.True(t, cached)

	cfg.APIURL = "ftp://nope"
	_, err = newAPIClient(cfg)
	assert.Error(t, err)
}
