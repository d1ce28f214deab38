package site

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jtetteh/portfolio-cli/internal/api"
	"github.com/jtetteh/portfolio-cli/internal/cache"
	"github.com/jtetteh/portfolio-cli/internal/models"
	"github.com/jtetteh/portfolio-cli/internal/portfolio"
)

type nopTokens struct{}

func (nopTokens) AccessToken() string         { return "" }
func (nopTokens) RefreshToken() string        { return "" }
func (nopTokens) SetTokens(_, _ string) error { return nil }
func (nopTokens) ClearTokens() error          { return nil }

type fakeBackend struct {
	mux   *http.ServeMux
	calls atomic.Int64
}

func newFakeBackend() *fakeBackend {
	b := &fakeBackend{mux: http.NewServeMux()}
	b.mux.HandleFunc("GET /users/portfolio-owner/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, models.User{ID: "u1", FullName: "Ada Lovelace", Headline: "Engineer", Role: models.RoleSuperAdmin})
	})
	b.mux.HandleFunc("GET /projects/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, models.Page[models.Project]{Count: 1, Results: []models.Project{{ID: "p1", Title: "Engine"}}})
	})
	b.mux.HandleFunc("GET /projects/p1/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, models.ProjectDetail{Project: models.Project{ID: "p1", Title: "Engine"}})
	})
	b.mux.HandleFunc("GET /skills/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, models.Page[models.Skill]{Count: 1, Results: []models.Skill{{ID: "s1", Name: "Go"}}})
	})
	return b
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.calls.Add(1)
	b.mux.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newTestSite(t *testing.T, backend http.Handler, ttl time.Duration) (*httptest.Server, *fakeBackend) {
	t.Helper()
	var fb *fakeBackend
	if backend == nil {
		fb = newFakeBackend()
		backend = fb
	}
	backendSrv := httptest.NewServer(backend)
	t.Cleanup(backendSrv.Close)

	c, err := cache.NewTemp(ttl)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	pc := portfolio.NewClient(api.New(backendSrv.URL, nopTokens{}, api.Options{}))
	srv := httptest.NewServer(NewServer(pc, c, slog.Default()).Routes())
	t.Cleanup(srv.Close)
	return srv, fb
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHealth(t *testing.T) {
	srv, _ := newTestSite(t, nil, time.Hour)
	var body map[string]string
	resp := getJSON(t, srv.URL+"/healthz", &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", body["status"])
}

func TestProfileIsCached(t *testing.T) {
	srv, fb := newTestSite(t, nil, time.Hour)

	var u models.User
	resp := getJSON(t, srv.URL+"/api/profile", &u)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Ada Lovelace", u.FullName)
	firstCalls := fb.calls.Load()

	// second read comes from the cache
	getJSON(t, srv.URL+"/api/profile", &u)
	require.Equal(t, "Ada Lovelace", u.FullName)
	require.Equal(t, firstCalls, fb.calls.Load())
}

func TestProjectsListAndDetail(t *testing.T) {
	srv, _ := newTestSite(t, nil, time.Hour)

	var list []models.Project
	getJSON(t, srv.URL+"/api/projects", &list)
	require.Len(t, list, 1)
	require.Equal(t, "Engine", list[0].Title)

	var detail models.ProjectDetail
	getJSON(t, srv.URL+"/api/projects/p1", &detail)
	require.Equal(t, "p1", detail.ID)
}

func TestEmptyListRendersAsArray(t *testing.T) {
	srv, _ := newTestSite(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, models.Page[models.Skill]{Count: 0, Results: nil})
	}), time.Hour)

	resp, err := http.Get(srv.URL + "/api/skills")
	require.NoError(t, err)
	defer resp.Body.Close()
	var raw json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	require.JSONEq(t, "[]", string(raw))
}

func TestBackendErrorSurfacesStatusAndDetail(t *testing.T) {
	srv, _ := newTestSite(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		writeJSON(w, map[string]string{"detail": "maintenance"})
	}), time.Hour)

	var body map[string]string
	resp := getJSON(t, srv.URL+"/api/skills", &body)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	require.Equal(t, "maintenance", body["detail"])
}

func TestStaleEntryServedWhenBackendDown(t *testing.T) {
	healthy := atomic.Bool{}
	healthy.Store(true)
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		writeJSON(w, models.Page[models.Skill]{Count: 1, Results: []models.Skill{{ID: "s1", Name: "Go"}}})
	})
	srv, _ := newTestSite(t, backend, 50*time.Millisecond)

	var skills []models.Skill
	getJSON(t, srv.URL+"/api/skills", &skills)
	require.Len(t, skills, 1)

	time.Sleep(80 * time.Millisecond) // let the entry go stale
	healthy.Store(false)

	skills = nil
	resp := getJSON(t, srv.URL+"/api/skills", &skills)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, skills, 1)
	require.Equal(t, "Go", skills[0].Name)
}

func TestIndexRendersProfile(t *testing.T) {
	srv, _ := newTestSite(t, nil, time.Hour)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	buf := make([]byte, 4096)
	n, _ := resp.Body.Read(buf)
	require.Contains(t, string(buf[:n]), "Ada Lovelace")
}

func TestIndexEscapesProfileFields(t *testing.T) {
	srv, _ := newTestSite(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, models.User{
			ID:       "u1",
			FullName: `<script>alert("x")</script>`,
			Headline: `Engineer & "Maker"`,
			Role:     models.RoleSuperAdmin,
		})
	}), time.Hour)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NotContains(t, string(body), "<script>")
	require.Contains(t, string(body), "&lt;script&gt;")
	require.Contains(t, string(body), "Engineer &amp; &#34;Maker&#34;")
}

func TestRecovererTurnsPanicInto500(t *testing.T) {
	c, err := cache.NewTemp(time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	s := NewServer(portfolio.NewClient(api.New("http://127.0.0.1:0", nopTokens{}, api.Options{})), c, slog.Default())
	h := s.recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profile", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "internal error")
}

func TestRequestIDHeader(t *testing.T) {
	srv, _ := newTestSite(t, nil, time.Hour)

	resp := getJSON(t, srv.URL+"/healthz", nil)
	require.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-Id", "abc-123")
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, "abc-123", resp2.Header.Get("X-Request-Id"))
}
