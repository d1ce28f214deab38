package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/jtetteh/portfolio-cli/internal/api"
	"github.com/jtetteh/portfolio-cli/internal/models"
	"github.com/jtetteh/portfolio-cli/internal/portfolio"
	"github.com/stretchr/testify/require"
)

type memTokens struct {
	mu      sync.Mutex
	access  string
	refresh string
}

func (m *memTokens) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access
}

func (m *memTokens) RefreshToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refresh
}

func (m *memTokens) IsAuthenticated() bool { return m.AccessToken() != "" }

func (m *memTokens) SetTokens(access, refresh string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = access, refresh
	return nil
}

func (m *memTokens) ClearTokens() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = "", ""
	return nil
}

func newController(t *testing.T, handler http.Handler, tokens *memTokens) *Controller {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := portfolio.NewClient(api.New(srv.URL, tokens, api.Options{}))
	return New(client.Auth, tokens, nil)
}

func TestInitializeAnonymous(t *testing.T) {
	c := newController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without tokens")
	}), &memTokens{})

	require.True(t, c.Loading())
	c.Initialize(context.Background())
	require.False(t, c.Loading())
	require.False(t, c.IsAuthenticated())
}

func TestInitializeRestoresUser(t *testing.T) {
	tokens := &memTokens{access: "acc", refresh: "ref"}
	c := newController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/profile/", r.URL.Path)
		require.Equal(t, "Bearer acc", r.Header.Get("Authorization"))
		w.Write([]byte(`{"id": "u1", "email": "a@b.c", "role": "editor"}`))
	}), tokens)

	c.Initialize(context.Background())
	require.False(t, c.Loading())
	require.True(t, c.IsAuthenticated())
	require.Equal(t, "u1", c.CurrentUser().ID)
}

func TestInitializeClearsTokensOnProfileFailure(t *testing.T) {
	tokens := &memTokens{access: "acc", refresh: "ref"}
	c := newController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail": "boom"}`))
	}), tokens)

	c.Initialize(context.Background())
	require.False(t, c.Loading())
	require.False(t, c.IsAuthenticated())
	require.False(t, tokens.IsAuthenticated())
}

func TestLoginStoresTokensAndUser(t *testing.T) {
	tokens := &memTokens{}
	c := newController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"message": "ok",
			"user": {"id": "u1", "role": "super_admin"},
			"tokens": {"access": "acc", "refresh": "ref"}
		}`))
	}), tokens)

	require.NoError(t, c.Login(context.Background(), models.LoginRequest{Email: "a@b.c", Password: "pw"}))
	require.False(t, c.Loading())
	require.Empty(t, c.Err())
	require.Equal(t, "acc", tokens.access)
	require.Equal(t, "ref", tokens.refresh)
	require.True(t, c.IsAuthenticated())
}

func TestLoginFailureSetsReadableError(t *testing.T) {
	c := newController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Invalid email or password"}`))
	}), &memTokens{})

	err := c.Login(context.Background(), models.LoginRequest{Email: "a@b.c", Password: "bad"})
	require.Error(t, err)
	require.Equal(t, "Invalid email or password", c.Err())
	require.False(t, c.Loading())
	require.False(t, c.IsAuthenticated())
}

func TestLoginMFARequiredIsNotAnError(t *testing.T) {
	c := newController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"mfa_required": true, "message": "MFA token required"}`))
	}), &memTokens{})

	err := c.Login(context.Background(), models.LoginRequest{Email: "a@b.c", Password: "pw"})
	require.ErrorIs(t, err, portfolio.ErrMFARequired)
	// loading ends, no user is set, no generic error message surfaced
	require.False(t, c.Loading())
	require.False(t, c.IsAuthenticated())
	require.Empty(t, c.Err())
}

func TestLogoutIsSynchronous(t *testing.T) {
	tokens := &memTokens{access: "acc", refresh: "ref"}
	c := newController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "u1", "role": "viewer"}`))
	}), tokens)
	c.Initialize(context.Background())
	require.True(t, c.IsAuthenticated())

	c.Logout()
	require.False(t, c.IsAuthenticated())
	require.Empty(t, c.Err())
	require.False(t, tokens.IsAuthenticated())
}

func TestUpdateUserIsLocal(t *testing.T) {
	c := newController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}), &memTokens{})

	c.UpdateUser(&models.User{ID: "u9", Role: models.RoleEditor})
	require.Equal(t, "u9", c.CurrentUser().ID)
}

func TestDerivedRoleFlags(t *testing.T) {
	tests := []struct {
		role       models.Role
		wantEditor bool
		wantAdmin  bool
	}{
		{role: models.RoleViewer, wantEditor: false, wantAdmin: false},
		{role: models.RoleEditor, wantEditor: true, wantAdmin: false},
		{role: models.RoleSuperAdmin, wantEditor: true, wantAdmin: true},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			c := New(nil, &memTokens{}, nil)
			c.UpdateUser(&models.User{ID: "u1", Role: tt.role})
			require.Equal(t, tt.wantEditor, c.IsEditor())
			require.Equal(t, tt.wantAdmin, c.IsAdmin())
		})
	}
}
