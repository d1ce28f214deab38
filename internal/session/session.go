// Package session holds the application-wide authentication state: the
// current user plus loading/error flags, mutated only through the controller
// itself.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/jtetteh/portfolio-cli/internal/api"
	"github.com/jtetteh/portfolio-cli/internal/models"
	"github.com/jtetteh/portfolio-cli/internal/portfolio"
)

// Tokens is the slice of the token store the controller needs.
type Tokens interface {
	IsAuthenticated() bool
	SetTokens(access, refresh string) error
	ClearTokens() error
}

type Controller struct {
	auth   *portfolio.Auth
	tokens Tokens
	log    *slog.Logger

	mu      sync.Mutex
	user    *models.User
	loading bool
	errMsg  string
}

// New creates a controller in the loading state; call Initialize to settle
// it.
func New(auth *portfolio.Auth, tokens Tokens, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{auth: auth, tokens: tokens, log: log, loading: true}
}

// Initialize restores the session from stored tokens: if a pair is present,
// fetch the profile; if that fails, clear the pair and stay anonymous.
// Always ends with the loading flag cleared.
func (c *Controller) Initialize(ctx context.Context) {
	defer c.setLoading(false)

	if !c.tokens.IsAuthenticated() {
		return
	}
	u, err := c.auth.Profile(ctx)
	if err != nil {
		c.log.Warn("failed to restore session, clearing tokens", "error", err)
		if clearErr := c.tokens.ClearTokens(); clearErr != nil {
			c.log.Error("failed to clear tokens", "error", clearErr)
		}
		return
	}
	c.setUser(u)
}

// Login authenticates and, on success, persists the returned token pair and
// user. portfolio.ErrMFARequired passes through untouched so the caller can
// re-prompt for a TOTP code; other failures set the session error message
// and are re-raised.
func (c *Controller) Login(ctx context.Context, req models.LoginRequest) error {
	c.setError("")
	c.setLoading(true)
	defer c.setLoading(false)

	resp, err := c.auth.Login(ctx, req)
	if err != nil {
		if errors.Is(err, portfolio.ErrMFARequired) {
			return err
		}
		c.setError(api.Message(err))
		return err
	}
	return c.establish(resp)
}

// Register creates an account and signs the new user in.
func (c *Controller) Register(ctx context.Context, req models.RegisterRequest) error {
	c.setError("")
	c.setLoading(true)
	defer c.setLoading(false)

	resp, err := c.auth.Register(ctx, req)
	if err != nil {
		c.setError(api.Message(err))
		return err
	}
	return c.establish(resp)
}

func (c *Controller) establish(resp *models.AuthResponse) error {
	if err := c.tokens.SetTokens(resp.Tokens.Access, resp.Tokens.Refresh); err != nil {
		c.setError("Failed to persist session.")
		return err
	}
	c.setUser(&resp.User)
	return nil
}

// Logout tears the session down client-side. No backend round-trip.
func (c *Controller) Logout() {
	if err := c.tokens.ClearTokens(); err != nil {
		c.log.Error("failed to clear tokens on logout", "error", err)
	}
	c.mu.Lock()
	c.user = nil
	c.errMsg = ""
	c.mu.Unlock()
}

// HandleSessionExpired is the api client's session-expired hook: the refresh
// token was rejected and the tokens are already cleared, so only the
// in-memory user remains to drop.
func (c *Controller) HandleSessionExpired() {
	c.log.Info("session expired, signing out")
	c.mu.Lock()
	c.user = nil
	c.mu.Unlock()
}

// UpdateUser replaces the in-memory user after a profile edit. Local only.
func (c *Controller) UpdateUser(u *models.User) {
	c.setUser(u)
}

func (c *Controller) ClearError() {
	c.setError("")
}

func (c *Controller) CurrentUser() *models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Controller) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

func (c *Controller) IsAuthenticated() bool {
	return c.CurrentUser() != nil
}

func (c *Controller) IsAdmin() bool {
	u := c.CurrentUser()
	return u != nil && u.Role == models.RoleSuperAdmin
}

func (c *Controller) IsEditor() bool {
	u := c.CurrentUser()
	return u != nil && (u.Role == models.RoleEditor || u.Role == models.RoleSuperAdmin)
}

func (c *Controller) setUser(u *models.User) {
	c.mu.Lock()
	c.user = u
	c.mu.Unlock()
}

func (c *Controller) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}

func (c *Controller) setError(msg string) {
	c.mu.Lock()
	c.errMsg = msg
	c.mu.Unlock()
}
