// Package guard decides whether a navigation target may be rendered based
// on session state. Guards are advisory: the backend is the real
// authorization boundary, these only avoid showing UI the user cannot act on.
package guard

import (
	"github.com/jtetteh/portfolio-cli/internal/models"
)

// Decision is the outcome of evaluating a guard.
type Decision int

const (
	// Wait means the session is still loading, render a neutral state.
	Wait Decision = iota
	// Allow lets the navigation through.
	Allow
	// RedirectLogin sends an unauthenticated user to the login flow.
	RedirectLogin
	// Deny renders an access-denied view without redirecting.
	Deny
)

func (d Decision) String() string {
	switch d {
	case Wait:
		return "wait"
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-login"
	case Deny:
		return "deny"
	default:
		return "unknown"
	}
}

// State is the slice of session state guards read. *session.Controller
// satisfies it.
type State interface {
	Loading() bool
	CurrentUser() *models.User
}

// RequireAuth gates authenticated-only areas. It never redirects while the
// session is still loading.
func RequireAuth(s State) Decision {
	if s.Loading() {
		return Wait
	}
	if s.CurrentUser() == nil {
		return RedirectLogin
	}
	return Allow
}

// RequireRole gates role-restricted areas. Unauthenticated users are sent
// to login; authenticated users without a matching role get Deny rather
// than a redirect.
func RequireRole(s State, roles ...models.Role) Decision {
	if s.Loading() {
		return Wait
	}
	u := s.CurrentUser()
	if u == nil {
		return RedirectLogin
	}
	if !HasAnyRole(u, roles...) {
		return Deny
	}
	return Allow
}

// RequireEditor gates the admin area: editors and super admins pass.
func RequireEditor(s State) Decision {
	return RequireRole(s, models.RoleEditor, models.RoleSuperAdmin)
}

// HasAnyRole reports whether the user holds one of the given roles.
func HasAnyRole(u *models.User, roles ...models.Role) bool {
	if u == nil {
		return false
	}
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
