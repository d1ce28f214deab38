package guard

import (
	"testing"

	"github.com/jtetteh/portfolio-cli/internal/models"
	"github.com/stretchr/testify/require"
)

type fakeState struct {
	loading bool
	user    *models.User
}

func (s fakeState) Loading() bool             { return s.loading }
func (s fakeState) CurrentUser() *models.User { return s.user }

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name  string
		state fakeState
		want  Decision
	}{
		{name: "loading waits", state: fakeState{loading: true}, want: Wait},
		{name: "loading waits even with user", state: fakeState{loading: true, user: &models.User{}}, want: Wait},
		{name: "anonymous redirects", state: fakeState{}, want: RedirectLogin},
		{name: "authenticated allowed", state: fakeState{user: &models.User{Role: models.RoleViewer}}, want: Allow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, RequireAuth(tt.state))
		})
	}
}

func TestRequireEditor(t *testing.T) {
	tests := []struct {
		name  string
		state fakeState
		want  Decision
	}{
		{name: "loading waits", state: fakeState{loading: true}, want: Wait},
		{name: "anonymous redirects", state: fakeState{}, want: RedirectLogin},
		{name: "viewer denied not redirected", state: fakeState{user: &models.User{Role: models.RoleViewer}}, want: Deny},
		{name: "editor allowed", state: fakeState{user: &models.User{Role: models.RoleEditor}}, want: Allow},
		{name: "super admin allowed", state: fakeState{user: &models.User{Role: models.RoleSuperAdmin}}, want: Allow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, RequireEditor(tt.state))
		})
	}
}

func TestHasAnyRole(t *testing.T) {
	require.False(t, HasAnyRole(nil, models.RoleEditor))
	require.False(t, HasAnyRole(&models.User{Role: models.RoleViewer}))
	require.True(t, HasAnyRole(&models.User{Role: models.RoleEditor}, models.RoleViewer, models.RoleEditor))
}
