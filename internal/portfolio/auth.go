package portfolio

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jtetteh/portfolio-cli/internal/api"
	"github.com/jtetteh/portfolio-cli/internal/models"
)

// ErrMFARequired signals that the credentials were accepted but the backend
// wants a TOTP code before issuing tokens. It is a required-next-step, not a
// failure: the caller should re-prompt and log in again with MFAToken set.
var ErrMFARequired = errors.New("mfa token required")

type Auth struct {
	c *api.Client
}

func (a *Auth) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := a.c.Post(ctx, "/auth/register/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login authenticates with email/password and, when the account has MFA
// enabled, a TOTP code. Returns ErrMFARequired when the backend answers with
// the mfa_required shape instead of tokens.
func (a *Auth) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var raw json.RawMessage
	if err := a.c.Post(ctx, "/auth/login/", req, &raw); err != nil {
		return nil, err
	}

	var probe struct {
		MFARequired bool `json:"mfa_required"`
	}
	if err := json.Unmarshal(raw, &probe); err == nil && probe.MFARequired {
		return nil, ErrMFARequired
	}

	var resp models.AuthResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &api.RequestError{Err: err}
	}
	return &resp, nil
}

func (a *Auth) Profile(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := a.c.Get(ctx, "/auth/profile/", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (a *Auth) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	var u models.User
	if err := a.c.Patch(ctx, "/auth/profile/", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (a *Auth) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := a.c.Post(ctx, "/auth/password/change/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *Auth) RequestPasswordReset(ctx context.Context, email string) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	body := map[string]string{"email": email}
	if err := a.c.Post(ctx, "/auth/password/reset/", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *Auth) ConfirmPasswordReset(ctx context.Context, req models.ResetPasswordRequest) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := a.c.Post(ctx, "/auth/password/reset/confirm/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *Auth) SetupMFA(ctx context.Context) (*models.MFASetupResponse, error) {
	var resp models.MFASetupResponse
	if err := a.c.Post(ctx, "/auth/mfa/setup/", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *Auth) VerifyMFA(ctx context.Context, token string) (*models.MFAVerifyResponse, error) {
	var resp models.MFAVerifyResponse
	body := map[string]string{"token": token}
	if err := a.c.Post(ctx, "/auth/mfa/verify/", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *Auth) DisableMFA(ctx context.Context, password string) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	body := map[string]string{"password": password}
	if err := a.c.Post(ctx, "/auth/mfa/disable/", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *Auth) VerifyEmail(ctx context.Context, token string) (*models.VerifyEmailResponse, error) {
	var resp models.VerifyEmailResponse
	body := map[string]string{"token": token}
	if err := a.c.Post(ctx, "/auth/verify-email/", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *Auth) ResendVerification(ctx context.Context, email string) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	body := map[string]string{"email": email}
	if err := a.c.Post(ctx, "/auth/resend-verification/", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Owner resolves the portfolio owner's public record: the dedicated endpoint
// when the backend has it, otherwise the first super_admin in the user list.
func (a *Auth) Owner(ctx context.Context) (*models.User, error) {
	var u models.User
	err := a.c.Get(ctx, "/users/portfolio-owner/", nil, &u)
	if err == nil {
		return &u, nil
	}

	var page models.Page[models.User]
	if listErr := a.c.Get(ctx, "/auth/users/", nil, &page); listErr == nil {
		for i := range page.Results {
			if page.Results[i].Role == models.RoleSuperAdmin {
				return &page.Results[i], nil
			}
		}
	}
	return nil, err
}
