package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/jtetteh/portfolio-cli/internal/api"
	"github.com/jtetteh/portfolio-cli/internal/models"
	"github.com/jtetteh/portfolio-cli/internal/portfolio"
)

func (a *App) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (PORTFOLIO_PASSWORD env if empty)")
	mfaToken := fs.String("mfa-token", "", "one-time MFA code")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.New("--email is required")
	}
	pw := *password
	if pw == "" {
		pw = os.Getenv("PORTFOLIO_PASSWORD")
	}
	if pw == "" {
		return errors.New("provide --password or set PORTFOLIO_PASSWORD")
	}

	err := a.sess.Login(ctx, models.LoginRequest{Email: *email, Password: pw, MFAToken: *mfaToken})
	if errors.Is(err, portfolio.ErrMFARequired) {
		return errors.New("this account requires MFA: re-run login with --mfa-token")
	}
	if err != nil {
		if msg := a.sess.Err(); msg != "" {
			return errors.New(msg)
		}
		return err
	}
	fmt.Fprintf(a.out, "logged in as %s\n", a.sess.CurrentUser().Email)
	return nil
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := newFlagSet("register")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (PORTFOLIO_PASSWORD env if empty)")
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	phone := fs.String("phone", "", "phone number")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *firstName == "" || *lastName == "" {
		return errors.New("--email, --first-name and --last-name are required")
	}
	pw := *password
	if pw == "" {
		pw = os.Getenv("PORTFOLIO_PASSWORD")
	}
	if pw == "" {
		return errors.New("provide --password or set PORTFOLIO_PASSWORD")
	}

	err := a.sess.Register(ctx, models.RegisterRequest{
		Email:           *email,
		Password:        pw,
		PasswordConfirm: pw,
		FirstName:       *firstName,
		LastName:        *lastName,
		Phone:           *phone,
	})
	if err != nil {
		if msg := a.sess.Err(); msg != "" {
			return errors.New(msg)
		}
		return err
	}
	fmt.Fprintf(a.out, "registered as %s, check your inbox for a verification email\n", *email)
	return nil
}

func (a *App) logout(args []string) error {
	if len(args) != 0 {
		return errors.New("logout takes no arguments")
	}
	a.sess.Logout()
	fmt.Fprintln(a.out, "logged out")
	return nil
}

func (a *App) whoami(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return errors.New("whoami takes no arguments")
	}
	a.sess.Initialize(ctx)
	u := a.sess.CurrentUser()
	if u == nil {
		return errors.New("not logged in")
	}
	fmt.Fprintf(a.out, "%s (%s, role %s)\n", u.Email, u.FullName, u.Role)
	if claims, err := api.PeekToken(a.store.AccessToken()); err == nil && !claims.ExpiresAt.IsZero() {
		fmt.Fprintf(a.out, "access token expires %s\n", claims.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}

func (a *App) profile(ctx context.Context, args []string) error {
	sub, rest := subcommand(args, "show")
	switch sub {
	case "show":
		u, err := a.pc.Auth.Profile(ctx)
		if err != nil {
			return err
		}
		return a.printJSON(u)
	case "update":
		fs := newFlagSet("profile update")
		file := fs.String("file", "", "json file with profile fields, - for stdin")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		var req models.UpdateProfileRequest
		if err := readInto(*file, &req); err != nil {
			return err
		}
		u, err := a.pc.Auth.UpdateProfile(ctx, req)
		if err != nil {
			return err
		}
		a.sess.UpdateUser(u)
		return a.printJSON(u)
	case "completeness":
		u, err := a.pc.Auth.Profile(ctx)
		if err != nil {
			return err
		}
		return a.printJSON(models.ProfileCompleteness(u))
	default:
		return errors.Errorf("unknown profile subcommand %q", sub)
	}
}

func (a *App) password(ctx context.Context, args []string) error {
	sub, rest := subcommand(args, "")
	switch sub {
	case "change":
		fs := newFlagSet("password change")
		old := fs.String("old", "", "current password")
		next := fs.String("new", "", "new password")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *old == "" || *next == "" {
			return errors.New("--old and --new are required")
		}
		resp, err := a.pc.Auth.ChangePassword(ctx, models.ChangePasswordRequest{
			OldPassword:        *old,
			NewPassword:        *next,
			NewPasswordConfirm: *next,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, resp.Message)
		return nil
	case "reset":
		fs := newFlagSet("password reset")
		email := fs.String("email", "", "account email")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *email == "" {
			return errors.New("--email is required")
		}
		resp, err := a.pc.Auth.RequestPasswordReset(ctx, *email)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, resp.Message)
		return nil
	case "reset-confirm":
		fs := newFlagSet("password reset-confirm")
		token := fs.String("token", "", "reset token from the email")
		next := fs.String("new", "", "new password")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *token == "" || *next == "" {
			return errors.New("--token and --new are required")
		}
		resp, err := a.pc.Auth.ConfirmPasswordReset(ctx, models.ResetPasswordRequest{
			Token:              *token,
			NewPassword:        *next,
			NewPasswordConfirm: *next,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, resp.Message)
		return nil
	default:
		return errors.New("password expects change, reset or reset-confirm")
	}
}

func (a *App) mfa(ctx context.Context, args []string) error {
	sub, rest := subcommand(args, "")
	switch sub {
	case "setup":
		resp, err := a.pc.Auth.SetupMFA(ctx)
		if err != nil {
			return err
		}
		return a.printJSON(resp)
	case "verify":
		fs := newFlagSet("mfa verify")
		token := fs.String("token", "", "one-time MFA code")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *token == "" {
			return errors.New("--token is required")
		}
		resp, err := a.pc.Auth.VerifyMFA(ctx, *token)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, resp.Message)
		return nil
	case "disable":
		fs := newFlagSet("mfa disable")
		password := fs.String("password", "", "account password")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *password == "" {
			return errors.New("--password is required")
		}
		resp, err := a.pc.Auth.DisableMFA(ctx, *password)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, resp.Message)
		return nil
	default:
		return errors.New("mfa expects setup, verify or disable")
	}
}

func (a *App) verifyEmail(ctx context.Context, args []string) error {
	fs := newFlagSet("verify-email")
	token := fs.String("token", "", "verification token from the email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *token == "" {
		return errors.New("--token is required")
	}
	resp, err := a.pc.Auth.VerifyEmail(ctx, *token)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, resp.Message)
	return nil
}

func (a *App) resendVerification(ctx context.Context, args []string) error {
	fs := newFlagSet("resend-verification")
	email := fs.String("email", "", "account email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.New("--email is required")
	}
	resp, err := a.pc.Auth.ResendVerification(ctx, *email)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, resp.Message)
	return nil
}
