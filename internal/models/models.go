package models

import "time"

type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleEditor     Role = "editor"
	RoleViewer     Role = "viewer"
)

type SocialLink struct {
	ID          string `json:"id"`
	User        string `json:"user,omitempty"`
	Platform    string `json:"platform"`
	URL         string `json:"url"`
	DisplayName string `json:"display_name,omitempty"`
	Order       int    `json:"order,omitempty"`
}

// User is the identity/profile record returned by the backend. The
// portfolio fields live on the same record as the auth fields.
type User struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	FullName   string `json:"full_name"`
	Phone      string `json:"phone,omitempty"`
	Role       Role   `json:"role"`
	IsVerified bool   `json:"is_verified"`
	IsActive   bool   `json:"is_active"`
	MFAEnabled bool   `json:"mfa_enabled"`

	Headline          string       `json:"headline,omitempty"`
	Summary           string       `json:"summary,omitempty"`
	City              string       `json:"city,omitempty"`
	State             string       `json:"state,omitempty"`
	Country           string       `json:"country,omitempty"`
	ProfilePicture    string       `json:"profile_picture,omitempty"`
	ProfilePictureURL string       `json:"profile_picture_url,omitempty"`
	CoverImage        string       `json:"cover_image,omitempty"`
	CoverImageURL     string       `json:"cover_image_url,omitempty"`
	SocialLinks       []SocialLink `json:"social_links,omitempty"`

	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	MFAToken string `json:"mfa_token,omitempty"`
}

type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone,omitempty"`
}

type AuthResponse struct {
	Message string    `json:"message"`
	User    User      `json:"user"`
	Tokens  TokenPair `json:"tokens"`
}

type UpdateProfileRequest struct {
	FirstName      *string `json:"first_name,omitempty"`
	LastName       *string `json:"last_name,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Headline       *string `json:"headline,omitempty"`
	Summary        *string `json:"summary,omitempty"`
	City           *string `json:"city,omitempty"`
	State          *string `json:"state,omitempty"`
	Country        *string `json:"country,omitempty"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
	CoverImage     *string `json:"cover_image,omitempty"`
}

type ChangePasswordRequest struct {
	OldPassword        string `json:"old_password"`
	NewPassword        string `json:"new_password"`
	NewPasswordConfirm string `json:"new_password_confirm"`
}

type ResetPasswordRequest struct {
	Token              string `json:"token"`
	NewPassword        string `json:"new_password"`
	NewPasswordConfirm string `json:"new_password_confirm"`
}

type MFASetupResponse struct {
	Secret      string   `json:"secret"`
	QRCode      string   `json:"qr_code"`
	BackupCodes []string `json:"backup_codes"`
	Message     string   `json:"message"`
}

type MFAVerifyResponse struct {
	Message    string `json:"message"`
	MFAEnabled bool   `json:"mfa_enabled"`
}

type VerifyEmailResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Page is the backend's paginated list envelope.
type Page[T any] struct {
	Count    int    `json:"count"`
	Next     string `json:"next,omitempty"`
	Previous string `json:"previous,omitempty"`
	Results  []T    `json:"results"`
}
