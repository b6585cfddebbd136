package auth

import (
	"github.com/givenmphiwe/bioclock-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	UserNameOrEmail string `json:"userNameOrEmail"`
	Password        string `json:"password"`
	Remember        bool   `json:"remember"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserNameOrEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "userNameOrEmail",
			Message: "user name or email is required",
		})
	}

	if len(r.Password) < 6 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 6 characters long",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (r *RefreshTokenRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RefreshToken) {
		errs = append(errs, validator.ValidationError{
			Field:   "refreshToken",
			Message: "refresh token is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenResponse mirrors the login and refresh payload consumed by the
// dashboard client: both endpoints return the full credential record.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresAt    string `json:"expiresAt"`
	UserID       string `json:"userId"`
	UserName     string `json:"userName"`
	DisplayName  string `json:"displayName"`
	Email        string `json:"email"`
	ClientID     string `json:"clientId"`

	// RefreshExpiresAt drives the refresh token cookie lifetime and is
	// never serialized.
	RefreshExpiresAt int64 `json:"-"`
}

// SessionTrackingRequest carries request metadata stored with the
// refresh token row.
type SessionTrackingRequest struct {
	IPAddress string
	UserAgent string
}
