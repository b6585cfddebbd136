package auth

import "context"

type AuthService interface {
	// Login validates the credentials and issues a fresh token pair.
	Login(ctx context.Context, loginReq LoginRequest, sessionTrackReq SessionTrackingRequest) (TokenResponse, error)

	// RefreshToken exchanges a stored refresh token for a new token
	// pair, rotating the refresh token.
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (TokenResponse, error)

	// Logout revokes the refresh token. Revoking an already revoked
	// token is a no-op.
	Logout(ctx context.Context, token string) error
}
