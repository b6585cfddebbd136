package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid user name, email or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")
	ErrTooManyAttempts     = errors.New("too many attempts, try again later")
	ErrUserNotFound        = errors.New("user not found")
)
