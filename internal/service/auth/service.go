package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/auth"
	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/user"
	"github.com/givenmphiwe/bioclock-backend-go/internal/pkg/database"
	"github.com/givenmphiwe/bioclock-backend-go/internal/pkg/jwt"
	"github.com/givenmphiwe/bioclock-backend-go/internal/repository/postgresql"
)

const (
	maxFailedLogins = 5
	lockoutDuration = 15 * time.Minute
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	jwt.Service
	postgresql.JWTRepository
}

func NewAuthService(db *database.DB, userRepository user.UserRepository, jwtService jwt.Service, jwtRepository postgresql.JWTRepository) auth.AuthService {
	return &AuthServiceImpl{
		db:             db,
		UserRepository: userRepository,
		Service:        jwtService,
		JWTRepository:  jwtRepository,
	}
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, userData user.User, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse
	var expiresAt int64

	err := postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		tokenResponse.AccessToken, expiresAt, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.DisplayName, userData.CompanyID, userData.Role)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}

		var refreshExpiresAt int64
		tokenResponse.RefreshToken, refreshExpiresAt, err = a.Service.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		err = a.CreateRefreshToken(txCtx, userData.ID, tokenResponse.RefreshToken, refreshExpiresAt, sessionTrackReq)
		if err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		tokenResponse.RefreshExpiresAt = refreshExpiresAt
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	tokenResponse.ExpiresAt = time.Unix(expiresAt, 0).UTC().Format(time.RFC3339)
	tokenResponse.UserID = userData.ID
	tokenResponse.UserName = userData.UserName
	tokenResponse.DisplayName = userData.DisplayName
	tokenResponse.Email = userData.Email
	tokenResponse.ClientID = userData.CompanyID
	return tokenResponse, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	userData, err := a.UserRepository.GetByUserNameOrEmail(ctx, loginReq.UserNameOrEmail)
	if err != nil {
		if err == user.ErrUserNotFound {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	if userData.LockedUntil != nil && userData.LockedUntil.After(time.Now()) {
		return auth.TokenResponse{}, auth.ErrTooManyAttempts
	}

	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(loginReq.Password)); err != nil {
		var lockedUntil *time.Time
		if userData.FailedLogins+1 >= maxFailedLogins {
			until := time.Now().Add(lockoutDuration)
			lockedUntil = &until
		}
		if recErr := a.UserRepository.RecordFailedLogin(ctx, userData.ID, lockedUntil); recErr != nil {
			return auth.TokenResponse{}, fmt.Errorf("failed to record failed login: %w", recErr)
		}
		if lockedUntil != nil {
			return auth.TokenResponse{}, auth.ErrTooManyAttempts
		}
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if userData.FailedLogins > 0 || userData.LockedUntil != nil {
		if err := a.UserRepository.ResetFailedLogins(ctx, userData.ID); err != nil {
			return auth.TokenResponse{}, fmt.Errorf("failed to reset failed logins: %w", err)
		}
	}

	return a.issueTokens(ctx, userData, sessionTrackReq)
}

// RefreshToken implements auth.AuthService. The presented refresh token
// is revoked and a new pair is issued, so a replayed token fails the
// revocation check.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.TokenResponse, error) {
	token, err := jwtauth.VerifyToken(a.JWTAuth(), req.RefreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "refresh" {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	isRevoked, err := a.JWTRepository.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	if isRevoked {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrUserNotFound
	}

	if err := a.JWTRepository.RevokeRefreshToken(ctx, req.RefreshToken); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return a.issueTokens(ctx, userData, auth.SessionTrackingRequest{})
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	isRevoked, err := a.JWTRepository.IsRefreshTokenRevoked(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to check if refresh token is revoked: %w", err)
	}
	if isRevoked {
		return nil
	}
	if err := a.JWTRepository.RevokeRefreshToken(ctx, token); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}
