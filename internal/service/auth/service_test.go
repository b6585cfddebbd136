package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/auth"
	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/user"
	"github.com/givenmphiwe/bioclock-backend-go/internal/pkg/jwt"
)

const (
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testSecret     = "test-secret-key-for-jwt"
)

type fakeUserRepo struct {
	users  map[string]user.User
	resets int
}

func (f *fakeUserRepo) GetByUserNameOrEmail(_ context.Context, identifier string) (user.User, error) {
	for _, u := range f.users {
		if u.UserName == identifier || u.Email == identifier {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) List(_ context.Context, _ string) ([]user.User, error) { return nil, nil }

func (f *fakeUserRepo) Delete(_ context.Context, _, _ string) error { return nil }

func (f *fakeUserRepo) RecordFailedLogin(_ context.Context, id string, lockedUntil *time.Time) error {
	u := f.users[id]
	u.FailedLogins++
	u.LockedUntil = lockedUntil
	f.users[id] = u
	return nil
}

func (f *fakeUserRepo) ResetFailedLogins(_ context.Context, id string) error {
	u := f.users[id]
	u.FailedLogins = 0
	u.LockedUntil = nil
	f.users[id] = u
	f.resets++
	return nil
}

type fakeJWTRepo struct {
	revoked map[string]bool
}

func (f *fakeJWTRepo) CreateRefreshToken(_ context.Context, _ string, token string, _ int64, _ auth.SessionTrackingRequest) error {
	if f.revoked == nil {
		f.revoked = map[string]bool{}
	}
	f.revoked[token] = false
	return nil
}

func (f *fakeJWTRepo) IsRefreshTokenRevoked(_ context.Context, token string) (bool, error) {
	return f.revoked[token], nil
}

func (f *fakeJWTRepo) RevokeRefreshToken(_ context.Context, token string) error {
	if f.revoked == nil {
		f.revoked = map[string]bool{}
	}
	f.revoked[token] = true
	return nil
}

func (f *fakeJWTRepo) RevokeAllForUser(_ context.Context, _ string) error { return nil }

func newTestUser(t *testing.T, id, userName, email, password string) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	hashed := string(hash)
	return user.User{
		ID:           id,
		CompanyID:    "company-1",
		UserName:     userName,
		DisplayName:  "Test User",
		Email:        email,
		PasswordHash: &hashed,
		Role:         user.RoleAdmin,
	}
}

func newTestService(users *fakeUserRepo, tokens *fakeJWTRepo) *AuthServiceImpl {
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	return &AuthServiceImpl{
		UserRepository: users,
		Service:        jwtService,
		JWTRepository:  tokens,
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	users := &fakeUserRepo{users: map[string]user.User{}}
	svc := newTestService(users, &fakeJWTRepo{})

	loginReq := auth.LoginRequest{UserNameOrEmail: "nobody@example.com", Password: "password123"}
	sessionReq := auth.SessionTrackingRequest{IPAddress: "127.0.0.1", UserAgent: "Mozilla/5.0"}
	_, err := svc.Login(context.Background(), loginReq, sessionReq)

	assert.Equal(t, auth.ErrInvalidCredentials, err)
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	users := &fakeUserRepo{users: map[string]user.User{
		"u1": newTestUser(t, "u1", "jdoe", "jdoe@example.com", "password123"),
	}}
	svc := newTestService(users, &fakeJWTRepo{})

	loginReq := auth.LoginRequest{UserNameOrEmail: "jdoe", Password: "wrongpassword"}
	sessionReq := auth.SessionTrackingRequest{IPAddress: "127.0.0.1", UserAgent: "Mozilla/5.0"}
	_, err := svc.Login(context.Background(), loginReq, sessionReq)

	assert.Equal(t, auth.ErrInvalidCredentials, err)
	assert.Equal(t, 1, users.users["u1"].FailedLogins)
}

func TestAuthService_Login_LocksAfterRepeatedFailures(t *testing.T) {
	users := &fakeUserRepo{users: map[string]user.User{
		"u1": newTestUser(t, "u1", "jdoe", "jdoe@example.com", "password123"),
	}}
	svc := newTestService(users, &fakeJWTRepo{})

	loginReq := auth.LoginRequest{UserNameOrEmail: "jdoe", Password: "wrongpassword"}
	sessionReq := auth.SessionTrackingRequest{}

	var err error
	for i := 0; i < maxFailedLogins; i++ {
		_, err = svc.Login(context.Background(), loginReq, sessionReq)
	}
	assert.Equal(t, auth.ErrTooManyAttempts, err)
	require.NotNil(t, users.users["u1"].LockedUntil)

	// Correct password is still refused while the lock holds.
	loginReq.Password = "password123"
	_, err = svc.Login(context.Background(), loginReq, sessionReq)
	assert.Equal(t, auth.ErrTooManyAttempts, err)
}

func TestAuthService_RefreshToken_RejectsGarbage(t *testing.T) {
	svc := newTestService(&fakeUserRepo{users: map[string]user.User{}}, &fakeJWTRepo{})

	_, err := svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: "not-a-token"})

	assert.Equal(t, auth.ErrInvalidToken, err)
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	users := &fakeUserRepo{users: map[string]user.User{
		"u1": newTestUser(t, "u1", "jdoe", "jdoe@example.com", "password123"),
	}}
	svc := newTestService(users, &fakeJWTRepo{})

	accessToken, _, err := svc.Service.GenerateAccessToken("u1", "jdoe@example.com", "Test User", "company-1", user.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: accessToken})

	assert.Equal(t, auth.ErrInvalidToken, err)
}

func TestAuthService_RefreshToken_RejectsRevoked(t *testing.T) {
	users := &fakeUserRepo{users: map[string]user.User{
		"u1": newTestUser(t, "u1", "jdoe", "jdoe@example.com", "password123"),
	}}
	tokens := &fakeJWTRepo{}
	svc := newTestService(users, tokens)

	refreshToken, _, err := svc.Service.GenerateRefreshToken("u1")
	require.NoError(t, err)
	require.NoError(t, tokens.RevokeRefreshToken(context.Background(), refreshToken))

	_, err = svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: refreshToken})

	assert.Equal(t, auth.ErrRefreshTokenRevoked, err)
}

func TestAuthService_Logout_AlreadyRevoked(t *testing.T) {
	tokens := &fakeJWTRepo{revoked: map[string]bool{"tok": true}}
	svc := newTestService(&fakeUserRepo{users: map[string]user.User{}}, tokens)

	err := svc.Logout(context.Background(), "tok")

	assert.NoError(t, err)
	assert.True(t, tokens.revoked["tok"])
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	tokens := &fakeJWTRepo{revoked: map[string]bool{"tok": false}}
	svc := newTestService(&fakeUserRepo{users: map[string]user.User{}}, tokens)

	err := svc.Logout(context.Background(), "tok")

	assert.NoError(t, err)
	assert.True(t, tokens.revoked["tok"])
}
