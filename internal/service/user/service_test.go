package user

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/auth"
	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/user"
)

type fakeUserRepo struct {
	users   map[string]user.User
	nextID  int
	deleted []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]user.User{}}
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
	f.nextID++
	u.ID = "u" + strconv.Itoa(f.nextID)
	u.CreatedAt = time.Now()
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) List(_ context.Context, companyID string) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		if u.CompanyID == companyID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string, companyID string) error {
	u, ok := f.users[id]
	if !ok || u.CompanyID != companyID {
		return user.ErrUserNotFound
	}
	delete(f.users, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeUserRepo) RecordFailedLogin(_ context.Context, _ string, _ *time.Time) error {
	return nil
}

func (f *fakeUserRepo) ResetFailedLogins(_ context.Context, _ string) error { return nil }

type fakeJWTRepo struct {
	revokedUsers []string
}

func (f *fakeJWTRepo) CreateRefreshToken(_ context.Context, _ string, _ string, _ int64, _ auth.SessionTrackingRequest) error {
	return nil
}

func (f *fakeJWTRepo) IsRefreshTokenRevoked(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (f *fakeJWTRepo) RevokeRefreshToken(_ context.Context, _ string) error { return nil }

func (f *fakeJWTRepo) RevokeAllForUser(_ context.Context, userID string) error {
	f.revokedUsers = append(f.revokedUsers, userID)
	return nil
}

func TestUserService_Create(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, &fakeJWTRepo{})

	created, err := svc.Create(context.Background(), "c1", user.CreateUserRequest{
		UserName:    "jdoe",
		DisplayName: "Jane Doe",
		Email:       "Jane@Example.com",
		Password:    "password123",
	})
	require.NoError(t, err)

	assert.Equal(t, "jdoe", created.UserName)
	assert.Equal(t, "jane@example.com", created.Email, "email is stored lowercased")
	assert.Equal(t, string(user.RoleMember), created.Role, "role defaults to member")

	stored := repo.users[created.ID]
	require.NotNil(t, stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*stored.PasswordHash), []byte("password123")))
}

func TestUserService_CreateDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, &fakeJWTRepo{})

	req := user.CreateUserRequest{UserName: "jdoe", Email: "jane@example.com", Password: "password123"}
	_, err := svc.Create(context.Background(), "c1", req)
	require.NoError(t, err)

	req.UserName = "jdoe2"
	_, err = svc.Create(context.Background(), "c1", req)
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
	assert.Len(t, repo.users, 1)
}

func TestUserService_DeleteRevokesSessions(t *testing.T) {
	repo := newFakeUserRepo()
	tokens := &fakeJWTRepo{}
	svc := NewUserService(repo, tokens)

	created, err := svc.Create(context.Background(), "c1", user.CreateUserRequest{
		UserName: "jdoe", Email: "jane@example.com", Password: "password123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "c1", created.ID))
	assert.Equal(t, []string{created.ID}, repo.deleted)
	assert.Equal(t, []string{created.ID}, tokens.revokedUsers, "deleting a user must revoke its refresh tokens")
}

func TestUserService_DeleteWrongCompany(t *testing.T) {
	repo := newFakeUserRepo()
	tokens := &fakeJWTRepo{}
	svc := NewUserService(repo, tokens)

	created, err := svc.Create(context.Background(), "c1", user.CreateUserRequest{
		UserName: "jdoe", Email: "jane@example.com", Password: "password123",
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), "c2", created.ID)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	assert.Empty(t, tokens.revokedUsers, "no revocation when the delete did not happen")
}
