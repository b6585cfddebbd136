package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/user"
	"github.com/givenmphiwe/bioclock-backend-go/internal/repository/postgresql"
)

type UserServiceImpl struct {
	userRepo user.UserRepository
	jwtRepo  postgresql.JWTRepository
}

func NewUserService(userRepo user.UserRepository, jwtRepo postgresql.JWTRepository) user.UserService {
	return &UserServiceImpl{userRepo: userRepo, jwtRepo: jwtRepo}
}

func toResponse(u user.User) user.UserResponse {
	return user.UserResponse{
		ID:          u.ID,
		UserName:    u.UserName,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Role:        string(u.Role),
		CreatedAt:   u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, companyID string, req user.CreateUserRequest) (user.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.userRepo.GetByUserNameOrEmail(ctx, email); err == nil {
		return user.UserResponse{}, user.ErrEmailAlreadyExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return user.UserResponse{}, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	passwordHash := string(hash)

	role := user.Role(req.Role)
	if role == "" {
		role = user.RoleMember
	}

	created, err := s.userRepo.Create(ctx, user.User{
		CompanyID:    companyID,
		UserName:     strings.TrimSpace(req.UserName),
		DisplayName:  strings.TrimSpace(req.DisplayName),
		Email:        email,
		PasswordHash: &passwordHash,
		Role:         role,
	})
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}
	return toResponse(created), nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, companyID string) ([]user.UserResponse, error) {
	users, err := s.userRepo.List(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toResponse(u))
	}
	return responses, nil
}

// Delete implements user.UserService.
func (s *UserServiceImpl) Delete(ctx context.Context, companyID string, id string) error {
	if err := s.userRepo.Delete(ctx, id, companyID); err != nil {
		return err
	}
	if err := s.jwtRepo.RevokeAllForUser(ctx, id); err != nil {
		return fmt.Errorf("failed to revoke sessions for deleted user: %w", err)
	}
	return nil
}
