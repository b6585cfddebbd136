package user

import (
	"context"
	"time"
)

type UserRepository interface {
	// GetByUserNameOrEmail resolves the login identifier the way the
	// login form does: a single field matching either column.
	GetByUserNameOrEmail(ctx context.Context, identifier string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, u User) (User, error)
	List(ctx context.Context, companyID string) ([]User, error)
	Delete(ctx context.Context, id string, companyID string) error
	RecordFailedLogin(ctx context.Context, id string, lockedUntil *time.Time) error
	ResetFailedLogins(ctx context.Context, id string) error
}
