package user

import "context"

type UserService interface {
	Create(ctx context.Context, companyID string, req CreateUserRequest) (UserResponse, error)
	List(ctx context.Context, companyID string) ([]UserResponse, error)

	// Delete removes a dashboard account and revokes every refresh
	// token issued to it, so open sessions cannot renew.
	Delete(ctx context.Context, companyID string, id string) error
}
