package user

import "time"

type User struct {
	ID           string
	CompanyID    string
	UserName     string
	DisplayName  string
	Email        string
	PasswordHash *string
	Role         Role
	FailedLogins int
	LockedUntil  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)
