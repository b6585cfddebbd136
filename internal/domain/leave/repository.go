package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	Create(ctx context.Context, req *Request) error
	GetByID(ctx context.Context, id, companyID string) (*Request, error)
	List(ctx context.Context, companyID string, status *Status) ([]Request, error)
	ListByEmployee(ctx context.Context, employeeID, companyID string) ([]Request, error)
	UpdateStatus(ctx context.Context, id string, status Status, declineReason *string, decidedBy string, decidedAt time.Time) error

	GetBalance(ctx context.Context, employeeID string, year int) (*Balance, error)
	EnsureBalance(ctx context.Context, employeeID string, year, initial int) error
	// DecrementBalance subtracts days from the employee's balance only
	// when the remaining balance covers them; it reports whether the
	// decrement was applied.
	DecrementBalance(ctx context.Context, employeeID string, year, days int) (bool, error)
	// RestoreBalance gives days back after a decision that decremented
	// the balance could not be recorded.
	RestoreBalance(ctx context.Context, employeeID string, year, days int) error
}
