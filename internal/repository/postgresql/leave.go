package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/leave"
	"github.com/givenmphiwe/bioclock-backend-go/internal/pkg/database"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

const leaveColumns = `id, company_id, employee_id, start_date, end_date, days, reason,
	   status, decline_reason, decided_by, decided_at, created_at, updated_at`

func scanLeave(row pgx.Row) (leave.Request, error) {
	var req leave.Request
	err := row.Scan(
		&req.ID,
		&req.CompanyID,
		&req.EmployeeID,
		&req.StartDate,
		&req.EndDate,
		&req.Days,
		&req.Reason,
		&req.Status,
		&req.DeclineReason,
		&req.DecidedBy,
		&req.DecidedAt,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return leave.Request{}, err
	}
	return req, nil
}

// Create implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, req *leave.Request) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (company_id, employee_id, start_date, end_date, days, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + leaveColumns + `
	`

	stored, err := scanLeave(q.QueryRow(ctx, query,
		req.CompanyID,
		req.EmployeeID,
		req.StartDate,
		req.EndDate,
		req.Days,
		req.Reason,
		req.Status,
	))
	if err != nil {
		return err
	}
	*req = stored
	return nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id, companyID string) (*leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests
		WHERE id = $1 AND company_id = $2
	`

	req, err := scanLeave(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, leave.ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

// List implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) List(ctx context.Context, companyID string, status *leave.Status) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests
		WHERE company_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, companyID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []leave.Request
	for rows.Next() {
		req, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// ListByEmployee implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListByEmployee(ctx context.Context, employeeID, companyID string) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests
		WHERE employee_id = $1 AND company_id = $2
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []leave.Request
	for rows.Next() {
		req, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// UpdateStatus implements leave.LeaveRepository. Only pending requests
// can be decided.
func (r *leaveRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.Status, declineReason *string, decidedBy string, decidedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, decline_reason = $2, decided_by = $3, decided_at = $4, updated_at = NOW()
		WHERE id = $5 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, status, declineReason, decidedBy, decidedAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrAlreadyDecided
	}
	return nil
}

// GetBalance implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetBalance(ctx context.Context, employeeID string, year int) (*leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, year, remaining, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND year = $2
	`

	var b leave.Balance
	err := q.QueryRow(ctx, query, employeeID, year).Scan(&b.EmployeeID, &b.Year, &b.Remaining, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, leave.ErrRequestNotFound
		}
		return nil, err
	}
	return &b, nil
}

// EnsureBalance implements leave.LeaveRepository. Existing balances are
// left untouched.
func (r *leaveRepositoryImpl) EnsureBalance(ctx context.Context, employeeID string, year, initial int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (employee_id, year, remaining)
		VALUES ($1, $2, $3)
		ON CONFLICT (employee_id, year) DO NOTHING
	`

	_, err := q.Exec(ctx, query, employeeID, year, initial)
	return err
}

// DecrementBalance implements leave.LeaveRepository. The guard in the
// WHERE clause makes the check-and-decrement a single atomic statement,
// so two concurrent approvals cannot both pass a stale balance check.
func (r *leaveRepositoryImpl) DecrementBalance(ctx context.Context, employeeID string, year, days int) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET remaining = remaining - $1, updated_at = NOW()
		WHERE employee_id = $2 AND year = $3 AND remaining >= $1
	`

	tag, err := q.Exec(ctx, query, days, employeeID, year)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// RestoreBalance implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) RestoreBalance(ctx context.Context, employeeID string, year, days int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET remaining = remaining + $1, updated_at = NOW()
		WHERE employee_id = $2 AND year = $3
	`

	_, err := q.Exec(ctx, query, days, employeeID, year)
	return err
}
