package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	// CreateBatch inserts all rows or none; a duplicate IRN aborts the
	// whole batch.
	CreateBatch(ctx context.Context, emps []Employee) ([]Employee, error)
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	GetByIRN(ctx context.Context, companyID string, irn string) (Employee, error)
	List(ctx context.Context, companyID string) ([]Employee, error)
	UpdateField(ctx context.Context, id string, companyID string, column string, value interface{}) error
}
