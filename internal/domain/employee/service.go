package employee

import "context"

type EmployeeService interface {
	Create(ctx context.Context, companyID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	List(ctx context.Context, companyID string) ([]EmployeeResponse, error)

	// UpdateField applies a single-cell grid edit to one employee.
	UpdateField(ctx context.Context, companyID string, id string, req UpdateFieldRequest) error

	// BulkImport parses an uploaded spreadsheet (xlsx or csv) and
	// creates every usable row, or fails the batch as a whole.
	BulkImport(ctx context.Context, companyID string, filename string, data []byte) (BulkImportResult, error)

	// ExportCSV renders the current roster with the same column set the
	// importer accepts.
	ExportCSV(ctx context.Context, companyID string) ([]byte, error)
}
