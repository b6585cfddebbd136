package payroll

import "context"

type PayrollService interface {
	GetPayroll(ctx context.Context, companyID string, req *GetPayrollRequest) (*PayrollResponse, error)
	ExportCSV(ctx context.Context, companyID string, req *GetPayrollRequest) ([]byte, string, error)
}
