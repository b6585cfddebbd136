package leave

import "context"

type LeaveService interface {
	Create(ctx context.Context, companyID string, req *CreateRequestRequest) (*RequestResponse, error)
	List(ctx context.Context, companyID string, status *Status) ([]RequestResponse, error)
	Decide(ctx context.Context, companyID, requestID, decidedBy string, req *DecideRequestRequest) (*RequestResponse, error)
	GetBalance(ctx context.Context, companyID, employeeID string) (*Balance, error)
}
