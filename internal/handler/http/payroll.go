package http

import (
	"fmt"
	"net/http"

	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/payroll"
	"github.com/givenmphiwe/bioclock-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	GetPayroll(w http.ResponseWriter, r *http.Request)
	ExportCSV(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

func payrollRequestFromQuery(r *http.Request) *payroll.GetPayrollRequest {
	q := r.URL.Query()
	return &payroll.GetPayrollRequest{
		Date:       q.Get("date"),
		Mode:       q.Get("mode"),
		Occupation: q.Get("occupation"),
		Search:     q.Get("search"),
	}
}

// GetPayroll implements PayrollHandler.
func (h *PayrollHandlerImpl) GetPayroll(w http.ResponseWriter, r *http.Request) {
	companyID, _, ok := requestClaims(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	req := payrollRequestFromQuery(r)
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.GetPayroll(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportCSV implements PayrollHandler.
func (h *PayrollHandlerImpl) ExportCSV(w http.ResponseWriter, r *http.Request) {
	companyID, _, ok := requestClaims(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	req := payrollRequestFromQuery(r)
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	data, filename, err := h.payrollService.ExportCSV(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
