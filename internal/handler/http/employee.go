package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/employee"
	"github.com/givenmphiwe/bioclock-backend-go/internal/handler/http/response"
	"github.com/givenmphiwe/bioclock-backend-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	UpdateField(w http.ResponseWriter, r *http.Request)
	BulkImport(w http.ResponseWriter, r *http.Request)
	ExportCSV(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
	metrics         *metrics.Metrics
}

func NewEmployeeHandler(employeeService employee.EmployeeService, m *metrics.Metrics) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService, metrics: m}
}

// Create implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	companyID, _, ok := requestClaims(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.employeeService.Create(r.Context(), companyID, req)
	if err != nil {
		slog.Error("Create employee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", created)
}

// List implements EmployeeHandler.
func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	companyID, _, ok := requestClaims(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	employees, err := h.employeeService.List(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employees)
}

// UpdateField implements EmployeeHandler.
func (h *EmployeeHandlerImpl) UpdateField(w http.ResponseWriter, r *http.Request) {
	companyID, _, ok := requestClaims(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	var req employee.UpdateFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update employee field decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.employeeService.UpdateField(r.Context(), companyID, employeeID, req); err != nil {
		slog.Error("Update employee field service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", nil)
}

// BulkImport implements EmployeeHandler.
func (h *EmployeeHandlerImpl) BulkImport(w http.ResponseWriter, r *http.Request) {
	companyID, _, ok := requestClaims(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Spreadsheet file is required", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("Failed to read uploaded spreadsheet", "error", err)
		response.BadRequest(w, "Could not read uploaded file", nil)
		return
	}

	result, err := h.employeeService.BulkImport(r.Context(), companyID, fileHeader.Filename, data)
	if err != nil {
		slog.Error("Bulk import service error", "error", err)
		response.HandleError(w, err)
		return
	}

	h.metrics.BulkImportRows.WithLabelValues("created").Add(float64(result.Imported))
	h.metrics.BulkImportRows.WithLabelValues("skipped").Add(float64(result.Skipped))
	response.Created(w, "Employees imported successfully", result)
}

// ExportCSV implements EmployeeHandler.
func (h *EmployeeHandlerImpl) ExportCSV(w http.ResponseWriter, r *http.Request) {
	companyID, _, ok := requestClaims(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	data, err := h.employeeService.ExportCSV(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="employees.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
