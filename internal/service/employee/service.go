package employee

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/employee"
	"github.com/givenmphiwe/bioclock-backend-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

// headerAliases maps the spreadsheet header spellings seen in the wild
// to canonical field names. Matching is case-insensitive.
var headerAliases = map[string]string{
	"industrynumber":  "industryNumber",
	"irn":             "industryNumber",
	"industry_number": "industryNumber",
	"firstname":       "firstName",
	"first_name":      "firstName",
	"lastname":        "lastName",
	"last_name":       "lastName",
	"idnumber":        "idNumber",
	"id_number":       "idNumber",
	"email":           "email",
	"phone":           "phone",
	"cell":            "phone",
	"occupation":      "occupation",
	"occupationname":  "occupation",
	"job":             "occupation",
	"unit":            "unit",
	"gangunitname":    "unit",
	"gang_unit":       "unit",
	"gang":            "unit",
	"employmenttype":  "employmentType",
	"type":            "employmentType",
	"status":          "status",
	"shift":           "shift",
	"isenrolled":      "isEnrolled",
	"enrolled":        "isEnrolled",
	"age":             "age",
	"dateofbirth":     "dateOfBirth",
	"dob":             "dateOfBirth",
	"hiredate":        "hireDate",
	"start_date":      "hireDate",
}

var exportColumns = []string{
	"industryNumber", "firstName", "lastName", "occupation", "unit",
	"phone", "email", "employmentType", "status", "shift", "isEnrolled",
	"age", "dateOfBirth", "hireDate",
}

func canonicalField(header string) (string, bool) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(header)), " ", "")
	field, ok := headerAliases[key]
	return field, ok
}

func toResponse(emp employee.Employee) employee.EmployeeResponse {
	resp := employee.EmployeeResponse{
		ID:             emp.ID,
		IndustryNumber: emp.IndustryNumber,
		FirstName:      emp.FirstName,
		LastName:       emp.LastName,
		FullName:       emp.FullName(),
		IDNumber:       emp.IDNumber,
		Email:          emp.Email,
		Phone:          emp.Phone,
		Occupation:     emp.Occupation,
		Unit:           emp.Unit,
		EmploymentType: string(emp.EmploymentType),
		Status:         string(emp.Status),
		Shift:          string(emp.Shift),
		IsEnrolled:     emp.IsEnrolled,
		Age:            emp.Age,
	}
	if emp.DateOfBirth != nil {
		dob := emp.DateOfBirth.Format("2006-01-02")
		resp.DateOfBirth = &dob
	}
	if emp.HireDate != nil {
		hd := emp.HireDate.Format("2006-01-02")
		resp.HireDate = &hd
	}
	return resp
}

func fromRequest(companyID string, req employee.CreateEmployeeRequest) employee.Employee {
	emp := employee.Employee{
		CompanyID:      companyID,
		IndustryNumber: strings.TrimSpace(req.IndustryNumber),
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		IDNumber:       req.IDNumber,
		Email:          req.Email,
		Phone:          req.Phone,
		Occupation:     strings.TrimSpace(req.Occupation),
		Unit:           req.Unit,
		EmploymentType: employee.EmploymentType(strings.ToLower(req.EmploymentType)),
		Status:         employee.Status(strings.ToLower(req.Status)),
		Shift:          employee.ShiftType(strings.ToLower(req.Shift)),
		IsEnrolled:     req.IsEnrolled,
		Age:            req.Age,
	}
	if emp.EmploymentType == "" {
		emp.EmploymentType = employee.EmploymentTypePermanent
	}
	if emp.Status == "" {
		emp.Status = employee.StatusActive
	}
	if emp.Shift == "" {
		emp.Shift = employee.ShiftDay
	}
	if req.DateOfBirth != nil {
		if dob, ok := validator.IsValidDate(*req.DateOfBirth); ok {
			emp.DateOfBirth = &dob
		}
	}
	if req.HireDate != nil {
		if hd, ok := validator.IsValidDate(*req.HireDate); ok {
			emp.HireDate = &hd
		}
	}
	return emp
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, companyID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	created, err := s.employeeRepo.Create(ctx, fromRequest(companyID, req))
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toResponse(created), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, companyID string) ([]employee.EmployeeResponse, error) {
	emps, err := s.employeeRepo.List(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	responses := make([]employee.EmployeeResponse, 0, len(emps))
	for _, emp := range emps {
		responses = append(responses, toResponse(emp))
	}
	return responses, nil
}

// UpdateField implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateField(ctx context.Context, companyID string, id string, req employee.UpdateFieldRequest) error {
	return s.employeeRepo.UpdateField(ctx, id, companyID, req.Field, req.Value)
}

// BulkImport implements employee.EmployeeService.
func (s *EmployeeServiceImpl) BulkImport(ctx context.Context, companyID string, filename string, data []byte) (employee.BulkImportResult, error) {
	var rows [][]string
	var err error
	if strings.HasSuffix(strings.ToLower(filename), ".csv") {
		rows, err = readCSVRows(data)
	} else {
		rows, err = readXLSXRows(data)
	}
	if err != nil {
		return employee.BulkImportResult{}, employee.ErrUnreadableImport
	}
	if len(rows) < 2 {
		return employee.BulkImportResult{}, employee.ErrEmptyImport
	}

	fields := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		if field, ok := canonicalField(header); ok {
			fields[i] = field
		}
	}

	var emps []employee.Employee
	var skipped int
	for _, row := range rows[1:] {
		req := rowToRequest(fields, row)
		// Rows with no identity at all are skipped, not failed.
		if req.IndustryNumber == "" && req.FirstName == "" && req.LastName == "" {
			skipped++
			continue
		}
		emps = append(emps, fromRequest(companyID, req))
	}
	if len(emps) == 0 {
		return employee.BulkImportResult{}, employee.ErrEmptyImport
	}

	created, err := s.employeeRepo.CreateBatch(ctx, emps)
	if err != nil {
		return employee.BulkImportResult{}, err
	}

	result := employee.BulkImportResult{Imported: len(created), Skipped: skipped}
	for _, emp := range created {
		result.Employees = append(result.Employees, toResponse(emp))
	}
	return result, nil
}

func readXLSXRows(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, employee.ErrEmptyImport
	}
	return f.GetRows(sheets[0])
}

func readCSVRows(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func rowToRequest(fields []string, row []string) employee.CreateEmployeeRequest {
	var req employee.CreateEmployeeRequest
	for i, field := range fields {
		if field == "" || i >= len(row) {
			continue
		}
		value := strings.TrimSpace(row[i])
		if value == "" {
			continue
		}
		switch field {
		case "industryNumber":
			req.IndustryNumber = value
		case "firstName":
			req.FirstName = value
		case "lastName":
			req.LastName = value
		case "idNumber":
			req.IDNumber = &value
		case "email":
			req.Email = &value
		case "phone":
			req.Phone = &value
		case "occupation":
			req.Occupation = value
		case "unit":
			req.Unit = &value
		case "employmentType":
			req.EmploymentType = value
		case "status":
			req.Status = value
		case "shift":
			req.Shift = value
		case "isEnrolled":
			req.IsEnrolled = isTruthy(value)
		case "age":
			if age, err := strconv.Atoi(value); err == nil {
				req.Age = &age
			}
		case "dateOfBirth":
			req.DateOfBirth = &value
		case "hireDate":
			req.HireDate = &value
		}
	}
	return req
}

func isTruthy(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

// ExportCSV implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ExportCSV(ctx context.Context, companyID string) ([]byte, error) {
	emps, err := s.employeeRepo.List(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportColumns); err != nil {
		return nil, err
	}
	for _, emp := range emps {
		if err := w.Write(exportRow(emp)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportRow(emp employee.Employee) []string {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	date := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02")
	}
	age := ""
	if emp.Age != nil {
		age = strconv.Itoa(*emp.Age)
	}
	return []string{
		emp.IndustryNumber,
		emp.FirstName,
		emp.LastName,
		emp.Occupation,
		deref(emp.Unit),
		deref(emp.Phone),
		deref(emp.Email),
		string(emp.EmploymentType),
		string(emp.Status),
		string(emp.Shift),
		strconv.FormatBool(emp.IsEnrolled),
		age,
		date(emp.DateOfBirth),
		date(emp.HireDate),
	}
}
