package employee

import (
	"github.com/givenmphiwe/bioclock-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	IndustryNumber string  `json:"industryNumber"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	IDNumber       *string `json:"idNumber,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Occupation     string  `json:"occupation"`
	Unit           *string `json:"unit,omitempty"`
	EmploymentType string  `json:"employmentType"`
	Status         string  `json:"status"`
	Shift          string  `json:"shift"`
	IsEnrolled     bool    `json:"isEnrolled"`
	Age            *int    `json:"age,omitempty"`
	DateOfBirth    *string `json:"dateOfBirth,omitempty"`
	HireDate       *string `json:"hireDate,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.IndustryNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "industryNumber",
			Message: "industry number is required",
		})
	} else if !validator.IsValidIRN(r.IndustryNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "industryNumber",
			Message: "industry number must be 4-20 alphanumeric characters",
		})
	}

	if validator.IsEmpty(r.FirstName) && validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "firstName",
			Message: "a first or last name is required",
		})
	}

	if r.Email != nil && !validator.IsEmpty(*r.Email) && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email address",
		})
	}

	if !validator.IsEmpty(r.EmploymentType) &&
		!validator.IsInSlice(r.EmploymentType, []string{"permanent", "contract", "seasonal"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "employmentType",
			Message: "employment type must be permanent, contract or seasonal",
		})
	}

	if !validator.IsEmpty(r.Shift) && !validator.IsInSlice(r.Shift, []string{"day", "night"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift",
			Message: "shift must be day or night",
		})
	}

	if r.DateOfBirth != nil && !validator.IsEmpty(*r.DateOfBirth) {
		if _, ok := validator.IsValidDate(*r.DateOfBirth); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "dateOfBirth",
				Message: "date of birth must be YYYY-MM-DD",
			})
		}
	}

	if r.HireDate != nil && !validator.IsEmpty(*r.HireDate) {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "hireDate",
				Message: "hire date must be YYYY-MM-DD",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateFieldRequest is a single-cell edit from the employee grid.
type UpdateFieldRequest struct {
	Field string      `json:"field"`
	Value interface{} `json:"value"`
}

func (r *UpdateFieldRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Field) {
		errs = append(errs, validator.ValidationError{
			Field:   "field",
			Message: "field name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	IndustryNumber string  `json:"industryNumber"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	FullName       string  `json:"fullName"`
	IDNumber       *string `json:"idNumber,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Occupation     string  `json:"occupation"`
	Unit           *string `json:"unit,omitempty"`
	EmploymentType string  `json:"employmentType"`
	Status         string  `json:"status"`
	Shift          string  `json:"shift"`
	IsEnrolled     bool    `json:"isEnrolled"`
	Age            *int    `json:"age,omitempty"`
	DateOfBirth    *string `json:"dateOfBirth,omitempty"`
	HireDate       *string `json:"hireDate,omitempty"`
}

type BulkImportResult struct {
	Imported  int                `json:"imported"`
	Skipped   int                `json:"skipped"`
	Employees []EmployeeResponse `json:"employees"`
}
