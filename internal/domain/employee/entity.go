package employee

import "time"

type Employee struct {
	ID             string
	CompanyID      string
	IndustryNumber string
	FirstName      string
	LastName       string
	IDNumber       *string
	Email          *string
	Phone          *string
	Occupation     string
	Unit           *string
	EmploymentType EmploymentType
	Status         Status
	Shift          ShiftType
	IsEnrolled     bool
	Age            *int
	DateOfBirth    *time.Time
	HireDate       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

type EmploymentType string

const (
	EmploymentTypePermanent EmploymentType = "permanent"
	EmploymentTypeContract  EmploymentType = "contract"
	EmploymentTypeSeasonal  EmploymentType = "seasonal"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ShiftType selects which working-hours window applies to the employee
// when an attendance record does not carry its own shift.
type ShiftType string

const (
	ShiftDay   ShiftType = "day"
	ShiftNight ShiftType = "night"
)
