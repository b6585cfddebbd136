package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/employee"
	"github.com/givenmphiwe/bioclock-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, company_id, industry_number, first_name, last_name, id_number,
	   email, phone, occupation, unit, employment_type, status, shift, is_enrolled,
	   age, date_of_birth, hire_date, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.CompanyID,
		&e.IndustryNumber,
		&e.FirstName,
		&e.LastName,
		&e.IDNumber,
		&e.Email,
		&e.Phone,
		&e.Occupation,
		&e.Unit,
		&e.EmploymentType,
		&e.Status,
		&e.Shift,
		&e.IsEnrolled,
		&e.Age,
		&e.DateOfBirth,
		&e.HireDate,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	return e, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			company_id, industry_number, first_name, last_name, id_number, email, phone,
			occupation, unit, employment_type, status, shift, is_enrolled, age,
			date_of_birth, hire_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + employeeColumns + `
	`

	created, err := scanEmployee(q.QueryRow(ctx, query,
		emp.CompanyID,
		emp.IndustryNumber,
		emp.FirstName,
		emp.LastName,
		emp.IDNumber,
		emp.Email,
		emp.Phone,
		emp.Occupation,
		emp.Unit,
		emp.EmploymentType,
		emp.Status,
		emp.Shift,
		emp.IsEnrolled,
		emp.Age,
		emp.DateOfBirth,
		emp.HireDate,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrIRNExists
		}
		return employee.Employee{}, err
	}
	return created, nil
}

// CreateBatch implements employee.EmployeeRepository. The whole batch
// is inserted in one transaction; any failure rolls back every row.
func (r *employeeRepositoryImpl) CreateBatch(ctx context.Context, emps []employee.Employee) ([]employee.Employee, error) {
	created := make([]employee.Employee, 0, len(emps))

	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		for _, emp := range emps {
			c, err := r.Create(txCtx, emp)
			if err != nil {
				return err
			}
			created = append(created, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1 AND company_id = $2
	`

	found, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return found, nil
}

// GetByIRN implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByIRN(ctx context.Context, companyID, irn string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE industry_number = $1 AND company_id = $2
	`

	found, err := scanEmployee(q.QueryRow(ctx, query, irn, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return found, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE company_id = $1
		ORDER BY last_name, first_name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emps []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		emps = append(emps, e)
	}
	return emps, rows.Err()
}

// columnFor maps the editable field names the dashboard sends to their
// columns. Identity fields are absent on purpose.
var columnFor = map[string]string{
	"firstName":      "first_name",
	"lastName":       "last_name",
	"idNumber":       "id_number",
	"email":          "email",
	"phone":          "phone",
	"occupation":     "occupation",
	"unit":           "unit",
	"employmentType": "employment_type",
	"status":         "status",
	"shift":          "shift",
	"isEnrolled":     "is_enrolled",
	"age":            "age",
}

// UpdateField implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdateField(ctx context.Context, id, companyID, field string, value interface{}) error {
	column, ok := columnFor[field]
	if !ok {
		return employee.ErrImmutableField
	}

	q := GetQuerier(ctx, r.db)

	query := `UPDATE employees SET ` + column + ` = $1, updated_at = NOW() WHERE id = $2 AND company_id = $3`
	tag, err := q.Exec(ctx, query, value, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
