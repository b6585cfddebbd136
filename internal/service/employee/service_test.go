package employee

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/employee"
)

type fakeEmployeeRepo struct {
	employees []employee.Employee
	nextID    int
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	for _, existing := range f.employees {
		if existing.IndustryNumber == emp.IndustryNumber {
			return employee.Employee{}, employee.ErrIRNExists
		}
	}
	f.nextID++
	emp.ID = fmt.Sprintf("emp-%d", f.nextID)
	f.employees = append(f.employees, emp)
	return emp, nil
}

func (f *fakeEmployeeRepo) CreateBatch(ctx context.Context, emps []employee.Employee) ([]employee.Employee, error) {
	before := len(f.employees)
	var created []employee.Employee
	for _, emp := range emps {
		c, err := f.Create(ctx, emp)
		if err != nil {
			f.employees = f.employees[:before]
			return nil, err
		}
		created = append(created, c)
	}
	return created, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id, _ string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByIRN(_ context.Context, _, irn string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.IndustryNumber == irn {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(_ context.Context, _ string) ([]employee.Employee, error) {
	return f.employees, nil
}

func (f *fakeEmployeeRepo) UpdateField(_ context.Context, _, _, _ string, _ interface{}) error {
	return nil
}

func buildXLSX(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestBulkImport_XLSX(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	svc := NewEmployeeService(repo)

	data := buildXLSX(t, [][]interface{}{
		{"IRN", "First Name", "last_name", "job", "gang", "Type", "isEnrolled"},
		{"IRN-0001", "Thandi", "Nkosi", "Picker", "Gang A", "Seasonal", "yes"},
		{"IRN-0002", "Sipho", "Dlamini", "Driver", "", "", ""},
		{"", "", "", "", "", "", ""}, // no identity, skipped
	})

	result, err := svc.BulkImport(context.Background(), "company-1", "roster.xlsx", data)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Skipped)

	first := result.Employees[0]
	assert.Equal(t, "IRN-0001", first.IndustryNumber)
	assert.Equal(t, "Thandi", first.FirstName)
	assert.Equal(t, "Nkosi", first.LastName)
	assert.Equal(t, "Picker", first.Occupation)
	require.NotNil(t, first.Unit)
	assert.Equal(t, "Gang A", *first.Unit)
	assert.Equal(t, "seasonal", first.EmploymentType)
	assert.True(t, first.IsEnrolled)

	second := result.Employees[1]
	assert.Equal(t, "permanent", second.EmploymentType, "missing type defaults")
	assert.Equal(t, "active", second.Status)
	assert.False(t, second.IsEnrolled)
}

func TestBulkImport_CSV(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	svc := NewEmployeeService(repo)

	data := []byte("irn,firstName,lastName,occupation\nIRN-0003,Lerato,Mokoena,Supervisor\n")

	result, err := svc.BulkImport(context.Background(), "company-1", "roster.csv", data)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, "Supervisor", result.Employees[0].Occupation)
}

func TestBulkImport_DuplicateIRNFailsBatch(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	svc := NewEmployeeService(repo)

	data := []byte("irn,firstName\nIRN-0004,Ana\nIRN-0004,Bert\n")

	_, err := svc.BulkImport(context.Background(), "company-1", "roster.csv", data)

	assert.ErrorIs(t, err, employee.ErrIRNExists)
	assert.Empty(t, repo.employees, "batch must not partially apply")
}

func TestBulkImport_EmptySheet(t *testing.T) {
	svc := NewEmployeeService(&fakeEmployeeRepo{})

	data := buildXLSX(t, [][]interface{}{{"IRN", "firstName"}})

	_, err := svc.BulkImport(context.Background(), "company-1", "roster.xlsx", data)

	assert.ErrorIs(t, err, employee.ErrEmptyImport)
}

func TestBulkImport_Unreadable(t *testing.T) {
	svc := NewEmployeeService(&fakeEmployeeRepo{})

	_, err := svc.BulkImport(context.Background(), "company-1", "roster.xlsx", []byte("not a workbook"))

	assert.ErrorIs(t, err, employee.ErrUnreadableImport)
}

func TestExportCSV_RoundTripsImportColumns(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	svc := NewEmployeeService(repo)

	_, err := svc.Create(context.Background(), "company-1", employee.CreateEmployeeRequest{
		IndustryNumber: "IRN-0005",
		FirstName:      "Zanele",
		LastName:       "Khumalo",
		Occupation:     "Packer",
		Shift:          "night",
	})
	require.NoError(t, err)

	out, err := svc.ExportCSV(context.Background(), "company-1")
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	header := records[0]
	assert.Equal(t, "industryNumber", header[0])

	// Every exported header maps back to an importable field.
	for _, col := range header {
		_, ok := canonicalField(col)
		assert.True(t, ok, "column %q has no import alias", col)
	}

	row := records[1]
	assert.Equal(t, "IRN-0005", row[0])
	assert.Equal(t, "Zanele", row[1])
	assert.Equal(t, "night", row[9])
}
