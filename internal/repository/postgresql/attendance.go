package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/attendance"
	"github.com/givenmphiwe/bioclock-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `id, company_id, employee_id, date, clock_in, clock_out, shift,
	   location, note, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID,
		&rec.CompanyID,
		&rec.EmployeeID,
		&rec.Date,
		&rec.ClockIn,
		&rec.ClockOut,
		&rec.Shift,
		&rec.Location,
		&rec.Note,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return attendance.Record{}, err
	}
	return rec, nil
}

// GetDay implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetDay(ctx context.Context, companyID string, date time.Time) (map[string]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE company_id = $1 AND date = $2
	`

	rows, err := q.Query(ctx, query, companyID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshot := make(map[string]attendance.Record)
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		snapshot[rec.EmployeeID] = rec
	}
	return snapshot, rows.Err()
}

// GetRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetRange(ctx context.Context, companyID string, from, to time.Time) (map[string]map[string]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE company_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byDay := make(map[string]map[string]attendance.Record)
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		key := rec.Date.Format("2006-01-02")
		if byDay[key] == nil {
			byDay[key] = make(map[string]attendance.Record)
		}
		byDay[key][rec.EmployeeID] = rec
	}
	return byDay, rows.Err()
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, companyID string, employeeID string, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE company_id = $1 AND employee_id = $2 AND date = $3
	`

	rec, err := scanAttendance(q.QueryRow(ctx, query, companyID, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, attendance.ErrRecordNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// UpsertClockIn implements attendance.AttendanceRepository. A second
// clock-in for the same day keeps the earlier time.
func (r *attendanceRepositoryImpl) UpsertClockIn(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (company_id, employee_id, date, clock_in, shift, location, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (company_id, employee_id, date)
		DO UPDATE SET
			clock_in = LEAST(attendance_records.clock_in, EXCLUDED.clock_in),
			updated_at = NOW()
		RETURNING ` + attendanceColumns + `
	`

	stored, err := scanAttendance(q.QueryRow(ctx, query,
		rec.CompanyID,
		rec.EmployeeID,
		rec.Date,
		rec.ClockIn,
		rec.Shift,
		rec.Location,
		rec.Note,
	))
	if err != nil {
		return attendance.Record{}, err
	}
	return stored, nil
}

// ListOpen implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListOpen(ctx context.Context, before time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE date < $1 AND clock_in IS NOT NULL AND clock_out IS NULL
		ORDER BY company_id, date
	`

	rows, err := q.Query(ctx, query, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var open []attendance.Record
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		open = append(open, rec)
	}
	return open, rows.Err()
}

// SetClockOut implements attendance.AttendanceRepository. The clock-out
// only lands on a row that has a clock-in before it.
func (r *attendanceRepositoryImpl) SetClockOut(ctx context.Context, companyID string, employeeID string, date time.Time, clockOut time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET clock_out = $1, updated_at = NOW()
		WHERE company_id = $2 AND employee_id = $3 AND date = $4
		  AND clock_in IS NOT NULL AND clock_in <= $1
		RETURNING ` + attendanceColumns + `
	`

	stored, err := scanAttendance(q.QueryRow(ctx, query, clockOut, companyID, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			rec, lookupErr := r.GetByEmployeeAndDate(ctx, companyID, employeeID, date)
			if lookupErr != nil {
				return attendance.Record{}, attendance.ErrNotClockedIn
			}
			if rec.ClockIn != nil && clockOut.Before(*rec.ClockIn) {
				return attendance.Record{}, attendance.ErrClockOutBeforeIn
			}
			return attendance.Record{}, attendance.ErrNotClockedIn
		}
		return attendance.Record{}, err
	}
	return stored, nil
}
