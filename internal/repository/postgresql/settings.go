package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/employee"
	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/settings"
	"github.com/givenmphiwe/bioclock-backend-go/internal/pkg/database"
)

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepositoryImpl{db: db}
}

// Get implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Get(ctx context.Context, companyID string) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT company_id, working_hours, grace_minutes, pay_rates, leave_policy,
			   auto_resolution, payroll_rules, currency, updated_at
		FROM company_settings
		WHERE company_id = $1
	`

	var (
		s              settings.Settings
		workingHours   []byte
		payRates       []byte
		leavePolicy    []byte
		autoResolution []byte
		payrollRules   []byte
	)
	err := q.QueryRow(ctx, query, companyID).Scan(
		&s.CompanyID,
		&workingHours,
		&s.GraceMinutes,
		&payRates,
		&leavePolicy,
		&autoResolution,
		&payrollRules,
		&s.Currency,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.Settings{}, settings.ErrSettingsNotFound
		}
		return settings.Settings{}, err
	}

	s.WorkingHours = make(map[employee.ShiftType]settings.ShiftRule)
	if err := json.Unmarshal(workingHours, &s.WorkingHours); err != nil {
		return settings.Settings{}, fmt.Errorf("decode working_hours: %w", err)
	}
	s.PayRates = make(map[string]settings.PayRate)
	if err := json.Unmarshal(payRates, &s.PayRates); err != nil {
		return settings.Settings{}, fmt.Errorf("decode pay_rates: %w", err)
	}
	if err := json.Unmarshal(leavePolicy, &s.LeavePolicy); err != nil {
		return settings.Settings{}, fmt.Errorf("decode leave_policy: %w", err)
	}
	if err := json.Unmarshal(autoResolution, &s.AutoResolution); err != nil {
		return settings.Settings{}, fmt.Errorf("decode auto_resolution: %w", err)
	}
	if err := json.Unmarshal(payrollRules, &s.PayrollRules); err != nil {
		return settings.Settings{}, fmt.Errorf("decode payroll_rules: %w", err)
	}
	return s, nil
}

// Upsert implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Upsert(ctx context.Context, s settings.Settings) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	workingHours, err := json.Marshal(s.WorkingHours)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("encode working_hours: %w", err)
	}
	payRates, err := json.Marshal(s.PayRates)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("encode pay_rates: %w", err)
	}
	leavePolicy, err := json.Marshal(s.LeavePolicy)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("encode leave_policy: %w", err)
	}
	autoResolution, err := json.Marshal(s.AutoResolution)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("encode auto_resolution: %w", err)
	}
	payrollRules, err := json.Marshal(s.PayrollRules)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("encode payroll_rules: %w", err)
	}

	query := `
		INSERT INTO company_settings (
			company_id, working_hours, grace_minutes, pay_rates, leave_policy,
			auto_resolution, payroll_rules, currency
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (company_id)
		DO UPDATE SET
			working_hours = EXCLUDED.working_hours,
			grace_minutes = EXCLUDED.grace_minutes,
			pay_rates = EXCLUDED.pay_rates,
			leave_policy = EXCLUDED.leave_policy,
			auto_resolution = EXCLUDED.auto_resolution,
			payroll_rules = EXCLUDED.payroll_rules,
			currency = EXCLUDED.currency,
			updated_at = NOW()
		RETURNING updated_at
	`

	err = q.QueryRow(ctx, query,
		s.CompanyID,
		workingHours,
		s.GraceMinutes,
		payRates,
		leavePolicy,
		autoResolution,
		payrollRules,
		s.Currency,
	).Scan(&s.UpdatedAt)
	if err != nil {
		return settings.Settings{}, err
	}
	return s, nil
}
