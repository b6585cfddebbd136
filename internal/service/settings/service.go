package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/employee"
	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/settings"
)

type SettingsServiceImpl struct {
	settingsRepo settings.SettingsRepository
}

func NewSettingsService(settingsRepo settings.SettingsRepository) settings.SettingsService {
	return &SettingsServiceImpl{settingsRepo: settingsRepo}
}

func toResponse(s settings.Settings) settings.SettingsResponse {
	workingHours := make(map[string]settings.ShiftRule, len(s.WorkingHours))
	for shift, rule := range s.WorkingHours {
		workingHours[string(shift)] = rule
	}
	return settings.SettingsResponse{
		WorkingHours:   workingHours,
		GraceMinutes:   s.GraceMinutes,
		PayRates:       s.PayRates,
		LeavePolicy:    s.LeavePolicy,
		AutoResolution: s.AutoResolution,
		PayrollRules:   s.PayrollRules,
		Currency:       s.Currency,
	}
}

// Get implements settings.SettingsService. A company with no stored
// settings gets the defaults.
func (s *SettingsServiceImpl) Get(ctx context.Context, companyID string) (settings.SettingsResponse, error) {
	stored, err := s.settingsRepo.Get(ctx, companyID)
	if err != nil {
		if err == settings.ErrSettingsNotFound {
			return toResponse(settings.Defaults(companyID)), nil
		}
		return settings.SettingsResponse{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return toResponse(stored), nil
}

// Update implements settings.SettingsService. The request is a partial
// update; absent sections keep their stored values.
func (s *SettingsServiceImpl) Update(ctx context.Context, companyID string, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	current, err := s.settingsRepo.Get(ctx, companyID)
	if err != nil {
		if err != settings.ErrSettingsNotFound {
			return settings.SettingsResponse{}, fmt.Errorf("failed to get settings: %w", err)
		}
		current = settings.Defaults(companyID)
	}

	for shift, rule := range req.WorkingHours {
		current.WorkingHours[employee.ShiftType(shift)] = rule
	}
	if req.GraceMinutes != nil {
		current.GraceMinutes = *req.GraceMinutes
	}
	for occ, rate := range req.PayRates {
		key := strings.ReplaceAll(strings.ToLower(occ), " ", "_")
		current.PayRates[key] = rate
	}
	if req.LeavePolicy != nil {
		current.LeavePolicy = *req.LeavePolicy
	}
	if req.AutoResolution != nil {
		current.AutoResolution = *req.AutoResolution
	}
	if req.PayrollRules != nil {
		current.PayrollRules = *req.PayrollRules
	}
	if req.Currency != nil {
		current.Currency = *req.Currency
	}

	stored, err := s.settingsRepo.Upsert(ctx, current)
	if err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to save settings: %w", err)
	}
	return toResponse(stored), nil
}
