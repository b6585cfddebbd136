package cron

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/attendance"
	"github.com/givenmphiwe/bioclock-backend-go/internal/domain/settings"
	"github.com/givenmphiwe/bioclock-backend-go/internal/pkg/metrics"
)

type closedCall struct {
	companyID  string
	employeeID string
	clockOut   time.Time
}

type fakeAttendanceRepo struct {
	open   []attendance.Record
	closed []closedCall
}

func (f *fakeAttendanceRepo) GetDay(ctx context.Context, companyID string, date time.Time) (map[string]attendance.Record, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) GetRange(ctx context.Context, companyID string, from, to time.Time) (map[string]map[string]attendance.Record, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.Record, error) {
	return nil, attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) UpsertClockIn(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	return rec, nil
}

func (f *fakeAttendanceRepo) SetClockOut(ctx context.Context, companyID, employeeID string, date time.Time, clockOut time.Time) (attendance.Record, error) {
	f.closed = append(f.closed, closedCall{companyID: companyID, employeeID: employeeID, clockOut: clockOut})
	return attendance.Record{CompanyID: companyID, EmployeeID: employeeID, Date: date, ClockOut: &clockOut}, nil
}

func (f *fakeAttendanceRepo) ListOpen(ctx context.Context, before time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range f.open {
		if rec.Date.Before(before) {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeSettingsRepo struct {
	byCompany map[string]settings.Settings
}

func (f *fakeSettingsRepo) Get(ctx context.Context, companyID string) (settings.Settings, error) {
	s, ok := f.byCompany[companyID]
	if !ok {
		return settings.Settings{}, settings.ErrSettingsNotFound
	}
	return s, nil
}

func (f *fakeSettingsRepo) Upsert(ctx context.Context, s settings.Settings) (settings.Settings, error) {
	f.byCompany[s.CompanyID] = s
	return s, nil
}

func openRecord(companyID, employeeID string, day time.Time) attendance.Record {
	in := day.Add(8 * time.Hour)
	return attendance.Record{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Date:       day,
		ClockIn:    &in,
	}
}

func newJobsFixture(repo *fakeAttendanceRepo, settingsRepo *fakeSettingsRepo, now time.Time) *AttendanceJobs {
	jobs := NewAttendanceJobs(repo, settingsRepo, metrics.NewMetrics(prometheus.NewRegistry()))
	jobs.now = func() time.Time { return now }
	return jobs
}

func TestResolveOpenRecords_ClosesAtConfiguredTime(t *testing.T) {
	now := time.Date(2026, 3, 3, 2, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	repo := &fakeAttendanceRepo{open: []attendance.Record{
		openRecord("c1", "e1", yesterday),
		openRecord("c1", "e2", yesterday),
	}}
	cfg := settings.Defaults("c1")
	cfg.AutoResolution.AutoClockOutTime = "18:30"
	settingsRepo := &fakeSettingsRepo{byCompany: map[string]settings.Settings{"c1": cfg}}

	jobs := newJobsFixture(repo, settingsRepo, now)
	require.NoError(t, jobs.ResolveOpenRecords(context.Background()))

	require.Len(t, repo.closed, 2)
	want := time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, want, repo.closed[0].clockOut)
	assert.Equal(t, want, repo.closed[1].clockOut)
}

func TestResolveOpenRecords_SkipsToday(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	repo := &fakeAttendanceRepo{open: []attendance.Record{openRecord("c1", "e1", today)}}
	settingsRepo := &fakeSettingsRepo{byCompany: map[string]settings.Settings{}}

	jobs := newJobsFixture(repo, settingsRepo, now)
	require.NoError(t, jobs.ResolveOpenRecords(context.Background()))

	assert.Empty(t, repo.closed, "records from the current day stay open")
}

func TestResolveOpenRecords_HonoursDisabledPolicy(t *testing.T) {
	now := time.Date(2026, 3, 3, 2, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	repo := &fakeAttendanceRepo{open: []attendance.Record{
		openRecord("c1", "e1", yesterday),
		openRecord("c2", "e9", yesterday),
	}}
	disabled := settings.Defaults("c1")
	disabled.AutoResolution.Enabled = false
	settingsRepo := &fakeSettingsRepo{byCompany: map[string]settings.Settings{"c1": disabled}}

	jobs := newJobsFixture(repo, settingsRepo, now)
	require.NoError(t, jobs.ResolveOpenRecords(context.Background()))

	// c2 has no stored settings and falls back to the default policy,
	// which auto-closes. c1 opted out.
	require.Len(t, repo.closed, 1)
	assert.Equal(t, "c2", repo.closed[0].companyID)
}

func TestClosingTime_FallsBackOnBadClock(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	got := closingTime(day, "not-a-clock")
	assert.Equal(t, time.Date(2026, 3, 2, 23, 59, 0, 0, time.UTC), got)
}
