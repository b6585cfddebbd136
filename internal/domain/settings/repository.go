package settings

import "context"

type SettingsRepository interface {
	Get(ctx context.Context, companyID string) (Settings, error)
	Upsert(ctx context.Context, s Settings) (Settings, error)
}

type SettingsService interface {
	Get(ctx context.Context, companyID string) (SettingsResponse, error)
	Update(ctx context.Context, companyID string, req UpdateSettingsRequest) (SettingsResponse, error)
}
