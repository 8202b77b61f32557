package settings

import "context"

type SettingsService interface {
	// GetMode never fails on a missing row; it reports DefaultMode.
	GetMode(ctx context.Context) (Mode, error)
	Get(ctx context.Context) (SettingsResponse, error)
	ToggleMode(ctx context.Context) (SettingsResponse, error)
}
