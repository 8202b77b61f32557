package settings

import "context"

type SettingsRepository interface {
	// Get returns ErrSettingsNotFound when the row has not been created yet.
	// Inside a transaction the row is share-locked so a concurrent toggle
	// waits for the caller to commit.
	Get(ctx context.Context) (Settings, error)
	GetForUpdate(ctx context.Context) (Settings, error)
	// Ensure creates the row with the default mode if it is missing.
	Ensure(ctx context.Context) error
	Save(ctx context.Context, s Settings) (Settings, error)
}
