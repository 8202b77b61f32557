package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/settings"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/database"
)

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepositoryImpl{db: db}
}

// Get implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Get(ctx context.Context) (settings.Settings, error) {
	query := `SELECT mode, updated_at FROM settings WHERE id = 1`
	if inTransaction(ctx) {
		query += ` FOR SHARE`
	}
	return r.scanOne(ctx, query)
}

// GetForUpdate implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) GetForUpdate(ctx context.Context) (settings.Settings, error) {
	return r.scanOne(ctx, `SELECT mode, updated_at FROM settings WHERE id = 1 FOR UPDATE`)
}

func (r *settingsRepositoryImpl) scanOne(ctx context.Context, query string) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	var s settings.Settings
	err := q.QueryRow(ctx, query).Scan(&s.Mode, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.Settings{}, settings.ErrSettingsNotFound
		}
		return settings.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	return s, nil
}

// Ensure implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Ensure(ctx context.Context) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO settings (id, mode, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO NOTHING
	`, settings.DefaultMode)
	if err != nil {
		return fmt.Errorf("failed to ensure settings: %w", err)
	}
	return nil
}

// Save implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Save(ctx context.Context, s settings.Settings) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO settings (id, mode, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET mode = EXCLUDED.mode, updated_at = EXCLUDED.updated_at
		RETURNING mode, updated_at
	`

	var result settings.Settings
	if err := q.QueryRow(ctx, query, s.Mode).Scan(&result.Mode, &result.UpdatedAt); err != nil {
		return settings.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	return result, nil
}
