package memory

import (
	"context"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/settings"
)

type settingsRepository struct{ s *Store }

func NewSettingsRepository(s *Store) settings.SettingsRepository {
	return &settingsRepository{s: s}
}

func (r *settingsRepository) Get(ctx context.Context) (settings.Settings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.settings == nil {
		return settings.Settings{}, settings.ErrSettingsNotFound
	}
	return *r.s.settings, nil
}

func (r *settingsRepository) GetForUpdate(ctx context.Context) (settings.Settings, error) {
	return r.Get(ctx)
}

func (r *settingsRepository) Ensure(ctx context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.settings == nil {
		r.s.settings = &settings.Settings{Mode: settings.DefaultMode, UpdatedAt: r.s.now()}
	}
	return nil
}

func (r *settingsRepository) Save(ctx context.Context, st settings.Settings) (settings.Settings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	saved := settings.Settings{Mode: st.Mode, UpdatedAt: r.s.now()}
	r.s.settings = &saved
	return saved, nil
}
