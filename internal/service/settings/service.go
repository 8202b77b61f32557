package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/settings"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/database"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/metrics"
)

type SettingsServiceImpl struct {
	tx   database.Transactor
	repo settings.SettingsRepository
}

func NewSettingsService(tx database.Transactor, repo settings.SettingsRepository) settings.SettingsService {
	return &SettingsServiceImpl{tx: tx, repo: repo}
}

// GetMode implements settings.SettingsService.
func (s *SettingsServiceImpl) GetMode(ctx context.Context) (settings.Mode, error) {
	current, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	return current.Mode, nil
}

// Get implements settings.SettingsService.
func (s *SettingsServiceImpl) Get(ctx context.Context) (settings.SettingsResponse, error) {
	current, err := s.load(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}
	return settings.ToResponse(current), nil
}

// ToggleMode implements settings.SettingsService. The row is created and
// locked first so concurrent toggles serialize instead of both flipping
// from the same value.
func (s *SettingsServiceImpl) ToggleMode(ctx context.Context) (settings.SettingsResponse, error) {
	var saved settings.Settings
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.Ensure(txCtx); err != nil {
			return err
		}
		current, err := s.repo.GetForUpdate(txCtx)
		if err != nil {
			return err
		}
		saved, err = s.repo.Save(txCtx, settings.Settings{Mode: current.Mode.Toggle()})
		return err
	})
	if err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to toggle mode: %w", err)
	}

	metrics.ModeToggles.Inc()
	slog.Info("Compensation mode changed", "mode", saved.Mode)

	return settings.ToResponse(saved), nil
}

func (s *SettingsServiceImpl) load(ctx context.Context) (settings.Settings, error) {
	current, err := s.repo.Get(ctx)
	if errors.Is(err, settings.ErrSettingsNotFound) {
		return settings.Default(), nil
	}
	if err != nil {
		return settings.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return current, nil
}
