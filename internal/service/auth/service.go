package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/auth"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/worker"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/jwt"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/metrics"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	workerRepo  worker.WorkerRepository
	profileRepo worker.ProfileRepository
	revokedRepo auth.RevokedTokenRepository
	jwt.Service
}

func NewAuthService(
	workerRepo worker.WorkerRepository,
	profileRepo worker.ProfileRepository,
	revokedRepo auth.RevokedTokenRepository,
	jwtService jwt.Service,
) auth.AuthService {
	return &AuthServiceImpl{
		workerRepo:  workerRepo,
		profileRepo: profileRepo,
		revokedRepo: revokedRepo,
		Service:     jwtService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	w, err := a.workerRepo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, worker.ErrWorkerNotFound) {
			metrics.LoginAttempts.WithLabelValues("invalid").Inc()
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get worker by username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(w.PasswordHash), []byte(req.Password)); err != nil {
		metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	if !w.IsActive {
		metrics.LoginAttempts.WithLabelValues("disabled").Inc()
		return auth.LoginResponse{}, auth.ErrAccountDisabled
	}

	profile, err := a.profileRepo.GetOrCreate(ctx, w.ID, worker.DefaultDailySalary)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	token, expiresAt, err := a.GenerateAccessToken(w.ID, w.Username, w.IsAdmin)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	metrics.LoginAttempts.WithLabelValues("ok").Inc()
	slog.Info("worker logged in", "worker_id", w.ID, "username", w.Username)

	return auth.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Worker:      worker.ToResponse(w, profile),
	}, nil
}

// Logout implements auth.AuthService. The revocation is persisted so a
// restart does not revive the token.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string, expiresAt int64) error {
	if token == "" {
		return auth.ErrInvalidToken
	}
	if err := a.revokedRepo.Revoke(ctx, token, time.Unix(expiresAt, 0)); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	a.RevokeToken(token, expiresAt)
	return nil
}

// IsRevoked implements auth.AuthService.
func (a *AuthServiceImpl) IsRevoked(ctx context.Context, token string) (bool, error) {
	if a.IsTokenRevoked(token) {
		return true, nil
	}
	return a.revokedRepo.IsRevoked(ctx, token)
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context) (worker.WorkerResponse, error) {
	claims, err := auth.ClaimsFromContext(ctx)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	w, err := a.workerRepo.GetByID(ctx, claims.WorkerID)
	if err != nil {
		if errors.Is(err, worker.ErrWorkerNotFound) {
			return worker.WorkerResponse{}, auth.ErrInvalidToken
		}
		return worker.WorkerResponse{}, err
	}
	if !w.IsActive {
		return worker.WorkerResponse{}, auth.ErrAccountDisabled
	}

	profile, err := a.profileRepo.GetOrCreate(ctx, w.ID, worker.DefaultDailySalary)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	return worker.ToResponse(w, profile), nil
}

// SSEToken implements auth.AuthService.
func (a *AuthServiceImpl) SSEToken(ctx context.Context) (auth.SSETokenResponse, error) {
	claims, err := auth.ClaimsFromContext(ctx)
	if err != nil {
		return auth.SSETokenResponse{}, err
	}

	token, expiresIn, err := a.GenerateSSEToken(claims.WorkerID)
	if err != nil {
		return auth.SSETokenResponse{}, fmt.Errorf("failed to create sse token: %w", err)
	}
	return auth.SSETokenResponse{Token: token, ExpiresIn: expiresIn}, nil
}
