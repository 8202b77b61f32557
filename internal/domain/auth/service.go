package auth

import (
	"context"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/worker"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	// Logout revokes the access token until it would have expired anyway.
	Logout(ctx context.Context, token string, expiresAt int64) error
	// IsRevoked reports whether token was logged out.
	IsRevoked(ctx context.Context, token string) (bool, error)
	Me(ctx context.Context) (worker.WorkerResponse, error)
	SSEToken(ctx context.Context) (SSETokenResponse, error)
}
