package auth

import (
	"context"
	"time"
)

// RevokedTokenRepository persists logouts so a restart does not revive
// tokens. Tokens are stored hashed.
type RevokedTokenRepository interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
