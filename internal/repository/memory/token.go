package memory

import (
	"context"
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/auth"
)

type revokedTokenRepository struct{ s *Store }

func NewRevokedTokenRepository(s *Store) auth.RevokedTokenRepository {
	return &revokedTokenRepository{s: s}
}

func (r *revokedTokenRepository) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.revoked[token] = expiresAt
	return nil
}

func (r *revokedTokenRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	_, ok := r.s.revoked[token]
	return ok, nil
}

func (r *revokedTokenRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var count int64
	for token, exp := range r.s.revoked {
		if exp.Before(now) {
			delete(r.s.revoked, token)
			count++
		}
	}
	return count, nil
}
