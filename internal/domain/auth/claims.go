package auth

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

// Claims is the identity carried by an access token.
type Claims struct {
	WorkerID string
	Username string
	IsAdmin  bool
}

// ClaimsFromContext reads the verified token placed in ctx by jwtauth.Verifier.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	workerID, ok := claims["worker_id"].(string)
	if !ok || workerID == "" {
		return Claims{}, ErrInvalidToken
	}
	username, _ := claims["username"].(string)
	isAdmin, _ := claims["is_admin"].(bool)

	return Claims{WorkerID: workerID, Username: username, IsAdmin: isAdmin}, nil
}
