package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/auth"
	"github.com/lavage-pro/carwash-backend-go/internal/handler/http/response"
)

// RevocationChecker reports whether an access token was logged out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// AuthRequired must run after jwtauth.Verifier. It accepts only access
// tokens that have not been revoked.
func AuthRequired(revocations RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if revocations != nil {
				revoked, err := revocations.IsRevoked(r.Context(), jwtauth.TokenFromHeader(r))
				if err != nil {
					slog.Error("failed to check token revocation", "error", err)
					response.InternalServerError(w, "Failed to verify token")
					return
				}
				if revoked {
					response.HandleError(w, auth.ErrTokenRevoked)
					return
				}
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
