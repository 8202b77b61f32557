package middleware

import (
	"net/http"
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/auth"
	"github.com/lavage-pro/carwash-backend-go/internal/handler/http/response"
)

// TrialGate answers every request with 402 once expiresAt has passed.
// A nil expiresAt disables the gate. Paths in exempt always pass.
func TrialGate(expiresAt *time.Time, now func() time.Time, exempt ...string) func(http.Handler) http.Handler {
	if now == nil {
		now = time.Now
	}
	skip := make(map[string]struct{}, len(exempt))
	for _, p := range exempt {
		skip[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		if expiresAt == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skip[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}
			if now().After(*expiresAt) {
				response.HandleError(w, auth.ErrTrialExpired)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
