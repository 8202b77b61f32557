package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/auth"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/job"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/payroll"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/worker"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
)

func TestHandleError_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", validator.Single("phone", "is required"), http.StatusUnprocessableEntity},
		{"wrapped not found", fmt.Errorf("failed to get job: %w", job.ErrJobNotFound), http.StatusNotFound},
		{"username taken", worker.ErrUsernameExists, http.StatusConflict},
		{"last admin", worker.ErrLastAdmin, http.StatusConflict},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"disabled", auth.ErrAccountDisabled, http.StatusForbidden},
		{"trial", auth.ErrTrialExpired, http.StatusPaymentRequired},
		{"month", payroll.ErrInvalidMonth, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)
			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}
