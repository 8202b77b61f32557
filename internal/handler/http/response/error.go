package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/advance"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/attendance"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/auth"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/catalog"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/job"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/notification"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/payroll"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/settings"
	"github.com/lavage-pro/carwash-backend-go/internal/domain/worker"
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token has been revoked")
	case errors.Is(err, auth.ErrAccountDisabled):
		Forbidden(w, "Account is disabled")
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, auth.ErrTrialExpired):
		PaymentRequired(w, "Trial period has expired")

	// Worker domain errors
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, worker.ErrProfileNotFound):
		NotFound(w, "Worker profile not found")
	case errors.Is(err, worker.ErrUsernameExists):
		Conflict(w, "Username already exists")
	case errors.Is(err, worker.ErrLastAdmin):
		Conflict(w, "Cannot remove the last active admin")

	// Catalog, job and booking errors
	case errors.Is(err, catalog.ErrServiceNotFound):
		NotFound(w, "Service not found")
	case errors.Is(err, job.ErrJobNotFound):
		NotFound(w, "Job not found")

	// Attendance and advance errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrWorkerInactive):
		Conflict(w, "Worker is not active")
	case errors.Is(err, advance.ErrAdvanceNotFound):
		NotFound(w, "Advance not found")

	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	case errors.Is(err, payroll.ErrInvalidMonth):
		BadRequest(w, "Month must be in YYYY-MM format", nil)
	case errors.Is(err, settings.ErrInvalidMode):
		BadRequest(w, "Invalid compensation mode", nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
