package attendance

import (
	"github.com/lavage-pro/carwash-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ToggleRequest struct {
	WorkerID string `json:"-"`
	// Date defaults to today when empty.
	Date string `json:"date,omitempty"`
}

func (r *ToggleRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.WorkerID) {
		errs = append(errs, validator.ValidationError{Field: "worker_id", Message: "must be a valid UUID"})
	}
	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
		}
	}

	return errs.Err()
}

type AttendanceResponse struct {
	ID             string          `json:"id"`
	WorkerID       string          `json:"worker_id"`
	WorkerName     string          `json:"worker_name,omitempty"`
	Date           string          `json:"date"`
	IsPresent      bool            `json:"is_present"`
	SalarySnapshot decimal.Decimal `json:"salary_snapshot"`
}

type RosterEntry struct {
	WorkerID       string          `json:"worker_id"`
	Username       string          `json:"username"`
	FullName       string          `json:"full_name"`
	IsPresent      bool            `json:"is_present"`
	SalarySnapshot decimal.Decimal `json:"salary_snapshot"`
	DailySalary    decimal.Decimal `json:"daily_salary"`
}

type DailyRosterResponse struct {
	Date          string          `json:"date"`
	Entries       []RosterEntry   `json:"entries"`
	PresentCount  int             `json:"present_count"`
	TotalSnapshot decimal.Decimal `json:"total_snapshot"`
}

type WorkerMonthResponse struct {
	WorkerID      string               `json:"worker_id"`
	Month         string               `json:"month"`
	Days          []AttendanceResponse `json:"days"`
	PresentDays   int                  `json:"present_days"`
	TotalSnapshot decimal.Decimal      `json:"total_snapshot"`
}
