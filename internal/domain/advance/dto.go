package advance

import (
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateAdvanceRequest struct {
	WorkerID string          `json:"worker_id"`
	Amount   decimal.Decimal `json:"amount"`
	// Date accepts YYYY-MM-DD or RFC3339; empty means now.
	Date string  `json:"date,omitempty"`
	Note *string `json:"note,omitempty"`
}

func (r *CreateAdvanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{Field: "worker_id", Message: "is required"})
	} else if !validator.IsValidUUID(r.WorkerID) {
		errs = append(errs, validator.ValidationError{Field: "worker_id", Message: "must be a valid UUID"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be greater than zero"})
	}
	if r.Date != "" {
		if _, ok := ParseDate(r.Date, time.UTC); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD or RFC3339"})
		}
	}
	if r.Note != nil && !validator.MaxLen(*r.Note, 200) {
		errs = append(errs, validator.ValidationError{Field: "note", Message: "must be at most 200 characters"})
	}

	return errs.Err()
}

// ParseDate reads an advance date. Plain dates are taken as noon in loc so
// they stay on the same calendar day in any nearby zone.
func ParseDate(raw string, loc *time.Location) (time.Time, bool) {
	if t, ok := validator.IsValidDateTime(raw); ok {
		return t, true
	}
	d, err := time.ParseInLocation("2006-01-02", raw, loc)
	if err != nil {
		return time.Time{}, false
	}
	return d.Add(12 * time.Hour), true
}

type AdvanceFilter struct {
	WorkerID string `json:"worker_id,omitempty"`
	DateFrom string `json:"date_from,omitempty"`
	DateTo   string `json:"date_to,omitempty"`
	Page     int    `json:"page,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

func (f *AdvanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.WorkerID != "" && !validator.IsValidUUID(f.WorkerID) {
		errs = append(errs, validator.ValidationError{Field: "worker_id", Message: "must be a valid UUID"})
	}
	if f.DateFrom != "" {
		if _, ok := validator.IsValidDate(f.DateFrom); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_from", Message: "must be YYYY-MM-DD"})
		}
	}
	if f.DateTo != "" {
		if _, ok := validator.IsValidDate(f.DateTo); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_to", Message: "must be YYYY-MM-DD"})
		}
	}
	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "must be positive"})
	}
	if f.Limit < 0 || f.Limit > 100 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "must be between 1 and 100"})
	}

	return errs.Err()
}

type AdvanceResponse struct {
	ID         string          `json:"id"`
	WorkerID   string          `json:"worker_id"`
	WorkerName string          `json:"worker_name,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	Note       *string         `json:"note,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

type AdvanceListResponse struct {
	Advances    []AdvanceResponse `json:"advances"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	Page        int               `json:"page"`
	Limit       int               `json:"limit"`
	TotalItems  int64             `json:"total_items"`
	TotalPages  int               `json:"total_pages"`
}
