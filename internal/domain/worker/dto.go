package worker

import (
	"strings"
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const minPasswordLength = 6

type CreateWorkerRequest struct {
	Username    string           `json:"username"`
	FullName    string           `json:"full_name"`
	Password    string           `json:"password"`
	IsAdmin     bool             `json:"is_admin"`
	DailySalary *decimal.Decimal `json:"daily_salary,omitempty"`
}

func (r *CreateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Username = strings.TrimSpace(r.Username)
	if !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "must be 3-50 characters of letters, digits, '.', '_' or '-'"})
	}
	if !validator.MaxLen(r.FullName, 150) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "must be at most 150 characters"})
	}
	if len(r.Password) < minPasswordLength {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "must be at least 6 characters"})
	}
	if r.DailySalary != nil && !validator.IsNonNegative(*r.DailySalary) {
		errs = append(errs, validator.ValidationError{Field: "daily_salary", Message: "must be non-negative"})
	}

	return errs.Err()
}

type UpdateWorkerRequest struct {
	ID       string  `json:"-"`
	FullName *string `json:"full_name,omitempty"`
	Password *string `json:"password,omitempty"`
	IsAdmin  *bool   `json:"is_admin,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (r *UpdateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && !validator.MaxLen(*r.FullName, 150) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "must be at most 150 characters"})
	}
	if r.Password != nil && len(*r.Password) < minPasswordLength {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "must be at least 6 characters"})
	}

	return errs.Err()
}

type UpdateSalaryRequest struct {
	WorkerID    string          `json:"-"`
	DailySalary decimal.Decimal `json:"daily_salary"`
}

func (r *UpdateSalaryRequest) Validate() error {
	if !validator.IsNonNegative(r.DailySalary) {
		return validator.Single("daily_salary", "must be non-negative")
	}
	return nil
}

type WorkerResponse struct {
	ID          string          `json:"id"`
	Username    string          `json:"username"`
	FullName    string          `json:"full_name"`
	IsAdmin     bool            `json:"is_admin"`
	IsActive    bool            `json:"is_active"`
	DailySalary decimal.Decimal `json:"daily_salary"`
	CreatedAt   time.Time       `json:"created_at"`
}

func ToResponse(w Worker, p Profile) WorkerResponse {
	return WorkerResponse{
		ID:          w.ID,
		Username:    w.Username,
		FullName:    w.FullName,
		IsAdmin:     w.IsAdmin,
		IsActive:    w.IsActive,
		DailySalary: p.DailySalary,
		CreatedAt:   w.CreatedAt,
	}
}
