package catalog

import (
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateServiceRequest struct {
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	Icon             *string         `json:"icon,omitempty"`
}

func (r *CreateServiceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	} else if !validator.MaxLen(r.Name, 100) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must be at most 100 characters"})
	}
	if !validator.IsNonNegative(r.Price) {
		errs = append(errs, validator.ValidationError{Field: "price", Message: "must be non-negative"})
	}
	if !validator.IsNonNegative(r.CommissionAmount) {
		errs = append(errs, validator.ValidationError{Field: "commission_amount", Message: "must be non-negative"})
	}
	if r.Icon != nil && !validator.MaxLen(*r.Icon, 50) {
		errs = append(errs, validator.ValidationError{Field: "icon", Message: "must be at most 50 characters"})
	}

	return errs.Err()
}

type UpdateServiceRequest struct {
	ID               string           `json:"-"`
	Name             *string          `json:"name,omitempty"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	CommissionAmount *decimal.Decimal `json:"commission_amount,omitempty"`
	Icon             *string          `json:"icon,omitempty"`
}

func (r *UpdateServiceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs = append(errs, validator.ValidationError{Field: "name", Message: "cannot be empty"})
		} else if !validator.MaxLen(*r.Name, 100) {
			errs = append(errs, validator.ValidationError{Field: "name", Message: "must be at most 100 characters"})
		}
	}
	if r.Price != nil && !validator.IsNonNegative(*r.Price) {
		errs = append(errs, validator.ValidationError{Field: "price", Message: "must be non-negative"})
	}
	if r.CommissionAmount != nil && !validator.IsNonNegative(*r.CommissionAmount) {
		errs = append(errs, validator.ValidationError{Field: "commission_amount", Message: "must be non-negative"})
	}
	if r.Icon != nil && (validator.IsEmpty(*r.Icon) || !validator.MaxLen(*r.Icon, 50)) {
		errs = append(errs, validator.ValidationError{Field: "icon", Message: "must be 1 to 50 characters"})
	}

	return errs.Err()
}

type ServiceResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	Icon             string          `json:"icon"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// PublicServiceResponse is the price list shown on the booking page.
type PublicServiceResponse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Icon  string          `json:"icon"`
}
