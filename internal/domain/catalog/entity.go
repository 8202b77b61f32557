package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultIcon = "🚗"

// Service is a wash offered at the station. Price is what the customer pays;
// CommissionAmount is what the worker earns for it under commission mode.
type Service struct {
	ID               string
	Name             string
	Price            decimal.Decimal
	CommissionAmount decimal.Decimal
	Icon             string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
