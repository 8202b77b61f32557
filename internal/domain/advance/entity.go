package advance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Advance is cash handed to a worker ahead of pay. It is deducted from the
// worker's earnings whatever the compensation mode.
type Advance struct {
	ID        string
	WorkerID  string
	Amount    decimal.Decimal
	Date      time.Time
	Note      *string
	CreatedAt time.Time
}

type Listing struct {
	Advance
	WorkerName string
}
