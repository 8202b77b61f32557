package payroll

import (
	"time"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// Period is the half-open interval [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
}

// MonthPeriod returns the calendar month containing t, in t's location.
func MonthPeriod(t time.Time) Period {
	y, m, _ := t.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	return Period{Start: start, End: start.AddDate(0, 1, 0)}
}

// Label formats the period's first month as YYYY-MM.
func (p Period) Label() string {
	return p.Start.Format("2006-01")
}

// Earnings is what a worker earned in a period under one mode. DaysPresent
// is only meaningful in salary mode.
type Earnings struct {
	Mode        settings.Mode
	Amount      decimal.Decimal
	DaysPresent int
}

// Net is earnings minus advances. It may be negative.
func Net(earned, advances decimal.Decimal) decimal.Decimal {
	return earned.Sub(advances)
}
