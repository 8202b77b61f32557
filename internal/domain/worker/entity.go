package worker

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultDailySalary is assigned to workers without a pay profile.
var DefaultDailySalary = decimal.NewFromInt(1000)

// Worker is a staff account. Jobs, attendance and advances reference it.
type Worker struct {
	ID           string
	Username     string
	FullName     string
	PasswordHash string
	IsAdmin      bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName prefers the full name and falls back to the username.
func (w Worker) DisplayName() string {
	if w.FullName != "" {
		return w.FullName
	}
	return w.Username
}

// Profile carries the fixed daily wage used under salary mode.
type Profile struct {
	WorkerID    string
	DailySalary decimal.Decimal
	UpdatedAt   time.Time
}
