package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Attendance is one worker's presence on one calendar day.
type Attendance struct {
	ID             string
	WorkerID       string
	Date           time.Time
	IsPresent      bool
	SalarySnapshot decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Toggle flips presence and applies the snapshot rule: marking present
// snapshots dailySalary only while the snapshot is zero, marking absent
// zeroes it. A present/absent/present sequence therefore re-reads the rate.
func (a *Attendance) Toggle(dailySalary decimal.Decimal) {
	a.SetPresence(!a.IsPresent, dailySalary)
}

// SetPresence applies the snapshot rule for an explicit presence value.
func (a *Attendance) SetPresence(present bool, dailySalary decimal.Decimal) {
	a.IsPresent = present
	if !present {
		a.SalarySnapshot = decimal.Zero
		return
	}
	if a.SalarySnapshot.IsZero() {
		a.SalarySnapshot = dailySalary
	}
}

// DateOnly truncates t to its calendar day in its own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
