package settings

import (
	"time"
)

// Mode is the compensation scheme workers are currently paid under.
type Mode string

const (
	ModeCommission Mode = "commission"
	ModeSalary     Mode = "salary"
)

// DefaultMode applies whenever no settings row exists.
const DefaultMode = ModeCommission

func (m Mode) Valid() bool {
	return m == ModeCommission || m == ModeSalary
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeSalary {
		return ModeCommission
	}
	return ModeSalary
}

func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", ErrInvalidMode
	}
	return m, nil
}

// Settings is the singleton station configuration.
type Settings struct {
	Mode      Mode
	UpdatedAt time.Time
}

// Default is what readers see before the row has been created.
func Default() Settings {
	return Settings{Mode: DefaultMode}
}
