package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBoundaries(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	at := time.Date(2024, time.March, 15, 22, 45, 10, 0, loc)

	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, loc), StartOfDay(at))
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, loc), StartOfMonth(at))
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, loc), StartOfYear(at))
}

func TestToday_UsesClockZone(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	// 23:30 UTC on the 1st is already the 2nd in CET.
	c := Fixed{At: time.Date(2024, time.May, 1, 23, 30, 0, 0, time.UTC).In(loc)}

	assert.Equal(t, time.Date(2024, time.May, 2, 0, 0, 0, 0, loc), Today(c))
}

func TestNew_DefaultsToUTC(t *testing.T) {
	c := New(nil)
	assert.Equal(t, time.UTC, c.Location())
}
