package attendance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToggle_FirstPresenceSnapshotsRate(t *testing.T) {
	a := Attendance{}

	a.Toggle(decimal.NewFromInt(1000))

	assert.True(t, a.IsPresent)
	assert.True(t, decimal.NewFromInt(1000).Equal(a.SalarySnapshot))
}

func TestSetPresence_PresentAgainKeepsSnapshot(t *testing.T) {
	a := Attendance{IsPresent: true, SalarySnapshot: decimal.NewFromInt(1000)}

	a.SetPresence(true, decimal.NewFromInt(1500))

	assert.True(t, decimal.NewFromInt(1000).Equal(a.SalarySnapshot))
}

func TestToggle_AbsentZeroesSnapshot(t *testing.T) {
	a := Attendance{IsPresent: true, SalarySnapshot: decimal.NewFromInt(1000)}

	a.Toggle(decimal.NewFromInt(1000))

	assert.False(t, a.IsPresent)
	assert.True(t, a.SalarySnapshot.IsZero())
}

func TestToggle_SameDayRetoggleReadsCurrentRate(t *testing.T) {
	a := Attendance{}

	a.Toggle(decimal.NewFromInt(1000))
	a.Toggle(decimal.NewFromInt(1000))
	a.Toggle(decimal.NewFromInt(1200))

	assert.True(t, a.IsPresent)
	assert.True(t, decimal.NewFromInt(1200).Equal(a.SalarySnapshot))
}

func TestToggleRequest_Validate(t *testing.T) {
	req := ToggleRequest{WorkerID: "nope", Date: "2024-02-30"}
	err := req.Validate()
	assert.Error(t, err)

	req = ToggleRequest{WorkerID: "0190a0b0-0000-7000-8000-000000000001"}
	assert.NoError(t, req.Validate())
}
