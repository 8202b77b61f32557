package advance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCreateAdvanceRequest_Validate(t *testing.T) {
	req := CreateAdvanceRequest{WorkerID: "0190a0b0-0000-7000-8000-000000000001", Amount: decimal.NewFromInt(200)}
	assert.NoError(t, req.Validate())

	req.Amount = decimal.Zero
	assert.Error(t, req.Validate())

	req.Amount = decimal.NewFromInt(200)
	req.Date = "yesterday"
	assert.Error(t, req.Validate())
}

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("CET", 3600)

	d, ok := ParseDate("2024-05-10", loc)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 10, 12, 0, 0, 0, loc), d)

	d, ok = ParseDate("2024-05-10T08:30:00Z", loc)
	assert.True(t, ok)
	assert.Equal(t, 8, d.Hour())

	_, ok = ParseDate("10/05/2024", loc)
	assert.False(t, ok)
}
