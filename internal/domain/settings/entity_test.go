package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMode_Toggle(t *testing.T) {
	assert.Equal(t, ModeSalary, ModeCommission.Toggle())
	assert.Equal(t, ModeCommission, ModeSalary.Toggle())
	assert.Equal(t, ModeCommission, ModeCommission.Toggle().Toggle())
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("salary")
	assert.NoError(t, err)
	assert.Equal(t, ModeSalary, m)

	_, err = ParseMode("hourly")
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestDefault(t *testing.T) {
	assert.Equal(t, ModeCommission, Default().Mode)
	assert.Nil(t, ToResponse(Default()).UpdatedAt)
}
