package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateAcceptsCalendarAndRFC3339(t *testing.T) {
	got, err := Date("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got)

	got, err = Date("2024-01-15T22:30:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got)

	_, err = Date("15/01/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = Date("  ")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestOptionalDate(t *testing.T) {
	got, err := OptionalDate(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	blank := " "
	got, err = OptionalDate(&blank)
	require.NoError(t, err)
	assert.Nil(t, got)

	bad := "mañana"
	_, err = OptionalDate(&bad)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestOptionalString(t *testing.T) {
	assert.Nil(t, OptionalString(nil))
	blank := "   "
	assert.Nil(t, OptionalString(&blank))
	padded := "  20123456789 "
	assert.Equal(t, "20123456789", *OptionalString(&padded))
}

func TestID(t *testing.T) {
	id, ok := ID(" 42 ")
	assert.True(t, ok)
	assert.EqualValues(t, 42, id)

	_, ok = ID("abc")
	assert.False(t, ok)
	_, ok = ID("0")
	assert.False(t, ok)
	_, ok = ID("-5")
	assert.False(t, ok)
}
