package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expectErr bool
	}{
		{name: "valid morning", input: "09:30"},
		{name: "valid midnight", input: "00:00"},
		{name: "valid last minute", input: "23:59"},
		{name: "hours out of range", input: "24:00", expectErr: true},
		{name: "minutes out of range", input: "12:60", expectErr: true},
		{name: "missing leading zero", input: "9:30", expectErr: true},
		{name: "missing leading zero in minutes", input: "14:5", expectErr: true},
		{name: "trailing seconds", input: "09:30:00", expectErr: true},
		{name: "padded with space", input: " 9:30", expectErr: true},
		{name: "empty", input: "", expectErr: true},
		{name: "garbage", input: "abc", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)

			if tt.expectErr {
				assert.ErrorIs(t, err, ErrInvalidTimeFormat)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	ts, err := NewTimeStringFromString("22:30")
	require.NoError(t, err)

	assert.Equal(t, 1350, ts.Minutes())
}

func TestTimeString_Scan(t *testing.T) {
	t.Run("from bytes with seconds", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("14:15:00")))
		assert.Equal(t, TimeString("14:15"), ts)
	})

	t.Run("from time.Time", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan(time.Date(2025, 10, 15, 22, 30, 0, 0, time.UTC)))
		assert.Equal(t, TimeString("22:30"), ts)
	})

	t.Run("from nil", func(t *testing.T) {
		ts := TimeString("10:00")
		require.NoError(t, ts.Scan(nil))
		assert.True(t, ts.IsZero())
	})

	t.Run("from unsupported type", func(t *testing.T) {
		var ts TimeString
		assert.Error(t, ts.Scan(42))
	})
}

func TestTimeString_Value(t *testing.T) {
	ts := TimeString("10:00")
	v, err := ts.Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	var zero TimeString
	v, err = zero.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
