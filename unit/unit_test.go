package unit

import (
	"testing"

	"github.com/optolink/bridge/encoding"
	"github.com/stretchr/testify/require"
)

func TestNumberBounds(t *testing.T) {
	lo, hi := -20.0, 95.0
	n := NewNumber(&lo, &hi, false, "°C")
	require.NoError(t, n.Validate(21.5))
	require.Error(t, n.Validate(-30.0))
	require.Error(t, n.Validate(100.0))
	require.Equal(t, "21.5°C", n.DisplayString(21.5))
}

func TestNumberIntegerRequirement(t *testing.T) {
	n := NewNumber(nil, nil, true, "")
	require.NoError(t, n.Validate(4.0))
	require.Error(t, n.Validate(4.5))
}

func TestHourDisplayString(t *testing.T) {
	h := NewHour()
	require.Equal(t, "323:03h", h.DisplayString(323.05))
}

func TestCycleTimeRejectsOverlap(t *testing.T) {
	c := NewCycleTime()
	cycles := []encoding.Cycle{
		{Start: encoding.TimeOfDay{Hour: 6, Minute: 0}, End: encoding.TimeOfDay{Hour: 12, Minute: 0}},
		{Start: encoding.TimeOfDay{Hour: 10, Minute: 0}, End: encoding.TimeOfDay{Hour: 14, Minute: 0}},
	}
	require.Error(t, c.Validate(cycles))
}

func TestCycleTimeRejectsEndBeforeStart(t *testing.T) {
	c := NewCycleTime()
	cycles := []encoding.Cycle{
		{Start: encoding.TimeOfDay{Hour: 12, Minute: 0}, End: encoding.TimeOfDay{Hour: 6, Minute: 0}},
	}
	require.Error(t, c.Validate(cycles))
}

func TestCycleTimeDisplayString(t *testing.T) {
	c := NewCycleTime()
	cycles := []encoding.Cycle{
		{Start: encoding.TimeOfDay{Hour: 6, Minute: 0}, End: encoding.TimeOfDay{Hour: 8, Minute: 30}},
	}
	require.Equal(t, "06:00-08:30", c.DisplayString(cycles))
}

func TestOperatingStatusDisplayString(t *testing.T) {
	u := NewOperatingStatus()
	require.Equal(t, "An", u.DisplayString(encoding.StatusON))
	require.Equal(t, "Aus", u.DisplayString(encoding.StatusOFF))
	require.Equal(t, "Fehler", u.DisplayString(encoding.StatusFAULT))
}

func TestArrayUnitDelegatesToChild(t *testing.T) {
	child := NewNumber(nil, nil, false, "")
	arr := NewArray(child)
	require.NoError(t, arr.Validate([]any{1.0, 2.0, 3.0}))
	require.Equal(t, "[1, 2, 3]", arr.DisplayString([]any{1.0, 2.0, 3.0}))
}
