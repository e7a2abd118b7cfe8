package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimerRoundTrip(t *testing.T) {
	e := NewTimer()
	cycles := []Cycle{
		{Start: TimeOfDay{Hour: 6, Minute: 0}, End: TimeOfDay{Hour: 8, Minute: 30}},
		{Start: TimeOfDay{Hour: 16, Minute: 0}, End: TimeOfDay{Hour: 22, Minute: 0}},
	}
	b, err := e.Serialize(cycles)
	require.NoError(t, err)
	require.Len(t, b, 8)
	require.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, b[4:])

	out, err := e.Deserialize(b)
	require.NoError(t, err)
	require.Equal(t, cycles, out)
}

func TestTimerRejectsInvalidMinute(t *testing.T) {
	e := NewTimer()
	cycles := []Cycle{{Start: TimeOfDay{Hour: 6, Minute: 5}, End: TimeOfDay{Hour: 8, Minute: 0}}}
	_, err := e.Serialize(cycles)
	require.Error(t, err)
}

func TestTimerRejectsMoreThanFourCycles(t *testing.T) {
	e := NewTimer()
	cycles := make([]Cycle, 5)
	_, err := e.Serialize(cycles)
	require.Error(t, err)
}

func TestTimerDeserializeRejectsGapInUndefinedTail(t *testing.T) {
	e := NewTimer()
	// one defined cycle (2 bytes), then a non-0xFF byte in the tail
	_, err := e.Deserialize([]byte{0x30, 0x43, 0xFF, 0x10, 0xFF, 0xFF, 0xFF, 0xFF})
	require.Error(t, err)
}
