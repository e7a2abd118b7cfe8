package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUIntRoundTrip(t *testing.T) {
	e := NewUInt(2)
	b, err := e.Serialize(300)
	require.NoError(t, err)
	require.Equal(t, []byte{44, 1}, b)
	v, err := e.Deserialize(b)
	require.NoError(t, err)
	require.Equal(t, uint64(300), v)
}

func TestUIntRejectsNegative(t *testing.T) {
	e := NewUInt(1)
	_, err := e.Serialize(-1)
	require.Error(t, err)
}

func TestIntRoundTripNegative(t *testing.T) {
	e := NewInt(2)
	b, err := e.Serialize(-5)
	require.NoError(t, err)
	v, err := e.Deserialize(b)
	require.NoError(t, err)
	require.Equal(t, int64(-5), v)
}

func TestFloatRoundTrip(t *testing.T) {
	e := NewFloat(2, 10)
	b, err := e.Serialize(21.5)
	require.NoError(t, err)
	v, err := e.Deserialize(b)
	require.NoError(t, err)
	require.InDelta(t, 21.5, v.(float64), 0.001)
}

func TestFloatNegativeRoundTrip(t *testing.T) {
	e := NewFloat(2, 10)
	b, err := e.Serialize(-3.2)
	require.NoError(t, err)
	v, err := e.Deserialize(b)
	require.NoError(t, err)
	require.InDelta(t, -3.2, v.(float64), 0.001)
}
