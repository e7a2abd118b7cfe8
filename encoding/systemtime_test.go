package encoding

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSystemTimeRoundTrip(t *testing.T) {
	e := NewSystemTime()
	in := time.Date(2024, time.March, 15, 13, 45, 30, 0, time.Local)
	b, err := e.Serialize(in)
	require.NoError(t, err)
	require.Len(t, b, 8)
	out, err := e.Deserialize(b)
	require.NoError(t, err)
	got := out.(time.Time)
	require.Equal(t, in.Year(), got.Year())
	require.Equal(t, in.Month(), got.Month())
	require.Equal(t, in.Day(), got.Day())
	require.Equal(t, in.Hour(), got.Hour())
	require.Equal(t, in.Minute(), got.Minute())
	require.Equal(t, in.Second(), got.Second())
}
