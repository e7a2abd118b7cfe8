package param

import (
	"testing"

	"github.com/optolink/bridge/encoding"
	"github.com/optolink/bridge/unit"
	"github.com/stretchr/testify/require"
)

func TestStorageResolvesTopLevelParameter(t *testing.T) {
	s := NewStorage()
	lo, hi := -20.0, 95.0
	p := NewParameter("Outside temp", "outside_temp", unit.NewNumber(&lo, &hi, false, "°C"), true)
	require.NoError(t, s.Add(p, AddressFromUint16(0x0101), encoding.NewFloat(2, 10)))

	got, addr, enc, err := s.Resolve("outside_temp")
	require.NoError(t, err)
	require.Same(t, p, got)
	require.Equal(t, uint16(0x0101), addr.Uint16())
	require.Equal(t, 2, enc.Size())
}

func TestStorageResolvesAggregatedChild(t *testing.T) {
	s := NewStorage()
	childUnit := unit.NewNumber(nil, nil, true, "")
	agg := NewAggregatedParameter("Holiday program", "holiday", childUnit, 4, false)
	arr := encoding.NewArray(encoding.NewUInt(1), 4)
	require.NoError(t, s.AddAggregated(agg, AddressFromUint16(0x2000), arr))

	child, addr, enc, err := s.Resolve("holiday.2")
	require.NoError(t, err)
	require.Equal(t, "holiday.2", child.ID)
	require.Equal(t, uint16(0x2002), addr.Uint16())
	require.Equal(t, 1, enc.Size())
}

func TestStorageRejectsChildIndexOutOfRange(t *testing.T) {
	s := NewStorage()
	agg := NewAggregatedParameter("Holiday program", "holiday", unit.NewNumber(nil, nil, true, ""), 4, false)
	require.NoError(t, s.AddAggregated(agg, AddressFromUint16(0x2000), encoding.NewArray(encoding.NewUInt(1), 4)))

	_, _, _, err := s.Resolve("holiday.9")
	require.Error(t, err)
}

func TestStorageRejectsDuplicateID(t *testing.T) {
	s := NewStorage()
	p := NewParameter("A", "a", unit.NewNumber(nil, nil, false, ""), true)
	require.NoError(t, s.Add(p, AddressFromUint16(1), encoding.NewUInt(1)))
	require.Error(t, s.Add(p, AddressFromUint16(2), encoding.NewUInt(1)))
}

func TestStorageUnknownParameter(t *testing.T) {
	s := NewStorage()
	_, _, _, err := s.Resolve("nope")
	require.Error(t, err)
}
