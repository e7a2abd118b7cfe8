package optoerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorIsMatchesByKindOnly(t *testing.T) {
	err := New(KindUnknownParameter, "no such parameter %q", "foo")
	require.True(t, errors.Is(err, ErrUnknownParameter))
	require.False(t, errors.Is(err, ErrLink))
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("read timed out")
	err := Wrap(KindLink, "session read", cause)
	require.True(t, errors.Is(err, ErrLink))
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "read timed out")
}

func TestWrapNilIsNil(t *testing.T) {
	require.Nil(t, Wrap(KindLink, "x", nil))
}
