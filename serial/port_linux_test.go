package serial

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOpenPTYLoopback(t *testing.T) {
	master, slave, err := OpenPTY(nil, nil)
	require.NoError(t, err)
	defer master.Close()
	defer slave.Close()

	// a fresh pty slave is in canonical mode and would hold "hello" until a
	// newline arrives; switch it to raw mode so the bytes are readable at once
	attrs, err := slave.GetAttr()
	require.NoError(t, err)
	attrs.MakeRaw()
	require.NoError(t, slave.SetAttr(TCSANOW, attrs))

	master.SetReadTimeout(time.Second)
	slave.SetReadTimeout(time.Second)

	n, err := master.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)

	buf := make([]byte, 5)
	n, err = slave.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "hello", string(buf[:n]))
}

func TestPortCloseIsIdempotentError(t *testing.T) {
	master, slave, err := OpenPTY(nil, nil)
	require.NoError(t, err)
	defer slave.Close()

	require.NoError(t, master.Close())
	require.ErrorIs(t, master.Close(), ErrClosed)

	_, err = master.Write([]byte("x"))
	require.ErrorIs(t, err, ErrClosed)
}
