package dummy

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// loopback connects two halves so writes on one side appear as reads on the
// other, like a null-modem cable.
type loopback struct {
	mu      sync.Mutex
	aToB    bytes.Buffer
	bToA    bytes.Buffer
}

type loopbackSide struct {
	l    *loopback
	from *bytes.Buffer
	to   *bytes.Buffer
}

func newLoopback() (*loopbackSide, *loopbackSide) {
	l := &loopback{}
	a := &loopbackSide{l: l, from: &l.bToA, to: &l.aToB}
	b := &loopbackSide{l: l, from: &l.aToB, to: &l.bToA}
	return a, b
}

func (s *loopbackSide) Read(p []byte) (int, error) {
	s.l.mu.Lock()
	defer s.l.mu.Unlock()
	if s.from.Len() == 0 {
		return 0, nil
	}
	return s.from.Read(p)
}

func (s *loopbackSide) Write(p []byte) (int, error) {
	s.l.mu.Lock()
	defer s.l.mu.Unlock()
	return s.to.Write(p)
}

func TestDeviceEmitsSyncByte(t *testing.T) {
	controllerSide, deviceSide := newLoopback()
	dev := New(deviceSide, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	go dev.Run(ctx)

	require.Eventually(t, func() bool {
		buf := make([]byte, 1)
		n, _ := controllerSide.Read(buf)
		return n == 1 && buf[0] == syncByte
	}, 150*time.Millisecond, 5*time.Millisecond)
}

func TestDeviceServicesReadAndWriteFrames(t *testing.T) {
	controllerSide, deviceSide := newLoopback()
	dev := New(deviceSide, nil)
	dev.Set(0x0102, 0x2A)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	go dev.Run(ctx)

	// wait for sync byte
	require.Eventually(t, func() bool {
		buf := make([]byte, 1)
		n, _ := controllerSide.Read(buf)
		return n == 1 && buf[0] == syncByte
	}, time.Second, 5*time.Millisecond)

	controllerSide.Write([]byte{startByte})
	controllerSide.Write([]byte{readOp, 0x01, 0x02, 0x01})

	require.Eventually(t, func() bool {
		buf := make([]byte, 1)
		n, _ := controllerSide.Read(buf)
		return n == 1 && buf[0] == 0x2A
	}, time.Second, 5*time.Millisecond)

	controllerSide.Write([]byte{writeOp, 0x01, 0x02, 0x01, 0x55})
	require.Eventually(t, func() bool {
		buf := make([]byte, 1)
		n, _ := controllerSide.Read(buf)
		return n == 1 && buf[0] == 0x00
	}, time.Second, 5*time.Millisecond)

	require.Equal(t, byte(0x55), dev.Get(0x0102))
}
