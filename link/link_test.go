package link

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// pipeRW is a minimal io.ReadWriter backed by an in-memory buffer, safe for
// concurrent Write (by the test) and Read (by the pump goroutine).
type pipeRW struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (p *pipeRW) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buf.Write(b)
}

func (p *pipeRW) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.buf.Len() == 0 {
		return 0, nil
	}
	return p.buf.Read(b)
}

func TestLinkReadCollectsBytesAsTheyArrive(t *testing.T) {
	rw := &pipeRW{}
	l := New(rw, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l.Start(ctx)

	rw.Write([]byte{0x01, 0x02, 0x03})

	ctx2, cancel2 := context.WithTimeout(context.Background(), time.Second)
	defer cancel2()
	got, err := l.Read(ctx2, 3)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02, 0x03}, got)
}

func TestLinkReadTimesOutWithPartialData(t *testing.T) {
	rw := &pipeRW{}
	l := New(rw, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l.Start(ctx)

	rw.Write([]byte{0xAA})

	ctx2, cancel2 := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel2()
	got, err := l.Read(ctx2, 3)
	require.Error(t, err)
	require.Equal(t, []byte{0xAA}, got)
}

func TestLinkFlushDropsQueuedBytes(t *testing.T) {
	rw := &pipeRW{}
	l := New(rw, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l.Start(ctx)

	rw.Write([]byte{1, 2, 3})
	time.Sleep(20 * time.Millisecond)
	l.Flush()

	ctx2, cancel2 := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel2()
	got, err := l.Read(ctx2, 1)
	require.Error(t, err)
	require.Empty(t, got)
}

var _ io.ReadWriter = (*pipeRW)(nil)
