// Package link provides a non-blocking byte queue in front of a raw
// transport (typically a serial.Port, but any io.ReadWriter works for
// testing). It is the Go equivalent of the bridge's asyncio-queue-backed
// OptolinkConnection: a background goroutine continuously pumps bytes off
// the transport into a channel, so callers can read with a deadline instead
// of blocking the whole program on the device.
package link

import (
	"context"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Link buffers bytes read from a transport so Read calls can apply their own
// deadlines independent of how the transport itself blocks.
type Link struct {
	rw     io.ReadWriter
	queue  chan byte
	logger *zap.SugaredLogger

	mu      sync.Mutex
	running bool
	done    chan struct{}
}

// New wraps rw. logger may be nil, matching the nil-safe logger idiom used
// throughout this module.
func New(rw io.ReadWriter, logger *zap.SugaredLogger) *Link {
	return &Link{
		rw:     rw,
		queue:  make(chan byte, 4096),
		logger: logger,
	}
}

func (l *Link) logf(format string, args ...any) {
	if l.logger != nil {
		l.logger.Debugf(format, args...)
	}
}

// Start launches the background pump goroutine. It returns immediately; the
// pump stops when ctx is canceled or the transport returns io.EOF.
func (l *Link) Start(ctx context.Context) {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return
	}
	l.running = true
	l.done = make(chan struct{})
	l.mu.Unlock()

	go l.pump(ctx)
}

// Done returns a channel closed once the pump goroutine has exited.
func (l *Link) Done() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done
}

func (l *Link) pump(ctx context.Context) {
	defer close(l.done)
	buf := make([]byte, 256)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		n, err := l.rw.Read(buf)
		if err != nil {
			if err == io.EOF {
				l.logf("link: transport closed")
				return
			}
			l.logf("link: read error: %v", err)
			continue
		}
		for i := 0; i < n; i++ {
			select {
			case l.queue <- buf[i]:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Flush discards any bytes already queued but not yet read.
func (l *Link) Flush() {
	for {
		select {
		case <-l.queue:
		default:
			return
		}
	}
}

// Write sends bytes to the device. Like the original, this is a blocking
// call — at KW's 4800 baud a full command is on the wire in well under
// 50ms, so it never blocks the caller meaningfully long.
func (l *Link) Write(data []byte) (int, error) {
	return l.rw.Write(data)
}

// Read collects exactly count bytes, blocking until they arrive or ctx is
// done. On a canceled context it returns whatever bytes were collected so
// far (possibly none) together with ctx.Err(), mirroring the original's
// behavior of returning a short read on timeout rather than failing loudly.
func (l *Link) Read(ctx context.Context, count int) ([]byte, error) {
	out := make([]byte, 0, count)
	for len(out) < count {
		select {
		case b := <-l.queue:
			out = append(out, b)
		case <-ctx.Done():
			return out, ctx.Err()
		}
	}
	return out, nil
}
