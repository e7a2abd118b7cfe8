// Package dummy implements an in-memory stand-in for a KW-protocol heating
// control device, for testing the protocol runner and higher layers without
// real hardware. It speaks over any io.ReadWriter, including a real
// pseudoterminal opened with serial.OpenPTY, so the same device logic can
// drive an end-to-end test through the actual serial package.
package dummy

import (
	"context"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SyncInterval is how often the dummy offers a fresh sync byte. Must stay
// greater than CommandWindow: a device that found something to do inside
// its window needs time to finish before announcing the next session.
const SyncInterval = 2 * time.Second

// CommandWindow is how long the dummy waits after a sync byte for the
// controller to answer with the start byte.
const CommandWindow = 500 * time.Millisecond

const (
	syncByte  = 0x05
	startByte = 0x01
	readOp    = 0xF7
	writeOp   = 0xF4
)

// Device emulates the appliance side of the KW wire protocol: it stores
// bytes at addresses and services read/write frames during the window it
// opens after each sync byte.
type Device struct {
	rw     io.ReadWriter
	logger *zap.SugaredLogger

	mu      sync.Mutex
	storage map[uint16]byte
}

// New wraps rw (a serial.Port, a PTY half, or any test double). logger may
// be nil.
func New(rw io.ReadWriter, logger *zap.SugaredLogger) *Device {
	return &Device{rw: rw, logger: logger, storage: make(map[uint16]byte)}
}

func (d *Device) logf(format string, args ...any) {
	if d.logger != nil {
		d.logger.Debugf(format, args...)
	}
}

// Get returns the byte stored at addr (0 if never written), for test
// assertions.
func (d *Device) Get(addr uint16) byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.storage[addr]
}

// Set preloads addr with value, for test fixtures.
func (d *Device) Set(addr uint16, value byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.storage[addr] = value
}

// Run drives the device loop until ctx is canceled: emit a sync byte, wait
// up to CommandWindow for the controller to claim the session, service
// frames until the controller stops or the window lapses, then sleep out
// the remainder of SyncInterval before the next sync byte.
func (d *Device) Run(ctx context.Context) {
	for ctx.Err() == nil {
		cycleStart := time.Now()
		if _, err := d.rw.Write([]byte{syncByte}); err != nil {
			d.logf("dummy: sync write failed: %v", err)
			return
		}
		b, err := d.readByte(ctx, CommandWindow)
		if err == nil && b == startByte {
			d.serviceSession(ctx)
		}
		remaining := SyncInterval - time.Since(cycleStart)
		if remaining > 0 {
			select {
			case <-time.After(remaining):
			case <-ctx.Done():
				return
			}
		}
	}
}

// serviceSession handles frames back to back until an unrecognized
// discriminator or a read timeout returns the device to sync emission.
func (d *Device) serviceSession(ctx context.Context) {
	for {
		op, err := d.readByte(ctx, 100*time.Millisecond)
		if err != nil {
			return
		}
		switch op {
		case readOp:
			if !d.handleRead(ctx) {
				return
			}
		case writeOp:
			if !d.handleWrite(ctx) {
				return
			}
		default:
			return
		}
	}
}

func (d *Device) handleRead(ctx context.Context) bool {
	header, err := d.readN(ctx, 3, time.Second)
	if err != nil {
		return false
	}
	addr := uint16(header[0])<<8 | uint16(header[1])
	size := int(header[2])
	reply := make([]byte, size)
	d.mu.Lock()
	for i := 0; i < size; i++ {
		reply[i] = d.storage[addr+uint16(i)]
	}
	d.mu.Unlock()
	_, err = d.rw.Write(reply)
	return err == nil
}

func (d *Device) handleWrite(ctx context.Context) bool {
	header, err := d.readN(ctx, 3, time.Second)
	if err != nil {
		return false
	}
	addr := uint16(header[0])<<8 | uint16(header[1])
	size := int(header[2])
	payload, err := d.readN(ctx, size, time.Second)
	if err != nil {
		return false
	}
	d.mu.Lock()
	for i, v := range payload {
		d.storage[addr+uint16(i)] = v
	}
	d.mu.Unlock()
	_, err = d.rw.Write([]byte{0x00})
	return err == nil
}

func (d *Device) readByte(ctx context.Context, timeout time.Duration) (byte, error) {
	b, err := d.readN(ctx, 1, timeout)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// readN performs blocking reads off d.rw until n bytes are collected or
// timeout elapses, polling ctx cancellation between reads.
func (d *Device) readN(ctx context.Context, n int, timeout time.Duration) ([]byte, error) {
	deadline := time.Now().Add(timeout)
	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		if time.Now().After(deadline) {
			return out, context.DeadlineExceeded
		}
		r, err := d.rw.Read(buf[:n-len(out)])
		if err != nil && err != io.EOF {
			return out, err
		}
		if r == 0 {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		out = append(out, buf[:r]...)
	}
	return out, nil
}
