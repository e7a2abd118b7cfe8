// Package optolink ties a parameter storage, a command runner and the
// underlying link together into the single external surface a caller uses
// to talk to a heating control device: read_param/set_param/read_address,
// plus start_communication to launch the runner's background loop. This is
// the Go counterpart of the Python ViessmannConnection.
package optolink

import (
	"context"
	"time"

	"github.com/optolink/bridge/link"
	"github.com/optolink/bridge/optoerr"
	"github.com/optolink/bridge/param"
	"github.com/optolink/bridge/protocol"
	"go.uber.org/zap"
)

// Connection combines a parameter Storage with a protocol Runner.
type Connection struct {
	storage *param.Storage
	runner  *protocol.Runner
	proto   protocol.Protocol
	logger  *zap.SugaredLogger
}

// New builds a Connection speaking the KW protocol. logger may be nil.
func New(storage *param.Storage, l *link.Link, logger *zap.SugaredLogger) *Connection {
	return NewWithProtocol(storage, l, protocol.KW{}, logger)
}

// NewWithProtocol builds a Connection over an explicit Protocol, letting a
// caller swap in a different wire protocol than KW. logger may be nil.
func NewWithProtocol(storage *param.Storage, l *link.Link, proto protocol.Protocol, logger *zap.SugaredLogger) *Connection {
	return &Connection{
		storage: storage,
		runner:  protocol.NewRunner(l, logger),
		proto:   proto,
		logger:  logger,
	}
}

// ParamStorage exposes the underlying Storage, e.g. for
// SupportedParameters().
func (c *Connection) ParamStorage() *param.Storage { return c.storage }

// StartCommunication launches the runner's background loop. It returns
// immediately; the loop runs until ctx is canceled.
func (c *Connection) StartCommunication(ctx context.Context) {
	go c.runner.Run(ctx)
}

// ReadParam reads a parameter's current value directly from the device,
// bypassing any cache.
func (c *Connection) ReadParam(ctx context.Context, id string) (*param.Reading, error) {
	p, addr, enc, err := c.storage.Resolve(id)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	cmd := c.proto.NewReadCommand([2]byte(addr), enc.Size())
	answer, err := c.runner.Execute(ctx, cmd)
	if err != nil {
		return nil, err
	}
	data, ok := answer.(protocol.Data)
	if !ok {
		return nil, optoerr.New(optoerr.KindDecoding, "could not read parameter %q", id)
	}
	val, err := enc.Deserialize(data.Value)
	if err != nil {
		return nil, err
	}
	reading, err := param.NewReadingNow(p, val, time.Now())
	if err != nil {
		return nil, err
	}
	c.logf("read %s in %s", id, time.Since(start))
	return reading, nil
}

// SetParam writes value to a parameter on the device. The parameter must
// not be read-only.
func (c *Connection) SetParam(ctx context.Context, id string, value any) error {
	p, addr, enc, err := c.storage.Resolve(id)
	if err != nil {
		return err
	}
	if p.IsReadOnly() {
		return optoerr.New(optoerr.KindReadOnlyViolation, "parameter %q is read-only", id)
	}
	if err := enc.Validate(value); err != nil {
		return err
	}
	if err := p.Validate(value); err != nil {
		return err
	}
	payload, err := enc.Serialize(value)
	if err != nil {
		return err
	}
	start := time.Now()
	cmd := c.proto.NewWriteCommand([2]byte(addr), payload)
	answer, err := c.runner.Execute(ctx, cmd)
	if err != nil {
		return err
	}
	if _, ok := answer.(protocol.Success); !ok {
		return optoerr.New(optoerr.KindDeviceFailure, "failure setting parameter %q", id)
	}
	c.logf("set %s in %s", id, time.Since(start))
	return nil
}

// ReadAddress is a low-level bypass of param.Storage: it reads size raw
// bytes directly from a device address.
func (c *Connection) ReadAddress(ctx context.Context, address [2]byte, size int) ([]byte, error) {
	cmd := c.proto.NewReadCommand(address, size)
	answer, err := c.runner.Execute(ctx, cmd)
	if err != nil {
		return nil, err
	}
	data, ok := answer.(protocol.Data)
	if !ok {
		return nil, optoerr.New(optoerr.KindDecoding, "could not read data at given address")
	}
	return data.Value, nil
}

func (c *Connection) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
