package protocol

import "github.com/optolink/bridge/optoerr"

// Protocol names a wire protocol and builds its Commands. KW is the only
// implementation shipped; the seam exists because the original source
// anticipated more than one device protocol behind the same connection.
type Protocol interface {
	Name() string
	NewReadCommand(address [2]byte, size int) Command
	NewWriteCommand(address [2]byte, value []byte) Command
}

// KW is the Viessmann optical-link protocol: 0xF7 reads, 0xF4 writes, a
// single status byte on write replies.
type KW struct{}

func (KW) Name() string { return "KW" }

func (KW) NewReadCommand(address [2]byte, size int) Command {
	return NewReadCommand(address, size)
}

func (KW) NewWriteCommand(address [2]byte, value []byte) Command {
	return NewWriteCommand(address, value)
}

// Command is one request/response exchange within a KW session.
type Command interface {
	// Bytes returns the frame to write to the device.
	Bytes() []byte
	// ExpectedReplyLen is how many bytes the device is expected to answer
	// with.
	ExpectedReplyLen() int
	// HandleReply converts the raw reply bytes into an Answer.
	HandleReply(data []byte) (Answer, error)
}

// Answer is the result of a successfully exchanged Command.
type Answer interface{ isAnswer() }

// Success indicates a write command was accepted by the device.
type Success struct{}

func (Success) isAnswer() {}

// Failure indicates a write command was rejected (nonzero status byte).
type Failure struct{}

func (Failure) isAnswer() {}

// Data carries the bytes returned by a read command.
type Data struct{ Value []byte }

func (Data) isAnswer() {}

// ReadCommand reads size bytes starting at address over the KW protocol:
// 0xF7 addr[2] size[1].
type ReadCommand struct {
	Address [2]byte
	Size    int
}

func NewReadCommand(address [2]byte, size int) *ReadCommand {
	return &ReadCommand{Address: address, Size: size}
}

func (c *ReadCommand) Bytes() []byte {
	return []byte{0xF7, c.Address[0], c.Address[1], byte(c.Size)}
}

func (c *ReadCommand) ExpectedReplyLen() int { return c.Size }

func (c *ReadCommand) HandleReply(data []byte) (Answer, error) {
	return Data{Value: data}, nil
}

// WriteCommand writes value to address over the KW protocol:
// 0xF4 addr[2] len[1] value.
type WriteCommand struct {
	Address [2]byte
	Value   []byte
}

func NewWriteCommand(address [2]byte, value []byte) *WriteCommand {
	return &WriteCommand{Address: address, Value: value}
}

func (c *WriteCommand) Bytes() []byte {
	out := make([]byte, 0, 4+len(c.Value))
	out = append(out, 0xF4, c.Address[0], c.Address[1], byte(len(c.Value)))
	out = append(out, c.Value...)
	return out
}

func (c *WriteCommand) ExpectedReplyLen() int { return 1 }

func (c *WriteCommand) HandleReply(data []byte) (Answer, error) {
	if len(data) != 1 {
		return nil, optoerr.New(optoerr.KindDecoding, "expected 1 status byte, got %d", len(data))
	}
	if data[0] != 0 {
		return Failure{}, nil
	}
	return Success{}, nil
}
