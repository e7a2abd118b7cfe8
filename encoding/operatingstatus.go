package encoding

import "github.com/optolink/bridge/optoerr"

// OperatingStatus mirrors the device's tri-state run indicator.
type OperatingStatus int

const (
	StatusOFF OperatingStatus = iota
	StatusON
	StatusFAULT
)

func (s OperatingStatus) String() string {
	switch s {
	case StatusOFF:
		return "OFF"
	case StatusON:
		return "ON"
	default:
		return "FAULT"
	}
}

// OperatingStatusEncoding encodes an OperatingStatus as a single byte: 0 for
// OFF, 1 for ON, anything else read back from the device is FAULT. Only OFF
// and ON may be written.
type OperatingStatusEncoding struct{}

func NewOperatingStatus() *OperatingStatusEncoding { return &OperatingStatusEncoding{} }

func (e *OperatingStatusEncoding) Size() int { return 1 }

func (e *OperatingStatusEncoding) Validate(v any) error {
	s, ok := v.(OperatingStatus)
	if !ok {
		return optoerr.New(optoerr.KindEncoding, "OperatingStatus expected")
	}
	if s != StatusOFF && s != StatusON {
		return optoerr.New(optoerr.KindEncoding, "OperatingStatus FAULT cannot be written")
	}
	return nil
}

func (e *OperatingStatusEncoding) Serialize(v any) ([]byte, error) {
	if err := e.Validate(v); err != nil {
		return nil, err
	}
	if v.(OperatingStatus) == StatusOFF {
		return []byte{0x00}, nil
	}
	return []byte{0x01}, nil
}

func (e *OperatingStatusEncoding) Deserialize(data []byte) (any, error) {
	if len(data) != 1 {
		return nil, optoerr.New(optoerr.KindDecoding, "expected 1 byte, got %d", len(data))
	}
	switch data[0] {
	case 0:
		return StatusOFF, nil
	case 1:
		return StatusON, nil
	default:
		return StatusFAULT, nil
	}
}
