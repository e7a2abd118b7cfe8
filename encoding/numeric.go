package encoding

import "github.com/optolink/bridge/optoerr"

// UInt is an unsigned, little-endian, fixed-width integer encoding. Size
// must be 1, 2 or 4 bytes.
type UInt struct {
	size int
}

func NewUInt(size int) *UInt { return &UInt{size: size} }

func (e *UInt) Size() int { return e.size }

func (e *UInt) Validate(v any) error {
	n, ok := toInt64(v)
	if !ok {
		return optoerr.New(optoerr.KindEncoding, "wrong argument type, integral number expected")
	}
	if n < 0 {
		return optoerr.New(optoerr.KindEncoding, "positive number expected")
	}
	if e.size < 8 && n >= int64(1)<<(8*uint(e.size)) {
		return optoerr.New(optoerr.KindEncoding, "value %d does not fit in %d bytes", n, e.size)
	}
	return nil
}

func (e *UInt) Serialize(v any) ([]byte, error) {
	if err := e.Validate(v); err != nil {
		return nil, err
	}
	n, _ := toInt64(v)
	out := make([]byte, e.size)
	for i := 0; i < e.size; i++ {
		out[i] = byte(n >> (8 * uint(i)))
	}
	return out, nil
}

func (e *UInt) Deserialize(data []byte) (any, error) {
	if len(data) != e.size {
		return nil, optoerr.New(optoerr.KindDecoding, "expected %d bytes, got %d", e.size, len(data))
	}
	var n uint64
	for i := e.size - 1; i >= 0; i-- {
		n = n<<8 | uint64(data[i])
	}
	return n, nil
}

// Int is a signed, little-endian, two's-complement, fixed-width integer
// encoding. Size must be 1, 2 or 4 bytes.
type Int struct {
	size int
}

func NewInt(size int) *Int { return &Int{size: size} }

func (e *Int) Size() int { return e.size }

func (e *Int) Validate(v any) error {
	if _, ok := toInt64(v); !ok {
		return optoerr.New(optoerr.KindEncoding, "wrong argument type, integral number expected")
	}
	return nil
}

func (e *Int) Serialize(v any) ([]byte, error) {
	if err := e.Validate(v); err != nil {
		return nil, err
	}
	n, _ := toInt64(v)
	out := make([]byte, e.size)
	for i := 0; i < e.size; i++ {
		out[i] = byte(n >> (8 * uint(i)))
	}
	return out, nil
}

func (e *Int) Deserialize(data []byte) (any, error) {
	if len(data) != e.size {
		return nil, optoerr.New(optoerr.KindDecoding, "expected %d bytes, got %d", e.size, len(data))
	}
	var n int64
	for i := e.size - 1; i >= 0; i-- {
		n = n<<8 | int64(data[i])
	}
	// sign extend from size*8 bits
	shift := uint(64 - 8*e.size)
	n = (n << shift) >> shift
	return n, nil
}

// Float scales a signed integer of the given wire size by a fixed divisor,
// e.g. a two-byte int16 with divisor 10 represents tenths of a degree.
type Float struct {
	size    int
	divisor float64
}

func NewFloat(size int, divisor float64) *Float { return &Float{size: size, divisor: divisor} }

func (e *Float) Size() int { return e.size }

func (e *Float) Validate(v any) error {
	if _, ok := toFloat64(v); !ok {
		return optoerr.New(optoerr.KindEncoding, "wrong argument type, number expected")
	}
	return nil
}

func (e *Float) Serialize(v any) ([]byte, error) {
	if err := e.Validate(v); err != nil {
		return nil, err
	}
	f, _ := toFloat64(v)
	n := int64(f * e.divisor)
	out := make([]byte, e.size)
	for i := 0; i < e.size; i++ {
		out[i] = byte(n >> (8 * uint(i)))
	}
	return out, nil
}

func (e *Float) Deserialize(data []byte) (any, error) {
	if len(data) != e.size {
		return nil, optoerr.New(optoerr.KindDecoding, "expected %d bytes, got %d", e.size, len(data))
	}
	var n int64
	for i := e.size - 1; i >= 0; i-- {
		n = n<<8 | int64(data[i])
	}
	shift := uint(64 - 8*e.size)
	n = (n << shift) >> shift
	return float64(n) / e.divisor, nil
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case uint:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float64:
		if float64(int64(n)) != n {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
