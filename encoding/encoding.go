// Package encoding implements the byte-level codecs for values stored on a
// Viessmann-style heating control device: fixed-width integers, scaled
// floats, packed-BCD timestamps, cycle timers and fixed-size arrays. Each
// Encoding only knows how to convert between a Go value and the bytes a KW
// read/write command carries; it has no notion of addresses or units.
package encoding

import "github.com/optolink/bridge/optoerr"

// Encoding converts between a Go value and the wire bytes a device uses to
// represent it.
type Encoding interface {
	// Serialize validates and converts v into exactly Size() bytes.
	Serialize(v any) ([]byte, error)
	// Deserialize converts exactly Size() bytes received from the device
	// into a Go value. Malformed input yields an *optoerr.Error of kind
	// KindDecoding.
	Deserialize(data []byte) (any, error)
	// Validate reports whether v is an acceptable value for Serialize,
	// without performing the conversion.
	Validate(v any) error
	// Size returns the number of wire bytes a value of this encoding
	// occupies.
	Size() int
}
