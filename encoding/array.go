package encoding

import "github.com/optolink/bridge/optoerr"

// Array repeats a member Encoding a fixed number of times, e.g. a 4-element
// array of unsigned bytes.
type Array struct {
	member Encoding
	count  int
}

func NewArray(member Encoding, count int) *Array { return &Array{member: member, count: count} }

// Member returns the per-element Encoding, used by param.Storage to compute
// the address of a synthesized child parameter.
func (e *Array) Member() Encoding { return e.member }

func (e *Array) Size() int { return e.count * e.member.Size() }

func (e *Array) Validate(v any) error {
	items, ok := v.([]any)
	if !ok {
		return optoerr.New(optoerr.KindEncoding, "[]any expected")
	}
	if len(items) != e.count {
		return optoerr.New(optoerr.KindEncoding, "expected %d elements, got %d", e.count, len(items))
	}
	for _, it := range items {
		if err := e.member.Validate(it); err != nil {
			return err
		}
	}
	return nil
}

func (e *Array) Serialize(v any) ([]byte, error) {
	if err := e.Validate(v); err != nil {
		return nil, err
	}
	items := v.([]any)
	out := make([]byte, 0, e.Size())
	for _, it := range items {
		b, err := e.member.Serialize(it)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

func (e *Array) Deserialize(data []byte) (any, error) {
	if len(data) != e.Size() {
		return nil, optoerr.New(optoerr.KindDecoding, "expected %d bytes, got %d", e.Size(), len(data))
	}
	memberSize := e.member.Size()
	out := make([]any, e.count)
	for i := 0; i < e.count; i++ {
		v, err := e.member.Deserialize(data[i*memberSize : (i+1)*memberSize])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
