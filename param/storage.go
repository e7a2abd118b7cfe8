package param

import (
	"strconv"
	"strings"

	"github.com/optolink/bridge/encoding"
	"github.com/optolink/bridge/optoerr"
)

// Address is a device memory address, always carried as the 2 big-endian
// bytes the KW protocol puts on the wire.
type Address [2]byte

func (a Address) Uint16() uint16 { return uint16(a[0])<<8 | uint16(a[1]) }

func AddressFromUint16(v uint16) Address {
	return Address{byte(v >> 8), byte(v)}
}

// mapping ties a top-level parameter to where it lives (Address) and how
// its value is encoded on the wire (Encoding). aggregate is non-nil when
// param is an AggregatedParameter, letting Storage resolve dotted child ids
// without a type switch at every call site.
type mapping struct {
	param     *Parameter
	aggregate *AggregatedParameter
	address   Address
	encoding  encoding.Encoding
}

// Storage is the full set of parameters a device exposes, keyed by id.
// Dotted ids ("holiday.2") resolve to a synthesized child of an
// AggregatedParameter without requiring the child to be registered
// separately.
type Storage struct {
	entries map[string]mapping
}

func NewStorage() *Storage {
	return &Storage{entries: make(map[string]mapping)}
}

// Add registers a top-level parameter at address, encoded as enc. It is an
// error to register the same id twice.
func (s *Storage) Add(p *Parameter, address Address, enc encoding.Encoding) error {
	if _, exists := s.entries[p.ID]; exists {
		return optoerr.New(optoerr.KindUnknownParameter, "parameter %q already exists", p.ID)
	}
	s.entries[p.ID] = mapping{param: p, address: address, encoding: enc}
	return nil
}

// AddAggregated registers an AggregatedParameter, enabling dotted child-id
// resolution against it.
func (s *Storage) AddAggregated(p *AggregatedParameter, address Address, enc *encoding.Array) error {
	if _, exists := s.entries[p.ID]; exists {
		return optoerr.New(optoerr.KindUnknownParameter, "parameter %q already exists", p.ID)
	}
	s.entries[p.ID] = mapping{param: &p.Parameter, aggregate: p, address: address, encoding: enc}
	return nil
}

// SupportedParameters lists every top-level parameter registered with Add
// or AddAggregated. Synthesized children are not included, since they are
// never registered; any in-range index resolves on demand.
func (s *Storage) SupportedParameters() []*Parameter {
	out := make([]*Parameter, 0, len(s.entries))
	for _, m := range s.entries {
		out = append(out, m.param)
	}
	return out
}

// Aggregate returns the AggregatedParameter registered at the given
// top-level id, if any. Used by package cache to decide whether a written
// or reloaded value invalidates a family of synthesized children.
func (s *Storage) Aggregate(id string) (*AggregatedParameter, bool) {
	m, ok := s.entries[id]
	if !ok || m.aggregate == nil {
		return nil, false
	}
	return m.aggregate, true
}

// Resolve looks up id (an id string or dotted child id) and returns the
// Parameter describing it, the Address it lives at, and the Encoding of its
// value.
func (s *Storage) Resolve(id string) (*Parameter, Address, encoding.Encoding, error) {
	if dot := strings.IndexByte(id, '.'); dot >= 0 {
		return s.resolveChild(id[:dot], id[dot+1:])
	}
	m, ok := s.entries[id]
	if !ok {
		return nil, Address{}, nil, optoerr.New(optoerr.KindUnknownParameter, "unknown parameter %q", id)
	}
	return m.param, m.address, m.encoding, nil
}

func (s *Storage) resolveChild(containerID, indexStr string) (*Parameter, Address, encoding.Encoding, error) {
	index, err := strconv.Atoi(indexStr)
	if err != nil {
		return nil, Address{}, nil, optoerr.New(optoerr.KindChildIndexOutOfRange, "malformed child index %q", indexStr)
	}
	m, ok := s.entries[containerID]
	if !ok {
		return nil, Address{}, nil, optoerr.New(optoerr.KindUnknownParameter, "unknown parameter %q", containerID)
	}
	if m.aggregate == nil {
		return nil, Address{}, nil, optoerr.New(optoerr.KindUnknownParameter, "parameter %q has no children", containerID)
	}
	childParam, err := m.aggregate.ChildParameter(index)
	if err != nil {
		return nil, Address{}, nil, err
	}
	arr := m.encoding.(*encoding.Array)
	memberEncoding := arr.Member()
	addr := AddressFromUint16(m.address.Uint16() + uint16(memberEncoding.Size()*index))
	return childParam, addr, memberEncoding, nil
}
