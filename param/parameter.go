// Package param describes a heating control device's named data points —
// where they live on the wire and how to validate values destined for
// them — independent of how those bytes actually get read or written.
package param

import (
	"fmt"
	"time"

	"github.com/optolink/bridge/optoerr"
	"github.com/optolink/bridge/unit"
)

// Parameter is a single named data location on a heating control device.
type Parameter struct {
	Name     string
	ID       string
	Unit     unit.Unit
	ReadOnly bool
}

func NewParameter(name, id string, u unit.Unit, readOnly bool) *Parameter {
	return &Parameter{Name: name, ID: id, Unit: u, ReadOnly: readOnly}
}

// Validate checks value against the parameter's unit.
func (p *Parameter) Validate(value any) error {
	return p.Unit.Validate(value)
}

func (p *Parameter) IsReadOnly() bool { return p.ReadOnly }

// AggregatedParameter is a Parameter whose value is an array, each element
// independently addressable as a child parameter "<id>.<index>".
type AggregatedParameter struct {
	Parameter
	ChildCount int
	MemberUnit unit.Unit
}

func NewAggregatedParameter(name, id string, childUnit unit.Unit, childCount int, readOnly bool) *AggregatedParameter {
	return &AggregatedParameter{
		Parameter:  Parameter{Name: name, ID: id, Unit: unit.NewArray(childUnit), ReadOnly: readOnly},
		ChildCount: childCount,
		MemberUnit: childUnit,
	}
}

// ChildParameter returns the Parameter describing the index'th element of
// an AggregatedParameter's value.
func (p *AggregatedParameter) ChildParameter(index int) (*Parameter, error) {
	if index < 0 || index >= p.ChildCount {
		return nil, optoerr.New(optoerr.KindChildIndexOutOfRange, "child index %d out of range [0,%d)", index, p.ChildCount)
	}
	return &Parameter{
		Name:     fmt.Sprintf("%s[%d]", p.Name, index),
		ID:       fmt.Sprintf("%s.%d", p.ID, index),
		Unit:     p.MemberUnit,
		ReadOnly: p.ReadOnly,
	}, nil
}

// Value pairs a Parameter with a concrete value for it.
type Value struct {
	Parameter *Parameter
	Value     any
}

// NewValue validates value against parameter before constructing a Value.
func NewValue(parameter *Parameter, value any) (*Value, error) {
	if err := parameter.Validate(value); err != nil {
		return nil, err
	}
	return &Value{Parameter: parameter, Value: value}, nil
}

// DisplayString renders the value the way an operator would expect to read it.
func (v *Value) DisplayString() string {
	return v.Parameter.Unit.DisplayString(v.Value)
}

// Reading is a Value observed at a point in time.
type Reading struct {
	Value
	Time time.Time
}

// NewReadingNow validates value against parameter and timestamps it with
// the current time.
func NewReadingNow(parameter *Parameter, value any, now time.Time) (*Reading, error) {
	if err := parameter.Validate(value); err != nil {
		return nil, err
	}
	return &Reading{Value: Value{Parameter: parameter, Value: value}, Time: now}, nil
}
