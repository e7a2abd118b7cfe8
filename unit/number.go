package unit

import (
	"fmt"
	"math"

	"github.com/optolink/bridge/optoerr"
)

// Number validates a plain numeric reading against optional bounds and an
// optional integrality requirement, and renders it with a unit suffix, e.g.
// "21.5°C".
type Number struct {
	LowerBound *float64
	UpperBound *float64
	Integer    bool
	Suffix     string
}

func NewNumber(lower, upper *float64, integer bool, suffix string) *Number {
	return &Number{LowerBound: lower, UpperBound: upper, Integer: integer, Suffix: suffix}
}

func (u *Number) ID() string { return "number" }

func (u *Number) Validate(value any) error {
	f, ok := asFloat(value)
	if !ok {
		return optoerr.New(optoerr.KindUnitValidation, "number expected")
	}
	if u.Integer && float64(int64(f)) != f {
		return optoerr.New(optoerr.KindUnitValidation, "expected integral number")
	}
	if u.LowerBound != nil && f < *u.LowerBound {
		return optoerr.New(optoerr.KindUnitValidation, "value %v may not be smaller than %v", f, *u.LowerBound)
	}
	if u.UpperBound != nil && f > *u.UpperBound {
		return optoerr.New(optoerr.KindUnitValidation, "value %v may not be bigger than %v", f, *u.UpperBound)
	}
	return nil
}

func (u *Number) DisplayString(value any) string {
	f, _ := asFloat(value)
	return fmt.Sprintf("%v%s", f, u.Suffix)
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}

// Hour is a Number specialized for durations stored as fractional hours,
// displayed as "H:MMh" (e.g. 323 hours 3 minutes as "323:03h").
type Hour struct {
	Number
}

func NewHour() *Hour {
	zero := 0.0
	return &Hour{Number: Number{LowerBound: &zero}}
}

func (u *Hour) DisplayString(value any) string {
	f, _ := asFloat(value)
	minutes := int(math.Mod(f, 1) * 60)
	return fmt.Sprintf("%.0f:%02dh", math.Floor(f), minutes)
}
