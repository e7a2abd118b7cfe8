package unit

import (
	"fmt"
	"strings"

	"github.com/optolink/bridge/optoerr"
)

// Array validates and renders a []any by delegating each element to a child
// Unit, e.g. an array of Number units rendered as "[1, 2, 3]".
type Array struct {
	Child Unit
}

func NewArray(child Unit) *Array { return &Array{Child: child} }

func (u *Array) ID() string { return fmt.Sprintf("[%s]", u.Child.ID()) }

func (u *Array) Validate(value any) error {
	items, ok := value.([]any)
	if !ok {
		return optoerr.New(optoerr.KindUnitValidation, "list of values expected")
	}
	for _, it := range items {
		if err := u.Child.Validate(it); err != nil {
			return err
		}
	}
	return nil
}

func (u *Array) DisplayString(value any) string {
	items := value.([]any)
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = u.Child.DisplayString(it)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
