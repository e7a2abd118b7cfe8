// Package unit layers semantic validation and human-readable formatting on
// top of the wire-level encodings in package encoding. An encoding only
// knows how to turn a value into bytes; a Unit additionally knows whether
// the value makes sense (a temperature between -20 and 95, a cycle timer
// whose intervals don't overlap) and how to show it to a person.
package unit

// Unit validates a parameter's semantic value and renders it for display.
type Unit interface {
	// ID names the unit kind, used by param.Parameter for introspection.
	ID() string
	// Validate reports whether value is structurally acceptable, beyond
	// what the underlying Encoding already checked.
	Validate(value any) error
	// DisplayString renders value the way an operator would expect to
	// read it.
	DisplayString(value any) string
}
