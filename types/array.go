package types

import "strings"

// ArrayValue represents a conc array: an ordered, immutable sequence of
// values. Index/range wrap-around and bounds-checking live in the
// evaluator (§4.4's Index node), not here — ArrayValue is just storage.
type ArrayValue struct {
	Elements []Value
}

// NewArray creates a new array value from elements, in order.
func NewArray(elements []Value) ArrayValue {
	return ArrayValue{Elements: elements}
}

func (a ArrayValue) Kind() Kind { return KindArray }

// Len returns the number of elements.
func (a ArrayValue) Len() int {
	return len(a.Elements)
}

// String renders "[ a, b, c ]", per §4.1's printable().
func (a ArrayValue) String() string {
	if len(a.Elements) == 0 {
		return "[ ]"
	}
	parts := make([]string, len(a.Elements))
	for i, elem := range a.Elements {
		parts[i] = elem.String()
	}
	return "[ " + strings.Join(parts, ", ") + " ]"
}

// Truthy is always true, including for the empty array — per §4.1, only
// Null and Boolean(false) are falsy.
func (a ArrayValue) Truthy() bool {
	return true
}

func (a ArrayValue) Equal(other Value) bool {
	o, ok := other.(ArrayValue)
	if !ok || len(a.Elements) != len(o.Elements) {
		return false
	}
	for i := range a.Elements {
		if !a.Elements[i].Equal(o.Elements[i]) {
			return false
		}
	}
	return true
}
