package types

// RangeValue represents a half-open range literal, used by the evaluator
// to slice arrays (§4.4's Index node). No integer coercion happens until
// the range is actually used to index something.
type RangeValue struct {
	Begin Value
	End   Value
}

// NewRange creates a new range value.
func NewRange(begin, end Value) RangeValue {
	return RangeValue{Begin: begin, End: end}
}

func (r RangeValue) Kind() Kind { return KindRange }

func (r RangeValue) String() string {
	return r.Begin.String() + " .. " + r.End.String()
}

func (r RangeValue) Truthy() bool {
	return true
}

func (r RangeValue) Equal(other Value) bool {
	o, ok := other.(RangeValue)
	return ok && r.Begin.Equal(o.Begin) && r.End.Equal(o.End)
}
