package eval

import (
	"fmt"

	"loomlang/parser"
	"loomlang/runtime"
	"loomlang/types"
)

// evalIndex evaluates `base[index]`. base must be an Array. An Integer
// index wraps negative values (`i < 0` becomes `len + i`) and then bounds
// checks; a Range index wraps both ends independently and slices.
func (e *Evaluator) evalIndex(n *parser.Index, frame *runtime.TaskFrame) types.Result {
	baseRes := e.Eval(n.Base, frame)
	if !baseRes.IsNormal() {
		return baseRes
	}
	arr, ok := baseRes.Val.(types.ArrayValue)
	if !ok {
		return types.Err(types.ErrType, fmt.Sprintf("cannot index a %s", baseRes.Val.Kind()))
	}

	indexRes := e.Eval(n.Index, frame)
	if !indexRes.IsNormal() {
		return indexRes
	}

	switch idx := indexRes.Val.(type) {
	case types.RangeValue:
		return evalRangeIndex(arr, idx)
	default:
		return evalIntegerIndex(arr, indexRes.Val)
	}
}

func evalIntegerIndex(arr types.ArrayValue, indexVal types.Value) types.Result {
	i, err := types.AsInteger(indexVal)
	if err != nil {
		return types.ErrFrom(err)
	}
	eff, ok := wrapIndex(i, arr.Len())
	if !ok {
		return types.Err(types.ErrBounds, fmt.Sprintf("index %d is out of range", i))
	}
	return types.Ok(arr.Elements[eff])
}

func evalRangeIndex(arr types.ArrayValue, rng types.RangeValue) types.Result {
	beginI, err := types.AsInteger(rng.Begin)
	if err != nil {
		return types.ErrFrom(err)
	}
	endI, err := types.AsInteger(rng.End)
	if err != nil {
		return types.ErrFrom(err)
	}

	length := arr.Len()
	begin, ok := wrapBound(beginI, length)
	if !ok {
		return types.Err(types.ErrBounds, fmt.Sprintf("range start %d is out of range", beginI))
	}
	end, ok := wrapBound(endI, length)
	if !ok {
		return types.Err(types.ErrBounds, fmt.Sprintf("range end %d is out of range", endI))
	}
	if begin > end {
		return types.Err(types.ErrBounds, fmt.Sprintf("range %d .. %d is out of order", beginI, endI))
	}

	slice := make([]types.Value, end-begin)
	copy(slice, arr.Elements[begin:end])
	return types.Ok(types.NewArray(slice))
}

// wrapIndex applies the wrap-around rule to an element index: negative
// values count back from the end. Returns false if still out of bounds
// after wrapping.
func wrapIndex(i int64, length int) (int, bool) {
	if i < 0 {
		i += int64(length)
	}
	if i < 0 || i >= int64(length) {
		return 0, false
	}
	return int(i), true
}

// wrapBound applies the same wrap-around rule to a range endpoint, which
// may legitimately equal length (the half-open upper bound).
func wrapBound(i int64, length int) (int, bool) {
	if i < 0 {
		i += int64(length)
	}
	if i < 0 || i > int64(length) {
		return 0, false
	}
	return int(i), true
}
