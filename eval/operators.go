package eval

import (
	"fmt"

	"loomlang/parser"
	"loomlang/runtime"
	"loomlang/types"
)

// evalBinaryOp evaluates both operands, requires both to be Integer, and
// applies the operator. Arithmetic wraps on overflow (two's-complement);
// division truncates toward zero; comparisons produce Boolean.
func (e *Evaluator) evalBinaryOp(n *parser.BinaryOp, frame *runtime.TaskFrame) types.Result {
	leftRes := e.Eval(n.Left, frame)
	if !leftRes.IsNormal() {
		return leftRes
	}
	rightRes := e.Eval(n.Right, frame)
	if !rightRes.IsNormal() {
		return rightRes
	}

	left, err := types.AsInteger(leftRes.Val)
	if err != nil {
		return types.ErrFrom(err)
	}
	right, err := types.AsInteger(rightRes.Val)
	if err != nil {
		return types.ErrFrom(err)
	}

	switch n.Op {
	case parser.OpAdd:
		return types.Ok(types.NewInt(wrapAdd(left, right)))
	case parser.OpSub:
		return types.Ok(types.NewInt(wrapSub(left, right)))
	case parser.OpMul:
		return types.Ok(types.NewInt(wrapMul(left, right)))
	case parser.OpDiv:
		if right == 0 {
			return types.Err(types.ErrArithmetic, "division by zero")
		}
		return types.Ok(types.NewInt(left / right)) // Go's / truncates toward zero
	case parser.OpEq:
		return types.Ok(types.NewBool(left == right))
	case parser.OpLt:
		return types.Ok(types.NewBool(left < right))
	case parser.OpGt:
		return types.Ok(types.NewBool(left > right))
	default:
		return types.Err(types.ErrForm, fmt.Sprintf("unknown binary operator %v", n.Op))
	}
}

// wrapAdd/wrapSub/wrapMul perform two's-complement wrapping arithmetic by
// round-tripping through uint64, so overflow behavior is deterministic
// regardless of how Go's own signed-overflow semantics might be specified
// in a future language version.
func wrapAdd(a, b int64) int64 {
	return int64(uint64(a) + uint64(b))
}

func wrapSub(a, b int64) int64 {
	return int64(uint64(a) - uint64(b))
}

func wrapMul(a, b int64) int64 {
	return int64(uint64(a) * uint64(b))
}
