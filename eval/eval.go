// Package eval implements the tree-walking evaluator: the semantics of
// expressions and statements, including the send/receive rendezvous
// protocol and non-deterministic select-receive.
package eval

import (
	"fmt"
	"io"
	"os"

	"loomlang/parser"
	"loomlang/runtime"
	"loomlang/types"
)

// Evaluator walks the AST against a task frame. It keeps no per-frame
// state, so one Evaluator's Worker can serve every worker goroutine; the
// mutable state of a run lives in each goroutine's own frame.
type Evaluator struct {
	Out io.Writer

	// Exit is invoked when an Exit statement runs. It defaults to
	// terminating the whole process (os.Exit(0)), per §4.4's contract
	// that Exit bypasses the per-task completion mechanism entirely.
	// Tests substitute runtime.Goexit so a single fixture's exit doesn't
	// kill the test binary.
	Exit func()
}

// New creates an Evaluator that writes $out sends to stdout.
func New() *Evaluator {
	return &Evaluator{Out: os.Stdout, Exit: func() { os.Exit(0) }}
}

// NewWithOutput creates an Evaluator writing $out sends to the given
// writer, for capturing output in tests.
func NewWithOutput(w io.Writer) *Evaluator {
	return &Evaluator{Out: w, Exit: func() { os.Exit(0) }}
}

// Worker adapts Eval into a runtime.Worker: it evaluates a frame's body to
// completion and returns the final Result.
func (e *Evaluator) Worker(frame *runtime.TaskFrame) types.Result {
	return e.Eval(frame.Body, frame)
}

// Eval dispatches on the AST node kind and evaluates it against frame.
func (e *Evaluator) Eval(node parser.Node, frame *runtime.TaskFrame) types.Result {
	switch n := node.(type) {
	case *parser.Body:
		return e.evalBody(n, frame)
	case *parser.IntegerLiteral:
		return types.Ok(types.NewInt(n.Val))
	case *parser.BooleanLiteral:
		return types.Ok(types.NewBool(n.Val))
	case *parser.NullLiteral:
		return types.Ok(types.NullVal)
	case *parser.ArrayLiteral:
		return e.evalArrayLiteral(n, frame)
	case *parser.RangeExpr:
		return e.evalRangeExpr(n, frame)
	case *parser.Identifier:
		return e.evalIdentifier(n, frame)
	case *parser.BinaryOp:
		return e.evalBinaryOp(n, frame)
	case *parser.Index:
		return e.evalIndex(n, frame)
	case *parser.If:
		return e.evalIf(n, frame)
	case *parser.While:
		return e.evalWhile(n, frame)
	case *parser.Assign:
		return e.evalAssign(n, frame)
	case *parser.Send:
		return e.evalSend(n, frame)
	case *parser.Receive:
		return e.evalReceive(n, frame)
	case *parser.ExprStmt:
		return e.Eval(n.Expr, frame)
	case *parser.Exit:
		e.Exit()
		return types.Exit() // unreachable: e.Exit never returns
	default:
		return types.Err(types.ErrForm, fmt.Sprintf("unevaluable node %T", node))
	}
}

// evalBody evaluates each statement in order; its value is the value of
// the last statement, or Null if the body is empty.
func (e *Evaluator) evalBody(n *parser.Body, frame *runtime.TaskFrame) types.Result {
	last := types.Ok(types.NullVal)
	for _, stmt := range n.Stmts {
		last = e.Eval(stmt, frame)
		if !last.IsNormal() {
			return last
		}
	}
	return last
}

func (e *Evaluator) evalArrayLiteral(n *parser.ArrayLiteral, frame *runtime.TaskFrame) types.Result {
	elements := make([]types.Value, len(n.Elements))
	for i, elemNode := range n.Elements {
		r := e.Eval(elemNode, frame)
		if !r.IsNormal() {
			return r
		}
		elements[i] = r.Val
	}
	return types.Ok(types.NewArray(elements))
}

func (e *Evaluator) evalRangeExpr(n *parser.RangeExpr, frame *runtime.TaskFrame) types.Result {
	begin := e.Eval(n.Begin, frame)
	if !begin.IsNormal() {
		return begin
	}
	end := e.Eval(n.End, frame)
	if !end.IsNormal() {
		return end
	}
	return types.Ok(types.NewRange(begin.Val, end.Val))
}

func (e *Evaluator) evalIdentifier(n *parser.Identifier, frame *runtime.TaskFrame) types.Result {
	v, err := frame.Resolve(n.Name)
	if err != nil {
		return types.ErrFrom(err)
	}
	return types.Ok(v)
}

func (e *Evaluator) evalIf(n *parser.If, frame *runtime.TaskFrame) types.Result {
	cond := e.Eval(n.Cond, frame)
	if !cond.IsNormal() {
		return cond
	}
	if cond.Val.Truthy() {
		return e.Eval(n.Then, frame)
	}
	return types.Ok(types.NullVal)
}

func (e *Evaluator) evalWhile(n *parser.While, frame *runtime.TaskFrame) types.Result {
	last := types.Ok(types.NullVal)
	for {
		cond := e.Eval(n.Cond, frame)
		if !cond.IsNormal() {
			return cond
		}
		if !cond.Val.Truthy() {
			return last
		}
		last = e.Eval(n.Body, frame)
		if !last.IsNormal() {
			return last
		}
	}
}

func (e *Evaluator) evalAssign(n *parser.Assign, frame *runtime.TaskFrame) types.Result {
	value := e.Eval(n.Value, frame)
	if !value.IsNormal() {
		return value
	}
	frame.Assign(n.Target, value.Val)
	return types.Ok(types.NullVal)
}
