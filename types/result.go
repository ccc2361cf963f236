package types

// ControlFlow tags the outcome of evaluating a node. conc's node set has no
// return/break/continue (no subroutines, no loop-exit statements), so this
// is reduced from the teacher's five-state enum to the three this language
// actually produces: a value, a runtime error, or a process-wide exit.
type ControlFlow int

const (
	FlowNormal    ControlFlow = iota // normal execution, Val holds the value
	FlowException                    // a RuntimeError aborted the current frame
	FlowExit                         // an Exit statement is terminating the whole process
)

// Result unifies a normal value and the two ways evaluation can derail,
// so every Eval method returns exactly one type regardless of outcome.
type Result struct {
	Val   Value
	Flow  ControlFlow
	Error *RuntimeError // set only when Flow == FlowException
}

// Ok creates a Result for normal execution with a value.
func Ok(v Value) Result {
	return Result{Val: v, Flow: FlowNormal}
}

// Err creates a Result for a runtime error.
func Err(kind ErrKind, message string) Result {
	return Result{Flow: FlowException, Error: &RuntimeError{Kind: kind, Message: message}}
}

// ErrFrom wraps an already-built RuntimeError (e.g. from AsInteger/AsTaskID).
func ErrFrom(err error) Result {
	if re, ok := err.(*RuntimeError); ok {
		return Result{Flow: FlowException, Error: re}
	}
	return Result{Flow: FlowException, Error: &RuntimeError{Kind: ErrType, Message: err.Error()}}
}

// Exit creates a Result signaling an Exit statement.
func Exit() Result {
	return Result{Flow: FlowExit}
}

// IsNormal reports whether this is normal execution.
func (r Result) IsNormal() bool {
	return r.Flow == FlowNormal
}

// IsError reports whether this is a runtime error.
func (r Result) IsError() bool {
	return r.Flow == FlowException
}

// IsExit reports whether this is an Exit statement's result.
func (r Result) IsExit() bool {
	return r.Flow == FlowExit
}
