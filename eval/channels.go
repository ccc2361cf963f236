package eval

import (
	"fmt"

	"loomlang/parser"
	"loomlang/runtime"
	"loomlang/trace"
	"loomlang/types"
)

// evalSend evaluates `value -> channel`. A channel resolving to $out
// prints the value's printable form to e.Out; otherwise the channel must
// resolve to a TaskRef and the send blocks until a matching receive pairs
// with it.
func (e *Evaluator) evalSend(n *parser.Send, frame *runtime.TaskFrame) types.Result {
	valueRes := e.Eval(n.Value, frame)
	if !valueRes.IsNormal() {
		return valueRes
	}
	channelRes := e.Eval(n.Channel, frame)
	if !channelRes.IsNormal() {
		return channelRes
	}

	if _, isMagic := channelRes.Val.(types.MagicRefValue); isMagic {
		fmt.Fprintln(e.Out, valueRes.Val.String())
		return types.Ok(types.NullVal)
	}

	peerID, err := types.AsTaskID(channelRes.Val)
	if err != nil {
		return types.ErrFrom(err)
	}
	ch, ok := frame.Outbound[peerID]
	if !ok {
		return types.Err(types.ErrChannel, fmt.Sprintf("no outbound channel to %s", channelRes.Val.String()))
	}
	trace.TaskSend(frame.FormattedName, frame.GlobalsDisplay(peerID), valueRes.Val)
	runtime.Send(ch, valueRes.Val)
	return types.Ok(types.NullVal)
}

// evalReceive evaluates either a directed receive (`target <- channel`) or
// a select-receive (`target <- ?peerVar`) across every inbound channel.
func (e *Evaluator) evalReceive(n *parser.Receive, frame *runtime.TaskFrame) types.Result {
	if n.Select {
		return e.evalSelectReceive(n, frame)
	}

	channelRes := e.Eval(n.Channel, frame)
	if !channelRes.IsNormal() {
		return channelRes
	}
	peerID, err := types.AsTaskID(channelRes.Val)
	if err != nil {
		return types.ErrFrom(err)
	}
	ch, ok := frame.Inbound[peerID]
	if !ok {
		return types.Err(types.ErrChannel, fmt.Sprintf("no inbound channel from %s", channelRes.Val.String()))
	}
	value := runtime.Receive(ch)
	trace.TaskReceive(frame.FormattedName, channelRes.Val.String(), value)
	frame.Assign(n.Target, value)
	return types.Ok(types.NullVal)
}

func (e *Evaluator) evalSelectReceive(n *parser.Receive, frame *runtime.TaskFrame) types.Result {
	// An empty inbound set is a valid, reachable program (a task with no
	// peers executing a select-receive); per spec.md §4.4 this blocks
	// forever rather than being treated as a detectable error — the
	// runtime performs no deadlock detection. runtime.SelectReceive with
	// zero endpoints does exactly that via reflect.Select's empty-case
	// behavior, so no special case is needed here.
	ids := frame.SortedInboundIDs()
	endpoints := make([]chan types.Value, len(ids))
	for i, id := range ids {
		endpoints[i] = frame.Inbound[id]
	}

	chosen, value := runtime.SelectReceive(endpoints)
	peerID := ids[chosen]
	peerDisplay := frame.GlobalsDisplay(peerID)

	trace.TaskReceive(frame.FormattedName, peerDisplay, value)
	frame.Assign(n.PeerVar, types.NewTaskRef(peerID, peerDisplay))
	frame.Assign(n.Target, value)
	return types.Ok(types.NullVal)
}
