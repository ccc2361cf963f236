package runtime

import (
	"strconv"

	"loomlang/parser"
	"loomlang/types"
)

// endpoint is one half of a rendezvous channel. Capacity is always 0: the
// underlying Go channel is unbuffered, so a send only completes once a
// matching receive is paired on the other end.
type endpoint = chan types.Value

// TaskFrame is one running instance of a task definition. A replicated
// task (`task Name[N]`) produces N frames sharing the same Name but
// distinct IDs and Index values.
type TaskFrame struct {
	ID            types.TaskID
	Name          string
	Index         *int64 // nil unless this frame is a replica
	FormattedName string
	Body          *parser.Body

	Locals map[string]types.Value

	// Inbound[id] is the receive end of the id->this channel.
	// Outbound[id] is the send end of the this->id channel.
	// Both carry one entry per other frame in the program.
	Inbound  map[types.TaskID]endpoint
	Outbound map[types.TaskID]endpoint

	globals *Globals
}

func newFrame(id types.TaskID, name string, index *int64, body *parser.Body, globals *Globals) *TaskFrame {
	formatted := name
	if index != nil {
		formatted = formattedReplicaName(name, *index)
	}
	return &TaskFrame{
		ID:            id,
		Name:          name,
		Index:         index,
		FormattedName: formatted,
		Body:          body,
		Locals:        make(map[string]types.Value),
		Inbound:       make(map[types.TaskID]endpoint),
		Outbound:      make(map[types.TaskID]endpoint),
		globals:       globals,
	}
}

func formattedReplicaName(name string, index int64) string {
	return name + "[" + strconv.FormatInt(index, 10) + "]"
}

// Resolve looks up an identifier with precedence: magic names, then
// locals, then globals.
func (f *TaskFrame) Resolve(name string) (types.Value, error) {
	if v, ok := f.resolveMagic(name); ok {
		return v, nil
	}
	if v, ok := f.Locals[name]; ok {
		return v, nil
	}
	if v, ok := f.globals.Lookup(name); ok {
		return v, nil
	}
	return nil, &types.RuntimeError{Kind: types.ErrResolve, Message: "could not find `" + name + "`"}
}

func (f *TaskFrame) resolveMagic(name string) (types.Value, bool) {
	switch name {
	case "$out":
		return types.MagicOutRef, true
	case "$index":
		if f.Index != nil {
			return types.NewInt(*f.Index), true
		}
		return types.NullVal, true
	default:
		return nil, false
	}
}

// GlobalsDisplay looks up the formatted name registered for a peer TaskID,
// used to report the chosen peer after a select-receive or to identify a
// channel endpoint in trace output.
func (f *TaskFrame) GlobalsDisplay(id types.TaskID) string {
	return f.globals.DisplayName(id)
}

// Assign binds a local variable in this frame.
func (f *TaskFrame) Assign(name string, v types.Value) {
	f.Locals[name] = v
}

// SortedInboundIDs returns the frame's inbound peer TaskIDs in ascending
// order, giving select-receive a stable enumeration to snapshot.
func (f *TaskFrame) SortedInboundIDs() []types.TaskID {
	ids := make([]types.TaskID, 0, len(f.Inbound))
	for id := range f.Inbound {
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	return ids
}
