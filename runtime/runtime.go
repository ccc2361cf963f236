package runtime

import (
	"fmt"

	"loomlang/parser"
	"loomlang/trace"
	"loomlang/types"
)

// Worker evaluates a single task frame to completion. The runtime package
// does not depend on the evaluator; callers supply it to Start to avoid an
// import cycle between runtime and eval.
type Worker func(*TaskFrame) types.Result

// Runtime is the orchestrator: it registers task definitions into frames,
// wires the channel topology between them, launches one worker per frame,
// and collects results.
//
// register_task and wire_channels run single-threaded during startup; once
// Start is called the runtime no longer mutates any frame or the globals
// table.
type Runtime struct {
	frames     []*TaskFrame
	names      map[string]bool
	globals    *Globals
	nextID     int64
	wired      bool
	started    bool
	completion chan completionMsg
}

type completionMsg struct {
	id            types.TaskID
	formattedName string
	result        types.Result
}

// New creates an empty Runtime ready for task registration.
func New() *Runtime {
	return &Runtime{
		names:   make(map[string]bool),
		globals: newGlobals(),
	}
}

// RegisterTask registers a task definition. When replicas is nil, one
// frame is created and the name is bound to a single TaskRef. Otherwise
// `*replicas` frames are created with Index 0..replicas-1 and the name is
// bound to an Array of TaskRefs in index order.
//
// Names must be unique across the program; a duplicate name is a
// configuration error.
func (r *Runtime) RegisterTask(name string, body *parser.Body, replicas *int64) error {
	if r.wired {
		return fmt.Errorf("cannot register task %q after channels have been wired", name)
	}
	if r.names[name] {
		return fmt.Errorf("duplicate task name %q", name)
	}
	r.names[name] = true

	if replicas == nil {
		frame := r.newFrame(name, nil, body)
		r.frames = append(r.frames, frame)
		r.globals.valuesByName[name] = types.NewTaskRef(frame.ID, frame.FormattedName)
		r.globals.displayByID[frame.ID] = frame.FormattedName
		return nil
	}

	n := *replicas
	if n < 1 {
		return fmt.Errorf("task %q declares %d replicas, must be at least 1", name, n)
	}
	refs := make([]types.Value, n)
	for i := int64(0); i < n; i++ {
		idx := i
		frame := r.newFrame(name, &idx, body)
		r.frames = append(r.frames, frame)
		r.globals.displayByID[frame.ID] = frame.FormattedName
		refs[i] = types.NewTaskRef(frame.ID, frame.FormattedName)
	}
	r.globals.valuesByName[name] = types.NewArray(refs)
	return nil
}

func (r *Runtime) newFrame(name string, index *int64, body *parser.Body) *TaskFrame {
	id := types.TaskID(r.nextID)
	r.nextID++
	return newFrame(id, name, index, body, r.globals)
}

// WireChannels allocates a capacity-0 channel for every ordered pair of
// distinct frames and installs the endpoints into both frames' tables.
// It runs exactly once; subsequent calls are no-ops.
func (r *Runtime) WireChannels() {
	if r.wired {
		return
	}
	r.wired = true
	for _, a := range r.frames {
		for _, b := range r.frames {
			if a.ID == b.ID {
				continue
			}
			ch := make(chan types.Value)
			a.Outbound[b.ID] = ch
			b.Inbound[a.ID] = ch
		}
	}
}

// Start launches one concurrent worker per task frame. Each worker's
// result is delivered to a completion channel drained by Join.
//
// A worker that runs an Exit statement terminates the whole process via
// os.Exit and never returns control here at all — that is the intended,
// spec-mandated behavior. The deferred fallback below exists only for
// callers (tests) that substitute a non-terminating Exit hook: it posts an
// Exit completion for a frame whose worker never returned, so Join, which
// stops at the first Exit, does not block forever waiting on that frame.
func (r *Runtime) Start(work Worker) {
	r.started = true
	r.completion = make(chan completionMsg, len(r.frames))
	for _, frame := range r.frames {
		go func(f *TaskFrame) {
			trace.TaskStart(f.FormattedName)
			posted := false
			defer func() {
				if !posted {
					r.completion <- completionMsg{id: f.ID, formattedName: f.FormattedName, result: types.Exit()}
				}
			}()
			result := work(f)
			trace.TaskComplete(f.FormattedName, result)
			posted = true
			r.completion <- completionMsg{id: f.ID, formattedName: f.FormattedName, result: result}
		}(frame)
	}
}

// Join blocks until every task frame has completed and returns the full
// map of formatted name to Result. An Exit bypasses the per-task
// completion mechanism (it terminates the whole process), so observing
// one ends the wait immediately with whatever results have arrived so
// far rather than waiting on frames that will never report.
func (r *Runtime) Join() map[string]types.Result {
	results := make(map[string]types.Result, len(r.frames))
	for i := 0; i < len(r.frames); i++ {
		msg := <-r.completion
		results[msg.formattedName] = msg.result
		if msg.result.IsExit() {
			return results
		}
	}
	return results
}

// FrameCount reports how many task frames are registered.
func (r *Runtime) FrameCount() int {
	return len(r.frames)
}
