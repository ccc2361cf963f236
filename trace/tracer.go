// Package trace provides opt-in execution tracing of task lifecycle and
// channel events, enabled from the CLI via -trace/-trace-filter.
package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"loomlang/types"
)

// Tracer logs task-level events: start, completion, send, receive.
type Tracer struct {
	enabled bool
	filters []string
	writer  io.Writer
	mu      sync.Mutex
}

var globalTracer *Tracer

// Init initializes the global tracer. filters, if non-empty, are glob
// patterns matched against a task's formatted name; an empty filter set
// traces every task.
func Init(enabled bool, filters []string, writer io.Writer) {
	if writer == nil {
		writer = os.Stderr
	}
	globalTracer = &Tracer{
		enabled: enabled,
		filters: filters,
		writer:  writer,
	}
}

// IsEnabled reports whether the global tracer is active.
func IsEnabled() bool {
	return globalTracer != nil && globalTracer.enabled
}

func (t *Tracer) matchesFilter(taskName string) bool {
	if len(t.filters) == 0 {
		return true
	}
	for _, pattern := range t.filters {
		if matched, _ := filepath.Match(pattern, taskName); matched {
			return true
		}
	}
	return false
}

// TaskStart logs a task frame beginning evaluation.
func (t *Tracer) TaskStart(name string) {
	if !t.enabled || !t.matchesFilter(name) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.writer, "[TRACE] START %s\n", name)
}

// TaskComplete logs a task frame's final Result.
func (t *Tracer) TaskComplete(name string, result types.Result) {
	if !t.enabled || !t.matchesFilter(name) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	switch {
	case result.IsError():
		fmt.Fprintf(t.writer, "[TRACE] DONE  %s error=%s\n", name, result.Error.Error())
	case result.IsExit():
		fmt.Fprintf(t.writer, "[TRACE] DONE  %s exit\n", name)
	default:
		fmt.Fprintf(t.writer, "[TRACE] DONE  %s value=%s\n", name, result.Val.String())
	}
}

// TaskSend logs a value crossing a channel from sender to peer.
func (t *Tracer) TaskSend(from, to string, v types.Value) {
	if !t.enabled || !(t.matchesFilter(from) || t.matchesFilter(to)) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.writer, "[TRACE] SEND  %s -> %s value=%s\n", from, to, v.String())
}

// TaskReceive logs a value arriving at receiver from peer.
func (t *Tracer) TaskReceive(receiver, peer string, v types.Value) {
	if !t.enabled || !(t.matchesFilter(receiver) || t.matchesFilter(peer)) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.writer, "[TRACE] RECV  %s <- %s value=%s\n", receiver, peer, v.String())
}

// Global convenience functions, delegating to the global tracer when set.

func TaskStart(name string) {
	if globalTracer != nil {
		globalTracer.TaskStart(name)
	}
}

func TaskComplete(name string, result types.Result) {
	if globalTracer != nil {
		globalTracer.TaskComplete(name, result)
	}
}

func TaskSend(from, to string, v types.Value) {
	if globalTracer != nil {
		globalTracer.TaskSend(from, to, v)
	}
}

func TaskReceive(receiver, peer string, v types.Value) {
	if globalTracer != nil {
		globalTracer.TaskReceive(receiver, peer, v)
	}
}
