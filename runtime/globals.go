package runtime

import "loomlang/types"

// Globals is the read-only name environment shared by every task frame.
// It is built incrementally during registration and never mutated once
// Start has been called.
type Globals struct {
	valuesByName map[string]types.Value
	displayByID  map[types.TaskID]string
}

func newGlobals() *Globals {
	return &Globals{
		valuesByName: make(map[string]types.Value),
		displayByID:  make(map[types.TaskID]string),
	}
}

// Lookup resolves a top-level task name to its Value: a single TaskRef for
// an unreplicated task, or an Array of TaskRefs in index order for a
// replicated one.
func (g *Globals) Lookup(name string) (types.Value, bool) {
	v, ok := g.valuesByName[name]
	return v, ok
}

// DisplayName returns the formatted name registered for a TaskID.
func (g *Globals) DisplayName(id types.TaskID) string {
	return g.displayByID[id]
}
