package runtime

import (
	"testing"

	"loomlang/types"
)

func TestResolveMagicOut(t *testing.T) {
	f := newFrame(0, "Main", nil, nil, newGlobals())
	v, err := f.Resolve("$out")
	if err != nil {
		t.Fatalf("Resolve($out): %v", err)
	}
	if v != types.MagicOutRef {
		t.Errorf("$out resolved to %#v, want MagicOutRef", v)
	}
}

func TestResolveIndexForReplica(t *testing.T) {
	idx := int64(2)
	f := newFrame(0, "Worker", &idx, nil, newGlobals())
	v, err := f.Resolve("$index")
	if err != nil {
		t.Fatalf("Resolve($index): %v", err)
	}
	i, ok := v.(types.IntValue)
	if !ok || i.Val != 2 {
		t.Errorf("$index = %#v, want IntValue(2)", v)
	}
}

func TestResolveIndexForNonReplicaIsNull(t *testing.T) {
	f := newFrame(0, "Main", nil, nil, newGlobals())
	v, err := f.Resolve("$index")
	if err != nil {
		t.Fatalf("Resolve($index): %v", err)
	}
	if v != types.NullVal {
		t.Errorf("$index = %#v, want NullVal for a non-replicated task", v)
	}
}

func TestResolvePrecedenceLocalsOverGlobals(t *testing.T) {
	globals := newGlobals()
	globals.valuesByName["x"] = types.NewInt(100)
	f := newFrame(0, "Main", nil, nil, globals)
	f.Assign("x", types.NewInt(1))

	v, err := f.Resolve("x")
	if err != nil {
		t.Fatalf("Resolve(x): %v", err)
	}
	i := v.(types.IntValue)
	if i.Val != 1 {
		t.Errorf("x = %d, want 1 (locals must shadow globals)", i.Val)
	}
}

func TestResolveFallsThroughToGlobals(t *testing.T) {
	globals := newGlobals()
	globals.valuesByName["Worker"] = types.NewTaskRef(5, "Worker")
	f := newFrame(0, "Main", nil, nil, globals)

	v, err := f.Resolve("Worker")
	if err != nil {
		t.Fatalf("Resolve(Worker): %v", err)
	}
	ref := v.(types.TaskRefValue)
	if ref.ID != 5 {
		t.Errorf("Worker.ID = %d, want 5", ref.ID)
	}
}

func TestResolveUnknownNameIsAnError(t *testing.T) {
	f := newFrame(0, "Main", nil, nil, newGlobals())
	_, err := f.Resolve("nope")
	if err == nil {
		t.Fatal("expected a resolve error for an unknown name")
	}
	re, ok := err.(*types.RuntimeError)
	if !ok || re.Kind != types.ErrResolve {
		t.Errorf("err = %#v, want an ErrResolve RuntimeError", err)
	}
}

func TestSortedInboundIDsIsStable(t *testing.T) {
	f := newFrame(0, "Main", nil, nil, newGlobals())
	f.Inbound[types.TaskID(3)] = make(chan types.Value)
	f.Inbound[types.TaskID(1)] = make(chan types.Value)
	f.Inbound[types.TaskID(2)] = make(chan types.Value)

	ids := f.SortedInboundIDs()
	want := []types.TaskID{1, 2, 3}
	if len(ids) != len(want) {
		t.Fatalf("got %d ids, want %d", len(ids), len(want))
	}
	for i, id := range ids {
		if id != want[i] {
			t.Errorf("ids[%d] = %d, want %d", i, id, want[i])
		}
	}
}

func TestFormattedReplicaName(t *testing.T) {
	if got := formattedReplicaName("Worker", 0); got != "Worker[0]" {
		t.Errorf("got %q, want Worker[0]", got)
	}
	if got := formattedReplicaName("Worker", 12); got != "Worker[12]" {
		t.Errorf("got %q, want Worker[12]", got)
	}
}
