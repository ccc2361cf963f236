package types

// TaskRefValue is a first-class reference to a task frame: the value a
// task's declared name resolves to (or an element of the array a
// replicated task's name resolves to), and what Send/Receive target.
type TaskRefValue struct {
	ID      TaskID
	Display string // the task's formatted_name, e.g. "Worker" or "Worker[2]"
}

// NewTaskRef creates a new task reference value.
func NewTaskRef(id TaskID, display string) TaskRefValue {
	return TaskRefValue{ID: id, Display: display}
}

func (t TaskRefValue) Kind() Kind { return KindTaskRef }

func (t TaskRefValue) String() string {
	return "<task " + t.Display + ">"
}

func (t TaskRefValue) Truthy() bool {
	return true
}

func (t TaskRefValue) Equal(other Value) bool {
	o, ok := other.(TaskRefValue)
	return ok && t.ID == o.ID
}
