package conformance

import (
	"bytes"
	"fmt"
	stdruntime "runtime"
	"strings"

	"loomlang/eval"
	"loomlang/parser"
	"loomlang/runtime"
	"loomlang/types"
)

// RunResult is the observed outcome of running a Fixture's source.
type RunResult struct {
	Stdout  string
	Results map[string]types.Result
}

// Run parses and executes source to completion. Any Exit statement
// terminates only the calling goroutine (via runtime.Goexit), not this
// test process, so a fixture exercising §4.4's Exit node can still be
// asserted against afterward.
func Run(source string) (*RunResult, error) {
	p := parser.NewParser(source)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("%d parse error(s), first: %s", len(errs), errs[0].Error())
	}

	rt := runtime.New()
	for _, task := range program.Tasks {
		replicas, err := replicaCount(task)
		if err != nil {
			return nil, err
		}
		if err := rt.RegisterTask(task.Name, task.Body, replicas); err != nil {
			return nil, err
		}
	}
	rt.WireChannels()

	var out bytes.Buffer
	evaluator := eval.NewWithOutput(&out)
	evaluator.Exit = stdruntime.Goexit

	rt.Start(evaluator.Worker)
	results := rt.Join()

	return &RunResult{Stdout: out.String(), Results: results}, nil
}

func replicaCount(task *parser.TaskDef) (*int64, error) {
	if task.Count == nil {
		return nil, nil
	}
	lit, ok := task.Count.(*parser.IntegerLiteral)
	if !ok {
		return nil, fmt.Errorf("task %q: replica count must be an integer literal", task.Name)
	}
	n := lit.Val
	return &n, nil
}

// Check compares a RunResult against a Fixture's expectations and returns
// a list of human-readable mismatches (empty when everything matches).
func Check(f Fixture, got *RunResult) []string {
	var problems []string

	if f.Stdout != nil {
		wantLines := strings.Join(f.Stdout, "\n")
		gotLines := strings.TrimRight(got.Stdout, "\n")
		if wantLines != gotLines {
			problems = append(problems, fmt.Sprintf("stdout mismatch:\n  want: %q\n  got:  %q", wantLines, gotLines))
		}
	}

	for name, want := range f.Results {
		result, ok := got.Results[name]
		if !ok {
			problems = append(problems, fmt.Sprintf("task %q: no result reported", name))
			continue
		}
		switch {
		case want.Exit:
			if !result.IsExit() {
				problems = append(problems, fmt.Sprintf("task %q: expected Exit, got %+v", name, result))
			}
		case want.Error != "":
			if !result.IsError() {
				problems = append(problems, fmt.Sprintf("task %q: expected error %q, got %+v", name, want.Error, result))
			} else if result.Error.Kind.String() != want.Error {
				problems = append(problems, fmt.Sprintf("task %q: expected error %q, got %q", name, want.Error, result.Error.Kind.String()))
			}
		default:
			if !result.IsNormal() {
				problems = append(problems, fmt.Sprintf("task %q: expected value %q, got %+v", name, want.Value, result))
			} else if result.Val.String() != want.Value {
				problems = append(problems, fmt.Sprintf("task %q: expected value %q, got %q", name, want.Value, result.Val.String()))
			}
		}
	}

	return problems
}
