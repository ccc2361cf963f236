// Command concrun runs a single conc source file to completion.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"loomlang/eval"
	"loomlang/parser"
	"loomlang/runtime"
	"loomlang/trace"
	"loomlang/types"
)

func main() {
	traceEnabled := flag.Bool("trace", false, "Enable execution tracing")
	traceFilter := flag.String("trace-filter", "", "Trace filter pattern(s) (comma-separated globs, e.g. 'Worker*,Main')")
	flag.Parse()

	if *traceEnabled {
		var filters []string
		if *traceFilter != "" {
			filters = strings.Split(*traceFilter, ",")
			for i := range filters {
				filters[i] = strings.TrimSpace(filters[i])
			}
		}
		trace.Init(true, filters, os.Stderr)
	} else {
		trace.Init(false, nil, nil)
	}

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: concrun <path>")
		os.Exit(1)
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		log.Fatalf("could not read %s: %v", args[0], err)
	}

	rt, exitCode, err := buildRuntime(string(source))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode)
	}

	rt.Start(eval.New().Worker)
	results := rt.Join()
	os.Exit(reportResults(results))
}

// buildRuntime tokenizes, parses, and registers every task definition in
// source into a fresh Runtime with its channel topology wired.
func buildRuntime(source string) (*runtime.Runtime, int, error) {
	p := parser.NewParser(source)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		var b strings.Builder
		for _, e := range errs {
			fmt.Fprintf(&b, "%s\n", e.Error())
		}
		return nil, 1, fmt.Errorf("%s", b.String())
	}

	rt := runtime.New()
	for _, task := range program.Tasks {
		replicas, err := evalReplicaCount(task)
		if err != nil {
			return nil, 1, err
		}
		if err := rt.RegisterTask(task.Name, task.Body, replicas); err != nil {
			return nil, 1, err
		}
	}
	rt.WireChannels()
	return rt, 0, nil
}

// evalReplicaCount reads a task header's optional `[count]` ahead of
// channel wiring. The count must be an integer literal; any other
// expression is rejected with an error.
func evalReplicaCount(task *parser.TaskDef) (*int64, error) {
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

// reportResults prints the orchestrator's per-task completion report and
// returns the process exit status: 0 if every task succeeded, else 1.
func reportResults(results map[string]types.Result) int {
	exitCode := 0
	for name, result := range results {
		if result.IsError() {
			fmt.Printf("Task %s encountered an error: %s\n", name, result.Error.Error())
			exitCode = 1
			continue
		}
		fmt.Printf("Task %s terminated with tail value %s\n", name, result.Val.String())
	}
	return exitCode
}
