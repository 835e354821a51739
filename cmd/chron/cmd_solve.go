package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chronoline/chronoline/pkg/model"
	"github.com/chronoline/chronoline/pkg/solver"
	"github.com/chronoline/chronoline/pkg/timeline"
)

func (a *app) cmdSolve(args []string) int {
	flags := flag.NewFlagSet("solve", flag.ContinueOnError)
	file := flags.String("f", "", "solve a YAML timeline document instead of the database")
	noLog := flags.Bool("no-log", false, "do not record the run in the solve log")
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	events, assertions, err := a.solveInputs(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chron: solve: %v\n", err)
		return 1
	}

	res := solver.Solve(events, assertions)

	// Document solves are ephemeral; only database solves are logged.
	if *file == "" && !*noLog {
		if _, err := a.store.RecordSolve(res); err != nil {
			fmt.Fprintf(os.Stderr, "chron: solve: record: %v\n", err)
		}
	}

	if *jsonOut {
		printJSON(res)
	} else {
		printResult(res, events)
	}
	return exitCode(res.Status)
}

// solveInputs loads solver input from a document file or from the store.
func (a *app) solveInputs(file string) ([]model.Event, []model.Assertion, error) {
	if file == "" {
		return a.loadInputs()
	}
	doc, err := timeline.Load(file)
	if err != nil {
		return nil, nil, err
	}
	return doc.Inputs()
}

// printResult renders a solve result for humans: a status line, one line
// per placed event in the order of res.Positions (event input order, not
// sorted along the axis), then the discarded assertions and any
// surviving conflict.
func printResult(res model.Result, events []model.Event) {
	fmt.Printf("%s (%.1fms)\n", res.Status, res.ElapsedMS)

	names := make(map[string]string, len(events))
	for _, e := range events {
		names[e.ID] = e.Name
	}
	for _, pos := range res.Positions {
		label := names[pos.EventID]
		if label == "" {
			label = pos.EventID
		}
		if pos.Start == pos.End {
			fmt.Printf("  %8.1f            %s\n", pos.Start, label)
		} else {
			fmt.Printf("  %8.1f - %8.1f  %s\n", pos.Start, pos.End, label)
		}
	}

	for _, v := range res.Violations {
		fmt.Printf("  dropped [%s]: %s\n", v.Severity, v.Message)
	}
	for _, c := range res.Conflicts {
		fmt.Printf("  conflict: %s\n", c.Description)
	}
}
