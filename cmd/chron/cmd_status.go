package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chronoline/chronoline/pkg/model"
)

func (a *app) cmdStatus(args []string) int {
	flags := flag.NewFlagSet("status", flag.ContinueOnError)
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	events, assertions, err := a.loadInputs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "chron: status: %v\n", err)
		return 1
	}

	enabledEvents := 0
	for _, e := range events {
		if e.Enabled {
			enabledEvents++
		}
	}
	enabledAsserts := 0
	byConfidence := map[model.Confidence]int{}
	for _, as := range assertions {
		if as.Enabled {
			enabledAsserts++
			byConfidence[as.Confidence]++
		}
	}

	runs, err := a.store.ListSolves(1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chron: status: %v\n", err)
		return 1
	}

	if *jsonOut {
		out := map[string]interface{}{
			"events":             len(events),
			"events_enabled":     enabledEvents,
			"assertions":         len(assertions),
			"assertions_enabled": enabledAsserts,
			"solves":             a.store.CountSolves(),
		}
		if len(runs) > 0 {
			out["last_solve"] = runs[0]
		}
		printJSON(out)
		return 0
	}

	fmt.Printf("events:     %d (%d enabled)\n", len(events), enabledEvents)
	fmt.Printf("assertions: %d (%d enabled: %d explicit, %d inferred, %d speculation)\n",
		len(assertions), enabledAsserts,
		byConfidence[model.Explicit], byConfidence[model.Inferred], byConfidence[model.Speculation])
	fmt.Printf("solves:     %d logged\n", a.store.CountSolves())
	if len(runs) > 0 {
		r := runs[0]
		fmt.Printf("last solve: %s (%.1fms, %d positions, %d violations) at %s\n",
			r.Status, r.ElapsedMS, len(r.Result.Positions), len(r.Result.Violations),
			r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return 0
}
