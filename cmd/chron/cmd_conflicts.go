package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chronoline/chronoline/pkg/compile"
	"github.com/chronoline/chronoline/pkg/relax"
)

// cmdConflicts surveys every conflict in the stated network without
// repairing anything: useful for understanding a tangled timeline before
// deciding which assertions to weaken or drop.
func (a *app) cmdConflicts(args []string) int {
	flags := flag.NewFlagSet("conflicts", flag.ContinueOnError)
	file := flags.String("f", "", "survey a YAML timeline document instead of the database")
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	events, assertions, err := a.solveInputs(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chron: conflicts: %v\n", err)
		return 1
	}

	enabled := events[:0:0]
	for _, e := range events {
		if e.Enabled {
			enabled = append(enabled, e)
		}
	}
	enabledAsserts := assertions[:0:0]
	for _, as := range assertions {
		if as.Enabled {
			enabledAsserts = append(enabledAsserts, as)
		}
	}

	conflicts := relax.FindAllConflicts(enabled, enabledAsserts, compile.DefaultParams())

	if *jsonOut {
		printJSON(conflicts)
		return 0
	}
	if len(conflicts) == 0 {
		fmt.Println("no conflicts")
		return 0
	}
	for i, c := range conflicts {
		fmt.Printf("%d. %s\n", i+1, c.Description)
		for _, id := range c.AssertionIDs {
			fmt.Printf("   %s\n", id)
		}
	}
	return 0
}
