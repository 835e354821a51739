package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chronoline/chronoline/pkg/timeline"
)

// cmdImport loads a YAML timeline document into the database. Events keep
// their document IDs so assertions keep pointing at the right endpoints;
// importing the same document twice therefore fails on the duplicate keys
// rather than silently doubling the timeline.
func (a *app) cmdImport(args []string) int {
	flags := flag.NewFlagSet("import", flag.ContinueOnError)
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: chron import <file.yaml>")
		return 1
	}

	doc, err := timeline.Load(flags.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "chron: import: %v\n", err)
		return 1
	}
	events, assertions, err := doc.Inputs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "chron: import: %v\n", err)
		return 1
	}

	for _, e := range events {
		if err := a.store.ImportEvent(e); err != nil {
			fmt.Fprintf(os.Stderr, "chron: import event %q: %v\n", e.ID, err)
			return 1
		}
	}
	for _, as := range assertions {
		if err := a.store.ImportAssertion(as); err != nil {
			fmt.Fprintf(os.Stderr, "chron: import assertion %q: %v\n", as.ID, err)
			return 1
		}
	}

	if *jsonOut {
		printJSON(map[string]interface{}{
			"events": len(events), "assertions": len(assertions),
		})
	} else {
		fmt.Printf("imported %d events, %d assertions\n", len(events), len(assertions))
	}
	return 0
}
