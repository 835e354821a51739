package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chronoline/chronoline/pkg/timeline"
)

// cmdExport writes the database contents as a YAML timeline document.
func (a *app) cmdExport(args []string) int {
	flags := flag.NewFlagSet("export", flag.ContinueOnError)
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: chron export <file.yaml>")
		return 1
	}

	events, assertions, err := a.loadInputs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "chron: export: %v\n", err)
		return 1
	}

	doc := &timeline.Document{}
	for _, e := range events {
		doc.Events = append(doc.Events, timeline.EventSpec{
			ID:       e.ID,
			Name:     e.Name,
			Duration: string(e.Duration),
			Disabled: !e.Enabled,
		})
	}
	for _, as := range assertions {
		doc.Assertions = append(doc.Assertions, timeline.AssertionSpec{
			ID:         as.ID,
			Source:     as.SourceID,
			Target:     as.TargetID,
			Relation:   string(as.Relation),
			Confidence: string(as.Confidence),
			Disabled:   !as.Enabled,
		})
	}

	path := flags.Arg(0)
	if err := doc.Save(path); err != nil {
		fmt.Fprintf(os.Stderr, "chron: export: %v\n", err)
		return 1
	}

	if *jsonOut {
		printJSON(map[string]interface{}{
			"file": path, "events": len(doc.Events), "assertions": len(doc.Assertions),
		})
	} else {
		fmt.Printf("exported %d events, %d assertions to %s\n", len(doc.Events), len(doc.Assertions), path)
	}
	return 0
}
