package main

import (
	"flag"
	"fmt"
)

// cmdInit is effectively a no-op beyond opening the database (newApp
// already created it and ran migrations); it exists so scripts have an
// explicit setup step that reports where the database lives.
func (a *app) cmdInit(args []string) int {
	flags := flag.NewFlagSet("init", flag.ContinueOnError)
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	dbPath := envOr("CHRONOLINE_DB", defaultDB)
	if *jsonOut {
		printJSON(map[string]interface{}{"initialized": true, "db": dbPath})
	} else {
		fmt.Printf("initialized timeline database at %s\n", dbPath)
	}
	return 0
}
