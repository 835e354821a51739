package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/chronoline/chronoline/pkg/model"
	"github.com/chronoline/chronoline/pkg/store"
)

const defaultDB = "chronoline.db"

// app holds shared state for all CLI subcommands.
type app struct {
	store *store.Store
}

// newApp opens the timeline database.
func newApp() (*app, error) {
	dbPath := envOr("CHRONOLINE_DB", defaultDB)
	s, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open database %q: %w", dbPath, err)
	}
	return &app{store: s}, nil
}

// Close releases the database connection.
func (a *app) Close() { a.store.Close() }

// loadInputs returns the stored events and assertions in creation order —
// the exact sequence the solver treats as input order.
func (a *app) loadInputs() ([]model.Event, []model.Assertion, error) {
	events, err := a.store.ListEvents()
	if err != nil {
		return nil, nil, fmt.Errorf("list events: %w", err)
	}
	assertions, err := a.store.ListAssertions()
	if err != nil {
		return nil, nil, fmt.Errorf("list assertions: %w", err)
	}
	return events, assertions, nil
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "chron: encode: %v\n", err)
	}
}

// exitCode maps a solve status to the CLI exit code.
func exitCode(status model.Status) int {
	switch status {
	case model.Satisfiable:
		return 0
	case model.Relaxed:
		return 3
	case model.Unsatisfiable:
		return 4
	}
	return 1
}
