// Command chron is the chronoline CLI — qualitative timeline layout via
// Allen's interval algebra and Simple Temporal Networks.
package main

import (
	"fmt"
	"os"
)

const version = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "--help", "-h", "help":
		printUsage()
		return
	case "--version", "-v", "version":
		fmt.Println("chron", version)
		return
	}

	a, err := newApp()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	switch os.Args[1] {
	// Setup
	case "init":
		os.Exit(a.cmdInit(os.Args[2:]))

	// Editing
	case "event":
		os.Exit(a.cmdEvent(os.Args[2:]))
	case "assert":
		os.Exit(a.cmdAssert(os.Args[2:]))
	case "import":
		os.Exit(a.cmdImport(os.Args[2:]))
	case "export":
		os.Exit(a.cmdExport(os.Args[2:]))

	// Solving
	case "solve":
		os.Exit(a.cmdSolve(os.Args[2:]))
	case "conflicts":
		os.Exit(a.cmdConflicts(os.Args[2:]))
	case "status":
		os.Exit(a.cmdStatus(os.Args[2:]))

	// Serving
	case "serve":
		os.Exit(a.cmdServe(os.Args[2:]))

	default:
		fmt.Fprintf(os.Stderr, "chron: unknown command %q\n", os.Args[1])
		fmt.Fprintln(os.Stderr, "Run 'chron --help' for usage.")
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`chron — qualitative timeline layout

Events and Allen-relation assertions go in; a linear placement comes out.
Contradictory assertions are relaxed lowest-confidence-first and reported.

Usage:
  chron <command> [flags]

Setup:
  init                            Create the timeline database

Editing:
  event add <name> [--interval]   Add an event (default: instant)
  event list                      List events
  event enable|disable <id>       Toggle an event
  event rm <id>                   Remove an event and its assertions
  assert add <src> <rel> <dst>    Add an assertion between two events
  assert list                     List assertions
  assert enable|disable <id>      Toggle an assertion
  assert rm <id>                  Remove an assertion
  import <file.yaml>              Load events/assertions from a document
  export <file.yaml>              Write the database as a document

Solving:
  solve [-f file.yaml]            Solve the timeline and print positions
  conflicts [-f file.yaml]        Survey all conflicts without repairing
  status                          Show event/assertion counts, last solve

Serving:
  serve [--addr HOST:PORT]        WebSocket solver worker for a UI host

Relations:
  before after meets met-by overlaps overlapped-by starts started-by
  finishes finished-by during contains equals

Environment:
  CHRONOLINE_DB   SQLite database path (default: chronoline.db)

All commands except serve support --json for machine-readable output.

Exit codes:
  0  success (solve: satisfiable)
  1  error
  3  solve ended relaxed (some assertions discarded)
  4  solve ended unsatisfiable
`)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "chron: "+format+"\n", args...)
	os.Exit(1)
}
