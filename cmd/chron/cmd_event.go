package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chronoline/chronoline/pkg/model"
)

func (a *app) cmdEvent(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: chron event add|list|enable|disable|rm ...")
		return 1
	}
	switch args[0] {
	case "add":
		return a.cmdEventAdd(args[1:])
	case "list":
		return a.cmdEventList(args[1:])
	case "enable":
		return a.cmdEventToggle(args[1:], true)
	case "disable":
		return a.cmdEventToggle(args[1:], false)
	case "rm":
		return a.cmdEventRm(args[1:])
	}
	fmt.Fprintf(os.Stderr, "chron: unknown event subcommand %q\n", args[0])
	return 1
}

func (a *app) cmdEventAdd(args []string) int {
	flags := flag.NewFlagSet("event add", flag.ContinueOnError)
	interval := flags.Bool("interval", false, "event has nonzero duration")
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: chron event add <name> [--interval] [--json]")
		return 1
	}

	dur := model.Instant
	if *interval {
		dur = model.Interval
	}
	e, err := a.store.CreateEvent(flags.Arg(0), dur)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chron: event add: %v\n", err)
		return 1
	}

	if *jsonOut {
		printJSON(e)
	} else {
		fmt.Printf("added %s event %s (%s)\n", e.Duration, e.Name, e.ID)
	}
	return 0
}

func (a *app) cmdEventList(args []string) int {
	flags := flag.NewFlagSet("event list", flag.ContinueOnError)
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	events, err := a.store.ListEvents()
	if err != nil {
		fmt.Fprintf(os.Stderr, "chron: event list: %v\n", err)
		return 1
	}

	if *jsonOut {
		printJSON(events)
		return 0
	}
	for _, e := range events {
		mark := " "
		if !e.Enabled {
			mark = "-"
		}
		fmt.Printf("%s %-8s  %s  %s\n", mark, e.Duration, e.ID, e.Name)
	}
	return 0
}

func (a *app) cmdEventToggle(args []string, enabled bool) int {
	flags := flag.NewFlagSet("event toggle", flag.ContinueOnError)
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: chron event enable|disable <id>")
		return 1
	}

	id := flags.Arg(0)
	if err := a.store.SetEventEnabled(id, enabled); err != nil {
		fmt.Fprintf(os.Stderr, "chron: event: %v\n", err)
		return 1
	}
	if *jsonOut {
		printJSON(map[string]interface{}{"id": id, "enabled": enabled})
	} else {
		state := "disabled"
		if enabled {
			state = "enabled"
		}
		fmt.Printf("%s event %s\n", state, id)
	}
	return 0
}

func (a *app) cmdEventRm(args []string) int {
	flags := flag.NewFlagSet("event rm", flag.ContinueOnError)
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: chron event rm <id>")
		return 1
	}

	id := flags.Arg(0)
	if err := a.store.DeleteEvent(id); err != nil {
		fmt.Fprintf(os.Stderr, "chron: event rm: %v\n", err)
		return 1
	}
	if *jsonOut {
		printJSON(map[string]interface{}{"id": id, "removed": true})
	} else {
		fmt.Printf("removed event %s\n", id)
	}
	return 0
}
