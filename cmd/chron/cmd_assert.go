package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chronoline/chronoline/pkg/model"
)

func (a *app) cmdAssert(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: chron assert add|list|enable|disable|rm ...")
		return 1
	}
	switch args[0] {
	case "add":
		return a.cmdAssertAdd(args[1:])
	case "list":
		return a.cmdAssertList(args[1:])
	case "enable":
		return a.cmdAssertToggle(args[1:], true)
	case "disable":
		return a.cmdAssertToggle(args[1:], false)
	case "rm":
		return a.cmdAssertRm(args[1:])
	}
	fmt.Fprintf(os.Stderr, "chron: unknown assert subcommand %q\n", args[0])
	return 1
}

func (a *app) cmdAssertAdd(args []string) int {
	flags := flag.NewFlagSet("assert add", flag.ContinueOnError)
	conf := flags.String("confidence", string(model.Explicit), "explicit|inferred|speculation")
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() < 3 {
		fmt.Fprintln(os.Stderr, "usage: chron assert add <source-id> <relation> <target-id> [--confidence T] [--json]")
		return 1
	}

	rel := model.Relation(flags.Arg(1))
	if !rel.Valid() {
		fmt.Fprintf(os.Stderr, "chron: unknown relation %q (want one of: %s)\n",
			flags.Arg(1), relationNames())
		return 1
	}
	confidence := model.Confidence(*conf)
	if !confidence.Valid() {
		fmt.Fprintf(os.Stderr, "chron: unknown confidence %q (want explicit, inferred or speculation)\n", *conf)
		return 1
	}

	as, err := a.store.CreateAssertion(flags.Arg(0), flags.Arg(2), rel, confidence)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chron: assert add: %v\n", err)
		return 1
	}

	if *jsonOut {
		printJSON(as)
	} else {
		fmt.Printf("asserted %s [%s] (%s)\n", as, as.Confidence, as.ID)
	}
	return 0
}

func (a *app) cmdAssertList(args []string) int {
	flags := flag.NewFlagSet("assert list", flag.ContinueOnError)
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	assertions, err := a.store.ListAssertions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "chron: assert list: %v\n", err)
		return 1
	}

	if *jsonOut {
		printJSON(assertions)
		return 0
	}
	for _, as := range assertions {
		mark := " "
		if !as.Enabled {
			mark = "-"
		}
		fmt.Printf("%s %-11s  %s  %s\n", mark, as.Confidence, as.ID, as)
	}
	return 0
}

func (a *app) cmdAssertToggle(args []string, enabled bool) int {
	flags := flag.NewFlagSet("assert toggle", flag.ContinueOnError)
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: chron assert enable|disable <id>")
		return 1
	}

	id := flags.Arg(0)
	if err := a.store.SetAssertionEnabled(id, enabled); err != nil {
		fmt.Fprintf(os.Stderr, "chron: assert: %v\n", err)
		return 1
	}
	if *jsonOut {
		printJSON(map[string]interface{}{"id": id, "enabled": enabled})
	} else {
		state := "disabled"
		if enabled {
			state = "enabled"
		}
		fmt.Printf("%s assertion %s\n", state, id)
	}
	return 0
}

func (a *app) cmdAssertRm(args []string) int {
	flags := flag.NewFlagSet("assert rm", flag.ContinueOnError)
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: chron assert rm <id>")
		return 1
	}

	id := flags.Arg(0)
	if err := a.store.DeleteAssertion(id); err != nil {
		fmt.Fprintf(os.Stderr, "chron: assert rm: %v\n", err)
		return 1
	}
	if *jsonOut {
		printJSON(map[string]interface{}{"id": id, "removed": true})
	} else {
		fmt.Printf("removed assertion %s\n", id)
	}
	return 0
}

func relationNames() string {
	names := make([]string, len(model.Relations))
	for i, r := range model.Relations {
		names[i] = string(r)
	}
	return strings.Join(names, " ")
}
