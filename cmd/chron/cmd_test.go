package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/chronoline/chronoline/pkg/model"
)

// --- envOr tests ---

func TestEnvOr_EnvSet(t *testing.T) {
	t.Setenv("TEST_CHRON_ENV", "hello")
	if got := envOr("TEST_CHRON_ENV", "default"); got != "hello" {
		t.Fatalf("envOr with set env: got %q, want %q", got, "hello")
	}
}

func TestEnvOr_EnvUnset(t *testing.T) {
	if got := envOr("TEST_CHRON_UNSET_KEY_XYZ", "fallback"); got != "fallback" {
		t.Fatalf("envOr with unset env: got %q, want %q", got, "fallback")
	}
}

func TestEnvOr_EmptyEnv(t *testing.T) {
	t.Setenv("TEST_CHRON_EMPTY", "")
	if got := envOr("TEST_CHRON_EMPTY", "default"); got != "default" {
		t.Fatalf("envOr with empty env: got %q, want %q", got, "default")
	}
}

// --- exitCode tests ---

func TestExitCode(t *testing.T) {
	cases := []struct {
		status model.Status
		want   int
	}{
		{model.Satisfiable, 0},
		{model.Relaxed, 3},
		{model.Unsatisfiable, 4},
		{model.Status("bogus"), 1},
	}
	for _, tc := range cases {
		if got := exitCode(tc.status); got != tc.want {
			t.Fatalf("exitCode(%s): got %d, want %d", tc.status, got, tc.want)
		}
	}
}

// --- relationNames tests ---

func TestRelationNamesListsAll(t *testing.T) {
	names := relationNames()
	for _, r := range model.Relations {
		if !strings.Contains(names, string(r)) {
			t.Fatalf("relationNames missing %q: %s", r, names)
		}
	}
}

// --- printResult tests ---

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	fn()
	w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestPrintResultShowsViolationsAndConflicts(t *testing.T) {
	events := []model.Event{
		{ID: "a", Name: "Battle", Duration: model.Instant, Enabled: true},
	}
	res := model.Result{
		Status: model.Relaxed,
		Positions: []model.Coordinate{
			{EventID: "a", Start: 500, End: 500},
		},
		Violations: []model.Violation{
			{AssertionID: "r1", Severity: model.Soft, Message: "relaxed speculation assertion: a before b"},
		},
		Conflicts: []model.Conflict{
			{AssertionIDs: []string{"r2"}, Description: "unrepairable conflict: x equals y"},
		},
	}
	out := captureStdout(t, func() { printResult(res, events) })

	for _, want := range []string{"relaxed", "Battle", "dropped [soft]", "unrepairable conflict"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintResultUsesIDWhenUnnamed(t *testing.T) {
	events := []model.Event{
		{ID: "evt-7", Duration: model.Instant, Enabled: true},
	}
	res := model.Result{
		Status:    model.Satisfiable,
		Positions: []model.Coordinate{{EventID: "evt-7", Start: 500, End: 500}},
	}
	out := captureStdout(t, func() { printResult(res, events) })
	if !strings.Contains(out, "evt-7") {
		t.Fatalf("output should fall back to the event id:\n%s", out)
	}
}
