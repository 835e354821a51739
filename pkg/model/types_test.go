package model

import "testing"

func TestEndpointVariables(t *testing.T) {
	e := Event{ID: "battle", Duration: Interval, Enabled: true}
	if got := e.StartVar(); got != "battle_start" {
		t.Fatalf("StartVar: got %q, want battle_start", got)
	}
	if got := e.EndVar(); got != "battle_end" {
		t.Fatalf("EndVar: got %q, want battle_end", got)
	}
}

func TestRelationValid(t *testing.T) {
	for _, r := range Relations {
		if !r.Valid() {
			t.Fatalf("relation %q should be valid", r)
		}
	}
	if Relation("sideways").Valid() {
		t.Fatal("unknown relation should not be valid")
	}
}

func TestInverseIsInvolution(t *testing.T) {
	for _, r := range Relations {
		if got := r.Inverse().Inverse(); got != r {
			t.Fatalf("double inverse of %q: got %q, want %q", r, got, r)
		}
	}
}

func TestInversePairs(t *testing.T) {
	pairs := map[Relation]Relation{
		Before:   After,
		Meets:    MetBy,
		Overlaps: OverlappedBy,
		Starts:   StartedBy,
		Finishes: FinishedBy,
		During:   Contains,
		Equals:   Equals,
	}
	for r, inv := range pairs {
		if got := r.Inverse(); got != inv {
			t.Fatalf("inverse of %q: got %q, want %q", r, got, inv)
		}
	}
}

func TestInverseUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Inverse of unknown relation should panic")
		}
	}()
	Relation("sideways").Inverse()
}

func TestConfidenceWeightOrder(t *testing.T) {
	if !(Explicit.Weight() > Inferred.Weight() && Inferred.Weight() > Speculation.Weight()) {
		t.Fatalf("weights not strictly decreasing: %d %d %d",
			Explicit.Weight(), Inferred.Weight(), Speculation.Weight())
	}
	if Confidence("hunch").Weight() >= Speculation.Weight() {
		t.Fatal("unknown confidence should rank below speculation")
	}
}

func TestAssertionString(t *testing.T) {
	a := Assertion{SourceID: "a", TargetID: "b", Relation: Before}
	if got := a.String(); got != "a before b" {
		t.Fatalf("String: got %q, want %q", got, "a before b")
	}
}
