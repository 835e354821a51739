package timeline

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/chronoline/chronoline/pkg/model"
)

const sampleDoc = `
title: succession crisis
events:
  - id: coronation
    name: Coronation
    duration: instant
  - id: war
    name: War of Succession
    duration: interval
  - id: treaty
    name: Peace Treaty
    duration: instant
    disabled: true
assertions:
  - source: coronation
    target: war
    relation: before
  - id: guess-1
    source: treaty
    target: war
    relation: after
    confidence: speculation
`

func TestParseAndInputs(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Title != "succession crisis" {
		t.Fatalf("title: got %q", doc.Title)
	}

	events, assertions, err := doc.Inputs()
	if err != nil {
		t.Fatalf("Inputs: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("events: got %d, want 3", len(events))
	}
	if events[1].Duration != model.Interval {
		t.Fatalf("war duration: got %s, want interval", events[1].Duration)
	}
	if events[2].Enabled {
		t.Fatal("disabled event should carry Enabled=false")
	}

	if len(assertions) != 2 {
		t.Fatalf("assertions: got %d, want 2", len(assertions))
	}
	// Missing ID is derived from the triple; missing confidence is explicit.
	if got := assertions[0].ID; got != "coronation-before-war" {
		t.Fatalf("derived id: got %q", got)
	}
	if assertions[0].Confidence != model.Explicit {
		t.Fatalf("default confidence: got %s, want explicit", assertions[0].Confidence)
	}
	if assertions[1].ID != "guess-1" || assertions[1].Confidence != model.Speculation {
		t.Fatalf("explicit fields lost: %+v", assertions[1])
	}
}

func TestInputsDefaultDurationIsInstant(t *testing.T) {
	doc := &Document{Events: []EventSpec{{ID: "e"}}}
	events, _, err := doc.Inputs()
	if err != nil {
		t.Fatalf("Inputs: %v", err)
	}
	if events[0].Duration != model.Instant {
		t.Fatalf("default duration: got %s, want instant", events[0].Duration)
	}
}

func TestInputsValidation(t *testing.T) {
	cases := []struct {
		name string
		doc  Document
		want string
	}{
		{
			name: "missing event id",
			doc:  Document{Events: []EventSpec{{Name: "x"}}},
			want: "missing id",
		},
		{
			name: "duplicate event id",
			doc:  Document{Events: []EventSpec{{ID: "e"}, {ID: "e"}}},
			want: "duplicate id",
		},
		{
			name: "bad duration",
			doc:  Document{Events: []EventSpec{{ID: "e", Duration: "eon"}}},
			want: "unknown duration",
		},
		{
			name: "unknown source",
			doc: Document{
				Events:     []EventSpec{{ID: "e"}},
				Assertions: []AssertionSpec{{Source: "ghost", Target: "e", Relation: "before"}},
			},
			want: "unknown source",
		},
		{
			name: "unknown relation",
			doc: Document{
				Events:     []EventSpec{{ID: "e"}, {ID: "f"}},
				Assertions: []AssertionSpec{{Source: "e", Target: "f", Relation: "near"}},
			},
			want: "unknown relation",
		},
		{
			name: "unknown confidence",
			doc: Document{
				Events:     []EventSpec{{ID: "e"}, {ID: "f"}},
				Assertions: []AssertionSpec{{Source: "e", Target: "f", Relation: "before", Confidence: "hunch"}},
			},
			want: "unknown confidence",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := tc.doc.Inputs()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	path := filepath.Join(t.TempDir(), "timeline.yaml")
	if err := doc.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Title != doc.Title {
		t.Fatalf("round trip title: got %q, want %q", loaded.Title, doc.Title)
	}
	if len(loaded.Events) != len(doc.Events) || len(loaded.Assertions) != len(doc.Assertions) {
		t.Fatalf("round trip lost entries: %d/%d events, %d/%d assertions",
			len(loaded.Events), len(doc.Events), len(loaded.Assertions), len(doc.Assertions))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse([]byte("events: {not: [a, list")); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}
