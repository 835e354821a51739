// Package timeline reads and writes timeline documents: a YAML file
// holding the events and assertions of one timeline, so a whole problem
// can be edited as text and solved in one shot without touching the
// database.
package timeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chronoline/chronoline/pkg/model"
)

// EventSpec is one event entry in a document.
type EventSpec struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name,omitempty"`
	Duration string `yaml:"duration"` // instant | interval
	Disabled bool   `yaml:"disabled,omitempty"`
}

// AssertionSpec is one assertion entry in a document. ID and Confidence
// are optional: a missing ID is derived from the triple, and a missing
// confidence defaults to explicit.
type AssertionSpec struct {
	ID         string `yaml:"id,omitempty"`
	Source     string `yaml:"source"`
	Target     string `yaml:"target"`
	Relation   string `yaml:"relation"`
	Confidence string `yaml:"confidence,omitempty"`
	Disabled   bool   `yaml:"disabled,omitempty"`
}

// Document is a complete timeline file.
type Document struct {
	Title      string          `yaml:"title,omitempty"`
	Events     []EventSpec     `yaml:"events"`
	Assertions []AssertionSpec `yaml:"assertions,omitempty"`
}

// Load reads and parses a document from path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read timeline: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML document.
func Parse(data []byte) (*Document, error) {
	var d Document
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse timeline: %w", err)
	}
	return &d, nil
}

// Save writes the document to path as YAML.
func (d *Document) Save(path string) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode timeline: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write timeline: %w", err)
	}
	return nil
}

// Inputs validates the document and converts it to solver input. All
// events are returned, including disabled ones; the solver filters on the
// Enabled bit itself.
func (d *Document) Inputs() ([]model.Event, []model.Assertion, error) {
	events := make([]model.Event, 0, len(d.Events))
	byID := make(map[string]bool, len(d.Events))
	for i, es := range d.Events {
		if es.ID == "" {
			return nil, nil, fmt.Errorf("event %d: missing id", i)
		}
		if byID[es.ID] {
			return nil, nil, fmt.Errorf("event %q: duplicate id", es.ID)
		}
		byID[es.ID] = true

		var dur model.DurationType
		switch es.Duration {
		case "instant", "":
			dur = model.Instant
		case "interval":
			dur = model.Interval
		default:
			return nil, nil, fmt.Errorf("event %q: unknown duration %q", es.ID, es.Duration)
		}
		events = append(events, model.Event{
			ID:       es.ID,
			Name:     es.Name,
			Duration: dur,
			Enabled:  !es.Disabled,
		})
	}

	assertions := make([]model.Assertion, 0, len(d.Assertions))
	seen := make(map[string]bool, len(d.Assertions))
	for i, as := range d.Assertions {
		if as.Source == "" || as.Target == "" {
			return nil, nil, fmt.Errorf("assertion %d: missing source or target", i)
		}
		if !byID[as.Source] {
			return nil, nil, fmt.Errorf("assertion %d: unknown source event %q", i, as.Source)
		}
		if !byID[as.Target] {
			return nil, nil, fmt.Errorf("assertion %d: unknown target event %q", i, as.Target)
		}
		rel := model.Relation(as.Relation)
		if !rel.Valid() {
			return nil, nil, fmt.Errorf("assertion %d: unknown relation %q", i, as.Relation)
		}
		conf := model.Confidence(as.Confidence)
		if as.Confidence == "" {
			conf = model.Explicit
		} else if !conf.Valid() {
			return nil, nil, fmt.Errorf("assertion %d: unknown confidence %q", i, as.Confidence)
		}

		id := as.ID
		if id == "" {
			id = as.Source + "-" + as.Relation + "-" + as.Target
		}
		if seen[id] {
			return nil, nil, fmt.Errorf("assertion %q: duplicate id", id)
		}
		seen[id] = true

		assertions = append(assertions, model.Assertion{
			ID:         id,
			SourceID:   as.Source,
			TargetID:   as.Target,
			Relation:   rel,
			Confidence: conf,
			Enabled:    !as.Disabled,
		})
	}
	return events, assertions, nil
}
