// Package solver is the front door of the chronoline constraint pipeline.
//
// Solve is a one-shot pure transformation: events and assertions in, a
// Result out. It owns the whole pipeline — compile, propagate, relax,
// place — and every intermediate structure lives and dies within one
// invocation. The solver keeps no state, takes no locks, performs no I/O
// and never logs; failure is expressed exclusively through the result's
// status, violations and conflicts fields.
package solver

import (
	"fmt"
	"time"

	"github.com/chronoline/chronoline/pkg/compile"
	"github.com/chronoline/chronoline/pkg/model"
	"github.com/chronoline/chronoline/pkg/place"
	"github.com/chronoline/chronoline/pkg/relax"
)

// Config bundles the tuning constants of the pipeline. These are fixed per
// solver, not per request.
type Config struct {
	Params  compile.Params
	Display place.Config
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{Params: compile.DefaultParams(), Display: place.DefaultConfig()}
}

// Validate checks the cross-constant ordering the encodings rely on.
func (c Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if c.Display.Scale <= 2*c.Display.Pad {
		return fmt.Errorf("display scale %g leaves no room inside padding %g", c.Display.Scale, c.Display.Pad)
	}
	return nil
}

// Solve runs the full pipeline with the default configuration.
func Solve(events []model.Event, assertions []model.Assertion) model.Result {
	return SolveWith(events, assertions, DefaultConfig())
}

// SolveWith runs the full pipeline with explicit tuning.
//
// Disabled events and assertions are dropped first, along with assertions
// referring to events that are absent after the filter. Empty inputs are
// not errors: no events yields an empty satisfiable result, and no
// assertions yields the even-spacing fallback layout.
func SolveWith(events []model.Event, assertions []model.Assertion, cfg Config) model.Result {
	started := time.Now()

	evs := enabledEvents(events)
	asserts := enabledAssertions(assertions, evs)

	res := model.Result{Status: model.Satisfiable}
	switch {
	case len(evs) == 0:
		// Nothing to place.
	case len(asserts) == 0:
		res.Positions = place.Fallback(evs, cfg.Display)
	default:
		res = pipeline(evs, asserts, cfg)
	}

	res.ElapsedMS = float64(time.Since(started)) / float64(time.Millisecond)
	return res
}

// pipeline handles the nontrivial path: relax until feasible, then place.
func pipeline(events []model.Event, assertions []model.Assertion, cfg Config) model.Result {
	out := relax.Relax(events, assertions, cfg.Params)

	if !out.Prop.Feasible {
		// No removable assertion was left on the final witness (the
		// conflict is intrinsic to the events), or the relaxer hit its
		// iteration cap. Report the surviving cycle and fall back to
		// even spacing.
		return model.Result{
			Status:     model.Unsatisfiable,
			Positions:  place.Fallback(events, cfg.Display),
			Violations: violations(out.Discarded),
			Conflicts: []model.Conflict{{
				AssertionIDs: out.Prop.Origins,
				Description:  cycleDescription(out, assertions),
			}},
		}
	}

	status := model.Satisfiable
	if len(out.Discarded) > 0 {
		status = model.Relaxed
	}
	return model.Result{
		Status:     status,
		Positions:  place.Place(events, out.Prop.Dist, cfg.Display),
		Violations: violations(out.Discarded),
	}
}

// violations renders the discarded assertions, in removal order, as
// user-facing violation records.
func violations(discarded []model.Assertion) []model.Violation {
	var vs []model.Violation
	for _, a := range discarded {
		sev := model.Hard
		if a.Confidence == model.Speculation {
			sev = model.Soft
		}
		vs = append(vs, model.Violation{
			AssertionID: a.ID,
			Severity:    sev,
			Message:     fmt.Sprintf("relaxed %s assertion: %s", a.Confidence, a),
		})
	}
	return vs
}

// cycleDescription names the unrepaired conflict for the result record.
func cycleDescription(out relax.Outcome, assertions []model.Assertion) string {
	if len(out.Prop.Origins) == 0 {
		return "event-internal constraints form an unsatisfiable cycle"
	}
	byID := make(map[string]model.Assertion, len(assertions))
	for _, a := range assertions {
		byID[a.ID] = a
	}
	desc := "unrepairable conflict:"
	for _, id := range out.Prop.Origins {
		if a, ok := byID[id]; ok {
			desc += " " + a.String() + ";"
		} else {
			desc += " " + id + ";"
		}
	}
	return desc[:len(desc)-1]
}

// enabledEvents filters to the events the solver actually places.
func enabledEvents(events []model.Event) []model.Event {
	var evs []model.Event
	for _, e := range events {
		if e.Enabled {
			evs = append(evs, e)
		}
	}
	return evs
}

// enabledAssertions filters to enabled assertions whose endpoints survive
// the event filter. An assertion against a disabled or unknown event
// cannot contribute edges.
func enabledAssertions(assertions []model.Assertion, events []model.Event) []model.Assertion {
	present := make(map[string]bool, len(events))
	for _, e := range events {
		present[e.ID] = true
	}
	var as []model.Assertion
	for _, a := range assertions {
		if a.Enabled && present[a.SourceID] && present[a.TargetID] {
			as = append(as, a)
		}
	}
	return as
}
