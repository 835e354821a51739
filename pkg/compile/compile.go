// Package compile translates qualitative temporal statements into
// difference constraints.
//
// Every Allen relation between events A and B decomposes into inequalities
// over the four endpoint variables A_start, A_end, B_start, B_end. Each
// inequality is a difference constraint
//
//	value(To) - value(From) <= Bound
//
// which is exactly an edge From -> To with weight Bound in a Simple
// Temporal Network. Strict inequalities x < y are encoded as
// x - y <= -epsilon; equalities as two opposite constraints with bound 0.
//
// Events carry internal constraints independent of any assertion: an
// instant's endpoints coincide, and an interval's duration is at least
// MinDuration so it stays visible after placement.
package compile

import (
	"fmt"

	"github.com/chronoline/chronoline/pkg/model"
)

// Default tuning values. Epsilon must stay well above float64 rounding
// noise and well below MinDuration; see Params.Validate.
const (
	// DefaultEpsilon is the slack used to encode strict inequalities.
	DefaultEpsilon = 0.0009765625 // 2^-10

	// DefaultMinDuration is the minimum end-start span of an interval,
	// in constraint units.
	DefaultMinDuration = 1.0
)

// Params holds the compile-time tuning constants.
type Params struct {
	// Epsilon encodes x < y as x - y <= -Epsilon.
	Epsilon float64
	// MinDuration bounds every interval's duration from below.
	MinDuration float64
}

// DefaultParams returns the standard tuning values.
func DefaultParams() Params {
	return Params{Epsilon: DefaultEpsilon, MinDuration: DefaultMinDuration}
}

// Validate checks the ordering 0 < Epsilon < MinDuration that the strict
// and duration encodings rely on.
func (p Params) Validate() error {
	if p.Epsilon <= 0 {
		return fmt.Errorf("epsilon must be positive, got %g", p.Epsilon)
	}
	if p.Epsilon >= p.MinDuration {
		return fmt.Errorf("epsilon %g must be below min duration %g", p.Epsilon, p.MinDuration)
	}
	return nil
}

// Constraint is one difference constraint: value(To) - value(From) <= Bound.
// It maps one-to-one onto a weighted graph edge From -> To.
type Constraint struct {
	From  string
	To    string
	Bound float64
}

// lessEq emits x - y <= bound.
func lessEq(x, y string, bound float64) Constraint {
	return Constraint{From: y, To: x, Bound: bound}
}

// strict emits x < y, i.e. x - y <= -epsilon.
func strict(x, y string, eps float64) Constraint {
	return lessEq(x, y, -eps)
}

// equal emits x = y as two opposite zero-bound constraints.
func equal(x, y string) []Constraint {
	return []Constraint{lessEq(x, y, 0), lessEq(y, x, 0)}
}

// CompileAssertion expands a single assertion into its difference
// constraints over the endpoint variables of its source and target events.
// Panics on an unrecognized relation: the relation vocabulary is closed and
// an unknown value is a programmer error, per the abort policy.
func CompileAssertion(a model.Assertion, p Params) []Constraint {
	as := a.SourceID + "_start"
	ae := a.SourceID + "_end"
	bs := a.TargetID + "_start"
	be := a.TargetID + "_end"
	eps := p.Epsilon

	switch a.Relation {
	case model.Before:
		return []Constraint{strict(ae, bs, eps)}
	case model.After:
		return []Constraint{strict(be, as, eps)}
	case model.Meets:
		return equal(ae, bs)
	case model.MetBy:
		return equal(as, be)
	case model.Overlaps:
		return []Constraint{strict(as, bs, eps), strict(bs, ae, eps), strict(ae, be, eps)}
	case model.OverlappedBy:
		return []Constraint{strict(bs, as, eps), strict(as, be, eps), strict(be, ae, eps)}
	case model.Starts:
		return append(equal(as, bs), strict(ae, be, eps))
	case model.StartedBy:
		return append(equal(as, bs), strict(be, ae, eps))
	case model.Finishes:
		return append([]Constraint{strict(bs, as, eps)}, equal(ae, be)...)
	case model.FinishedBy:
		return append([]Constraint{strict(as, bs, eps)}, equal(ae, be)...)
	case model.During:
		return []Constraint{strict(bs, as, eps), strict(ae, be, eps)}
	case model.Contains:
		return []Constraint{strict(as, bs, eps), strict(be, ae, eps)}
	case model.Equals:
		return append(equal(as, bs), equal(ae, be)...)
	}
	panic("compile: unknown relation " + string(a.Relation))
}

// CompileEvent emits the event-internal constraints. An instant pins its
// endpoints together; an interval keeps end - start >= MinDuration, encoded
// as start - end <= -MinDuration.
func CompileEvent(e model.Event, p Params) []Constraint {
	s, en := e.StartVar(), e.EndVar()
	if e.Duration == model.Instant {
		return equal(s, en)
	}
	return []Constraint{lessEq(s, en, -p.MinDuration)}
}
