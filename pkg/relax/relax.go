// Package relax repairs inconsistent temporal networks by discarding
// assertions in confidence order.
//
// The relaxer is a greedy hitting-set heuristic: while propagation reports
// a negative cycle, drop the lowest-confidence assertion on that cycle and
// try again. It never discards a higher tier while a lower tier in the
// same witness remains, but it makes no claim of a globally minimum repair.
// Simplicity and predictability are the point.
//
// The graph is rebuilt from scratch on every iteration rather than edited
// in place. Rebuilding is bug-resistant and cheap next to the propagation
// it feeds (O(V*E) per pass), and the loop is bounded: each iteration
// strictly shrinks the surviving set.
package relax

import (
	"sort"
	"strings"

	"github.com/chronoline/chronoline/pkg/compile"
	"github.com/chronoline/chronoline/pkg/graph"
	"github.com/chronoline/chronoline/pkg/model"
	"github.com/chronoline/chronoline/pkg/propagate"
)

// MaxIterations caps the repair loop. The loop also cannot run longer than
// the number of assertions, since every iteration removes one.
const MaxIterations = 100

// Outcome is the result of one relaxation run.
type Outcome struct {
	// Graph is the final constraint graph, virtual source included.
	Graph *graph.Graph
	// Prop is the final propagation over Graph. Feasible unless no
	// removable assertion remained in the last witness or the loop
	// reached MaxIterations first.
	Prop propagate.Result
	// Discarded lists removed assertions in removal order.
	Discarded []model.Assertion
	// Surviving lists the assertions still in force, in input order.
	Surviving []model.Assertion
	// Iterations counts propagation rounds, including the final one.
	Iterations int
}

// BuildGraph compiles events and assertions into a fresh constraint graph.
// Event-internal edges carry the reserved internal tag; assertion edges
// carry their assertion's ID.
func BuildGraph(events []model.Event, assertions []model.Assertion, p compile.Params) *graph.Graph {
	g := graph.New()
	for _, e := range events {
		g.AddVertex(e.StartVar())
		g.AddVertex(e.EndVar())
		for _, c := range compile.CompileEvent(e, p) {
			g.AddEdge(c.From, c.To, c.Bound, graph.OriginInternal)
		}
	}
	for _, a := range assertions {
		for _, c := range compile.CompileAssertion(a, p) {
			g.AddEdge(c.From, c.To, c.Bound, a.ID)
		}
	}
	return g
}

// byPriority returns the assertions sorted by ascending confidence weight,
// ties broken by input order: the consult order for picking a victim.
func byPriority(assertions []model.Assertion) []model.Assertion {
	sorted := append([]model.Assertion(nil), assertions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence.Weight() < sorted[j].Confidence.Weight()
	})
	return sorted
}

// Relax drives the repair loop over the given enabled events and
// assertions until the network is feasible, no removable assertion remains
// in the witness, or the iteration cap is hit.
func Relax(events []model.Event, assertions []model.Assertion, p compile.Params) Outcome {
	priority := byPriority(assertions)

	surviving := append([]model.Assertion(nil), assertions...)
	alive := make(map[string]bool, len(assertions))
	for _, a := range assertions {
		alive[a.ID] = true
	}

	var out Outcome
	limit := len(assertions) + 1
	if limit > MaxIterations {
		limit = MaxIterations
	}

	for iter := 0; iter < limit; iter++ {
		g := BuildGraph(events, surviving, p)
		src := g.InjectSource()
		res := propagate.Propagate(g, src)

		out.Graph = g
		out.Prop = res
		out.Surviving = surviving
		out.Iterations = iter + 1

		if res.Feasible {
			return out
		}

		victim, ok := pickVictim(priority, alive, res.Origins)
		if !ok {
			// Only internal constraints remain on the cycle; the conflict
			// is intrinsic to the events themselves.
			return out
		}

		alive[victim.ID] = false
		out.Discarded = append(out.Discarded, victim)
		kept := surviving[:0:0]
		for _, a := range surviving {
			if a.ID != victim.ID {
				kept = append(kept, a)
			}
		}
		surviving = kept
	}
	return out
}

// pickVictim returns the lowest-priority surviving assertion among the
// witness origins, consulting the pre-sorted priority list. Within the
// lowest tier present, the latest-stated assertion goes: when two equally
// trusted statements clash, the earlier one stands.
func pickVictim(priority []model.Assertion, alive map[string]bool, origins []string) (model.Assertion, bool) {
	inWitness := make(map[string]bool, len(origins))
	for _, id := range origins {
		inWitness[id] = true
	}
	var victim model.Assertion
	found := false
	for _, a := range priority {
		if !alive[a.ID] || !inWitness[a.ID] {
			continue
		}
		if !found {
			victim, found = a, true
			continue
		}
		if a.Confidence.Weight() > victim.Confidence.Weight() {
			break
		}
		victim = a
	}
	return victim, found
}

// FindAllConflicts surveys every conflict in the stated network without
// repairing it: it repeatedly propagates and strips all assertions of each
// reported witness via provenance removal, so later propagations surface
// conflicts the first witness was masking. The survey mutates only its own
// graph; inputs are untouched.
//
// The returned sets are subset-minimal among those found: a conflict that
// strictly contains another tells the user nothing extra, so dominated
// sets are dropped the same way a frontier drops dominated pointstamps.
func FindAllConflicts(events []model.Event, assertions []model.Assertion, p compile.Params) []model.Conflict {
	byID := make(map[string]model.Assertion, len(assertions))
	for _, a := range assertions {
		byID[a.ID] = a
	}

	g := BuildGraph(events, assertions, p)
	src := g.InjectSource()

	var sets [][]string
	// Each round removes at least one assertion's edges, so the survey
	// ends within |assertions| rounds.
	for i := 0; i <= len(assertions); i++ {
		res := propagate.Propagate(g, src)
		if res.Feasible || len(res.Origins) == 0 {
			break
		}
		sets = append(sets, res.Origins)
		for _, id := range res.Origins {
			g.RemoveByOrigin(id)
		}
	}

	var conflicts []model.Conflict
	for _, ids := range minimalSets(sets) {
		conflicts = append(conflicts, model.Conflict{
			AssertionIDs: ids,
			Description:  describeConflict(ids, byID),
		})
	}
	return conflicts
}

// minimalSets keeps the antichain of id sets under strict inclusion.
func minimalSets(sets [][]string) [][]string {
	var minimal [][]string
	for i, s := range sets {
		dominated := false
		for j, t := range sets {
			if i != j && properSubset(t, s, i, j) {
				dominated = true
				break
			}
		}
		if !dominated {
			minimal = append(minimal, s)
		}
	}
	return minimal
}

// properSubset reports whether t is a subset of s and strictly smaller,
// or an equal set appearing earlier (so duplicates collapse to one).
func properSubset(t, s []string, si, ti int) bool {
	in := make(map[string]bool, len(s))
	for _, id := range s {
		in[id] = true
	}
	for _, id := range t {
		if !in[id] {
			return false
		}
	}
	if len(t) < len(s) {
		return true
	}
	return len(t) == len(s) && ti < si
}

// describeConflict renders a witness as the statements it contradicts.
func describeConflict(ids []string, byID map[string]model.Assertion) string {
	if len(ids) == 0 {
		return "conflict between event-internal constraints"
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			parts = append(parts, a.String())
		} else {
			parts = append(parts, id)
		}
	}
	return "mutually contradictory: " + strings.Join(parts, "; ")
}
