// Package propagate runs single-source shortest paths over the constraint
// graph and certifies consistency.
//
// A Simple Temporal Network is consistent exactly when its weighted graph
// has no negative cycle, and the shortest-path distances from the virtual
// source then form a satisfying assignment of the variables. Propagation
// follows the classical Bellman-Ford schedule: |V|-1 relaxation passes
// with early exit, then one extra pass where any remaining relaxation
// certifies a reachable negative cycle.
//
// When the network is inconsistent the result carries a witness: the edges
// of one negative cycle in traversal order, plus the distinct assertion IDs
// those edges were compiled from. The witness is minimal within the
// extracted cycle, not globally minimal across all cycles.
package propagate

import (
	"math"

	"github.com/chronoline/chronoline/pkg/graph"
)

// Result is the outcome of one propagation.
//
// Feasible: Dist maps every vertex reachable from the source to its
// shortest-path distance, and Pred records the relaxing edge that last
// improved each vertex.
//
// Infeasible: Cycle holds the edges of one negative cycle in order, and
// Origins the distinct non-internal provenance IDs along it, in order of
// first appearance.
type Result struct {
	Feasible bool
	Dist     map[string]float64
	Pred     map[string]*graph.Edge
	Cycle    []*graph.Edge
	Origins  []string
}

// Propagate runs Bellman-Ford over g from source.
//
// Relaxation visits edges in the graph's insertion order on every pass, so
// identical graphs yield identical predecessor trees and, downstream,
// identical extracted witnesses. Distances never relax through +Inf.
func Propagate(g *graph.Graph, source string) Result {
	vertices := g.Vertices()
	edges := g.Edges()

	dist := make(map[string]float64, len(vertices))
	pred := make(map[string]*graph.Edge, len(vertices))
	for _, v := range vertices {
		dist[v] = math.Inf(1)
	}
	dist[source] = 0

	for i := 0; i < len(vertices)-1; i++ {
		changed := false
		for _, e := range edges {
			du := dist[e.From]
			if math.IsInf(du, 1) {
				continue
			}
			if du+e.Weight < dist[e.To] {
				dist[e.To] = du + e.Weight
				pred[e.To] = e
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	// Detection pass: any edge that still relaxes proves a negative cycle
	// reachable from the source.
	for _, e := range edges {
		du := dist[e.From]
		if math.IsInf(du, 1) {
			continue
		}
		if du+e.Weight < dist[e.To] {
			pred[e.To] = e
			cycle := extractCycle(e.To, pred, len(vertices))
			return Result{
				Feasible: false,
				Cycle:    cycle,
				Origins:  cycleOrigins(cycle),
			}
		}
	}

	return Result{Feasible: true, Dist: dist, Pred: pred}
}

// extractCycle walks the predecessor tree from a witness vertex that is on
// or reachable from a negative cycle. Following predecessors |V| times
// guarantees landing on a vertex strictly inside the cycle; one more walk
// collects the cycle's edges, returned in forward traversal order.
func extractCycle(witness string, pred map[string]*graph.Edge, vertexCount int) []*graph.Edge {
	v := witness
	for i := 0; i < vertexCount; i++ {
		e := pred[v]
		if e == nil {
			break
		}
		v = e.From
	}

	var reversed []*graph.Edge
	cur := v
	for {
		e := pred[cur]
		if e == nil {
			break
		}
		reversed = append(reversed, e)
		cur = e.From
		if cur == v {
			break
		}
	}

	cycle := make([]*graph.Edge, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		cycle = append(cycle, reversed[i])
	}
	return cycle
}

// cycleOrigins returns the distinct assertion IDs along the cycle, in
// order of first appearance. Reserved internal and source tags are
// skipped: they cannot be relaxed away.
func cycleOrigins(cycle []*graph.Edge) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, e := range cycle {
		if graph.Internal(e.Origin) || seen[e.Origin] {
			continue
		}
		seen[e.Origin] = true
		ids = append(ids, e.Origin)
	}
	return ids
}
