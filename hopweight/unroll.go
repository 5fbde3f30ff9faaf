// Package hopweight implements the landmark-selection-only weighting that
// counts real-edge hops instead of travel cost, so that farthest-node
// landmark selection spreads geographically instead of chasing whichever
// edge happens to be slowest (a ferry link dominating an otherwise dense
// road network). Grounded on ttpr0-go-routing/comps/weighting.go's
// IWeighting shape and graph/ch_graph.go's shortcut/EdgeRef handling.
package hopweight

import (
	"math"

	"github.com/ttpr0/corelandmarks/coregraph"
)

// ShortcutUnrollWeighting wraps a base weighting and is consulted only while
// picking landmarks, never while filling the weight table. A plain edge
// counts as one hop; a shortcut counts the real edges its two skipped
// references expand to. Unlike the reference implementation this carries no
// shared mutable counter — each CalcWeight call threads its own count
// through an explicit work stack (see unrollHops), so concurrent callers
// sharing one ShortcutUnrollWeighting never race.
type ShortcutUnrollWeighting struct {
	graph coregraph.CoreGraph
	base  coregraph.Weighting
}

func NewShortcutUnrollWeighting(graph coregraph.CoreGraph, base coregraph.Weighting) *ShortcutUnrollWeighting {
	return &ShortcutUnrollWeighting{graph: graph, base: base}
}

func (w *ShortcutUnrollWeighting) Name() string {
	return "hop_unroll"
}

func (w *ShortcutUnrollWeighting) FlagEncoder() coregraph.FlagEncoder {
	return w.base.FlagEncoder()
}

func (w *ShortcutUnrollWeighting) MinWeight(distanceMeters float64) float64 {
	return w.base.MinWeight(distanceMeters)
}

// CalcWeight returns 1 for a plain edge and the unrolled real-edge count for
// a shortcut, or +Inf when the underlying weight is at/beyond float64's
// usable range (an inaccessible edge under the base weighting).
func (w *ShortcutUnrollWeighting) CalcWeight(edge coregraph.EdgeIteratorState, reverse bool, prevEdge coregraph.EdgeID) float64 {
	if edge.IsShortcut() {
		res := edge.Weight()
		if res >= math.MaxFloat64 {
			return math.Inf(1)
		}
		return float64(unrollHops(w.graph, edge))
	}
	res := w.base.CalcWeight(edge, reverse, prevEdge)
	if res >= math.MaxFloat64 {
		return math.Inf(1)
	}
	return 1
}

// unrollHops counts the real (non-shortcut) edges a shortcut expands to.
// Shortcut expansion forms a DAG by construction of the contraction
// hierarchy, so an explicit work stack unwinds it without risking a call
// stack blowup on deeply nested shortcuts. Each step mirrors the reference
// resolution rule: skippedEdge1 is looked up relative to the shortcut's
// base node first; if that lookup misses (the edge doesn't touch base),
// skippedEdge2 belongs to base instead, and the remaining skipped edge is
// resolved relative to the adjacent node.
func unrollHops(graph coregraph.CoreGraph, root coregraph.EdgeIteratorState) int64 {
	var count int64
	stack := []coregraph.EdgeIteratorState{root}
	for len(stack) > 0 {
		n := len(stack) - 1
		cur := stack[n]
		stack = stack[:n]

		if !cur.IsShortcut() {
			count++
			continue
		}

		skipped1, skipped2 := cur.SkippedEdges()
		from := cur.BaseNode()
		to := cur.AdjNode()

		fromIter, ok := graph.EdgeIteratorState(skipped1, from)
		missing := !ok
		if missing {
			fromIter, _ = graph.EdgeIteratorState(skipped2, from)
		}
		stack = append(stack, fromIter)

		var toIter coregraph.EdgeIteratorState
		if missing {
			toIter, _ = graph.EdgeIteratorState(skipped1, to)
		} else {
			toIter, _ = graph.EdgeIteratorState(skipped2, to)
		}
		stack = append(stack, toIter)
	}
	return count
}
