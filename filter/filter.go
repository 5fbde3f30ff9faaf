// Package filter provides composable edge predicates for core-graph
// traversal, grounded on the Adjacency/Direction enum style of
// ttpr0-go-routing/graph/enums.go and the narrow-interface style of
// DESIGN NOTES §9 ("EdgeFilter with one method accept").
package filter

import (
	"github.com/ttpr0/corelandmarks/coregraph"
	"github.com/ttpr0/corelandmarks/util"
)

// EdgeFilter accepts or rejects a directed edge traversal.
type EdgeFilter interface {
	Accept(edge coregraph.EdgeIteratorState) bool
}

var _ coregraph.EdgeFilter = EdgeFilter(nil)

type edgeFilterFunc func(coregraph.EdgeIteratorState) bool

func (f edgeFilterFunc) Accept(edge coregraph.EdgeIteratorState) bool {
	return f(edge)
}

// InCore accepts edges whose endpoints are both in the core, applying the
// fwd/bwd access-direction requirement (relative to the accessEnc flag)
// only when both endpoints are core nodes. Edges leading to a non-core node
// (exit ramps from the core) pass through unconditionally, matching §4.4.
func InCore(graph coregraph.CoreGraph, encoder coregraph.FlagEncoder, fwd, bwd bool) EdgeFilter {
	coreLevel := graph.CoreLevel()
	access := encoder.AccessEncoder()
	return edgeFilterFunc(func(edge coregraph.EdgeIteratorState) bool {
		base := edge.BaseNode()
		adj := edge.AdjNode()
		if graph.Level(base) < coreLevel || graph.Level(adj) < coreLevel {
			return true
		}
		if fwd && access.Forward(edge) {
			return true
		}
		if bwd && access.Backward(edge) {
			return true
		}
		return false
	})
}

// BlockedEdges rejects any edge whose id is a member of the supplied set.
// A nil or empty set accepts everything.
func BlockedEdges(blocked util.IntSet) EdgeFilter {
	return edgeFilterFunc(func(edge coregraph.EdgeIteratorState) bool {
		return !blocked.Contains(edge.EdgeID())
	})
}

// BothDirections accepts an edge only when both its forward and reverse
// access flags are set, used to find a component's reachable-both-ways
// start node (§4.6 uses this to pick a valid subnetwork seed).
func BothDirections(encoder coregraph.FlagEncoder) EdgeFilter {
	access := encoder.AccessEncoder()
	return edgeFilterFunc(func(edge coregraph.EdgeIteratorState) bool {
		return access.Forward(edge) && access.Backward(edge)
	})
}

// Sequence AND-composes any number of filters; an edge must be accepted by
// every one of them. An empty sequence accepts everything.
func Sequence(filters ...EdgeFilter) EdgeFilter {
	return edgeFilterFunc(func(edge coregraph.EdgeIteratorState) bool {
		for _, f := range filters {
			if f == nil {
				continue
			}
			if !f.Accept(edge) {
				return false
			}
		}
		return true
	})
}

// Always is a filter that accepts every edge, used where a caller has no
// user-supplied predicate to compose in.
var Always EdgeFilter = edgeFilterFunc(func(coregraph.EdgeIteratorState) bool { return true })
