package spatial

import (
	"github.com/ttpr0/corelandmarks/coregraph"
	"github.com/ttpr0/corelandmarks/util"
)

// DetectBorderEdges scans every edge in graph and emits the id of any edge
// whose endpoints fall under different spatial rules, as computed by
// lookup. A nil lookup means no rules are configured and an empty set is
// returned, matching §4.5's "when no lookup is configured, returns empty".
func DetectBorderEdges(graph coregraph.CoreGraph, lookup coregraph.SpatialRuleLookup) util.IntSet {
	borders := util.NewIntSet(0)
	if lookup == nil {
		return borders
	}

	graph.AllEdges(func(edge coregraph.EdgeIteratorState) bool {
		base := edge.BaseNode()
		adj := edge.AdjNode()
		baseRule := lookup.LookupRule(graph.Lat(base), graph.Lon(base))
		adjRule := lookup.LookupRule(graph.Lat(adj), graph.Lon(adj))
		if baseRule != adjRule {
			borders.Add(edge.EdgeID())
		}
		return true
	})
	return borders
}
