package landmark

import (
	"github.com/ttpr0/corelandmarks/coregraph"
)

// SelectResult is the outcome of selecting landmarks for one subnetwork
// candidate: either a set of K landmark node ids, or a signal that the
// candidate component fell below minimumNodes and was tagged UNCLEAR.
type SelectResult struct {
	LandmarkIDs []coregraph.NodeID
	Skipped     bool
}

type settledNode struct {
	node coregraph.NodeID
	dist float64
}

// selectLandmarks implements §4.7 for one subnetwork candidate rooted at
// startNode. subnetworks is mutated in place (coreIndex is only read) when
// the candidate turns out to be below minimumNodes (tagged UNCLEAR) — grounded on the
// spec's "Input: ... the subnetwork table (mutated)" wording.
func selectLandmarks(
	graph coregraph.CoreGraph,
	hopWeighting coregraph.Weighting,
	edgeFilter coregraph.EdgeFilter,
	startNode coregraph.NodeID,
	k int32,
	minimumNodes int,
	subnetworks *subnetworkTable,
	coreIndex *CoreNodeIndexMap,
	suggestion coregraph.LandmarkSuggestion,
	cancel func() bool,
) (SelectResult, error) {
	if suggestion != nil && suggestionCovers(suggestion, graph, startNode) {
		ids := suggestion.NodeIDs()
		if len(ids) < int(k) {
			return SelectResult{}, newError(InsufficientSuggestions, "suggestion has %d ids, need %d", len(ids), k)
		}
		return SelectResult{LandmarkIDs: append([]coregraph.NodeID(nil), ids[:k]...)}, nil
	}

	var reached []settledNode
	_, count, cancelled := runDijkstra(graph, hopWeighting, edgeFilter, true,
		[]dijkstraSource{{node: startNode, dist: 0}}, cancel,
		func(node coregraph.NodeID, dist float64) bool {
			reached = append(reached, settledNode{node: node, dist: dist})
			return true
		})
	if cancelled {
		return SelectResult{}, KindError(Cancelled)
	}

	if count < minimumNodes {
		for _, s := range reached {
			idx, ok := coreIndex.Index(s.node)
			if !ok {
				continue
			}
			subnetworks.Set(idx, SubnetworkUnclear)
		}
		return SelectResult{Skipped: true}, nil
	}

	landmarks := make([]coregraph.NodeID, k)
	landmarks[0] = farthest(reached)

	for i := int32(1); i < k; i++ {
		if cancel != nil && cancel() {
			return SelectResult{}, KindError(Cancelled)
		}

		sources := make([]dijkstraSource, i)
		for j := int32(0); j < i; j++ {
			sources[j] = dijkstraSource{node: landmarks[j], dist: 0}
		}

		var settled []settledNode
		_, _, cancelled := runDijkstra(graph, hopWeighting, edgeFilter, true, sources, cancel,
			func(node coregraph.NodeID, dist float64) bool {
				settled = append(settled, settledNode{node: node, dist: dist})
				return true
			})
		if cancelled {
			return SelectResult{}, KindError(Cancelled)
		}
		landmarks[i] = farthest(settled)
	}

	return SelectResult{LandmarkIDs: landmarks}, nil
}

// farthest returns the settled node with the greatest distance, breaking
// ties by the lexically smallest node id (§4.7.3's "Tie-breaking: lexical
// node id"). Dijkstra settles nodes in non-decreasing distance order, so
// every node tied for the maximum sits at the tail of settled.
func farthest(settled []settledNode) coregraph.NodeID {
	if len(settled) == 0 {
		return coregraph.NoEdge // sentinel: caller only reaches here with a non-empty search
	}
	maxDist := settled[len(settled)-1].dist
	best := settled[len(settled)-1].node
	for i := len(settled) - 1; i >= 0 && settled[i].dist == maxDist; i-- {
		if settled[i].node < best {
			best = settled[i].node
		}
	}
	return best
}

// suggestionCovers reports whether startNode's coordinates fall inside
// suggestion's bounding box.
func suggestionCovers(suggestion coregraph.LandmarkSuggestion, graph coregraph.CoreGraph, node coregraph.NodeID) bool {
	minLat, minLon, maxLat, maxLon := suggestion.Box()
	lat := graph.Lat(node)
	lon := graph.Lon(node)
	return lat >= minLat && lat <= maxLat && lon >= minLon && lon <= maxLon
}
