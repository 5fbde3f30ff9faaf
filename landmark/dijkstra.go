package landmark

import (
	"github.com/ttpr0/corelandmarks/coregraph"
	"github.com/ttpr0/corelandmarks/util"
)

// dijkstraSource is one seed of a (possibly multi-source) search: a start
// node and its initial tentative distance. Both callers seed at 0: the plain
// single-source searches and, in the farthest-node reseeding step of
// §4.7.3, every previously picked landmark.
type dijkstraSource struct {
	node coregraph.NodeID
	dist float64
}

// runDijkstra is the one Dijkstra implementation both the landmark
// selector (§4.7, hop-count weighting) and the weight filler (§4.8, real
// weighting) run on top of, grounded on the settled-set/priority-queue
// shape of ttpr0-go-routing/algorithm/range_dijkstra.go. forward selects
// which adjacency direction the explorer walks; the same flag is passed to
// the weighting as !reverse.
//
// onSettle is called once per settled node in increasing-distance order;
// returning false stops the search early. cancelled reports whether
// cancel() fired between settlements (§4.7.4's cooperative cancellation
// check).
func runDijkstra(
	graph coregraph.CoreGraph,
	weighting coregraph.Weighting,
	edgeFilter coregraph.EdgeFilter,
	forward bool,
	sources []dijkstraSource,
	cancel func() bool,
	onSettle func(node coregraph.NodeID, dist float64) bool,
) (lastSettled coregraph.NodeID, settledCount int, cancelled bool) {
	dist := map[coregraph.NodeID]float64{}
	settled := map[coregraph.NodeID]bool{}
	pq := util.NewPriorityQueue[coregraph.NodeID, float64](len(sources))

	for _, s := range sources {
		if d, ok := dist[s.node]; !ok || s.dist < d {
			dist[s.node] = s.dist
			pq.Enqueue(s.node, s.dist)
		}
	}

	lastSettled = coregraph.NodeID(-1)
	explorer := graph.CreateEdgeExplorer(edgeFilter)

	for pq.Len() > 0 {
		if cancel != nil && cancel() {
			return lastSettled, settledCount, true
		}

		node, ok := pq.Dequeue()
		if !ok {
			break
		}
		if settled[node] {
			continue
		}
		settled[node] = true
		d := dist[node]

		lastSettled = node
		settledCount++
		if onSettle != nil && !onSettle(node, d) {
			return lastSettled, settledCount, false
		}

		explorer.SetBaseNode(node, forward)
		for explorer.Next() {
			edge := explorer.EdgeIteratorState()
			adj := edge.AdjNode()
			if settled[adj] {
				continue
			}
			w := weighting.CalcWeight(edge, !forward, coregraph.NoEdge)
			nd := d + w
			if existing, ok := dist[adj]; !ok || nd < existing {
				dist[adj] = nd
				pq.Enqueue(adj, nd)
			}
		}
	}

	return lastSettled, settledCount, false
}
