// Package scc finds strongly-connected components of the core graph under a
// caller-supplied edge filter, used once per build to partition the core
// into per-subnetwork landmark sets. Grounded on the CSR-adjacency,
// explicit-work-stack iteration style of
// azybler-map_router/pkg/graph/component.go, generalized from that file's
// undirected union-find components to a proper directed Tarjan pass (the
// reference implementation's TarjansCoreSCCAlgorithm), per DESIGN NOTES §9
// ("implement... iteratively with an explicit work stack").
package scc

import (
	"github.com/ttpr0/corelandmarks/coregraph"
)

// Component is one strongly-connected component: the node ids reachable
// from and reaching every other node in the set, under the filter Tarjan
// ran with.
type Component []coregraph.NodeID

// frame is one level of the simulated recursion for a single start node.
type frame struct {
	node     coregraph.NodeID
	explorer coregraph.EdgeExplorer
}

// Tarjan computes strongly-connected components of graph's core nodes
// (Level(node) >= graph.CoreLevel()), following only edges filter accepts.
// Non-core nodes are never used as a component seed, matching §4.6's scope
// (the algorithm runs on the core, not the full base graph).
func Tarjan(graph coregraph.CoreGraph, filter coregraph.EdgeFilter) []Component {
	coreLevel := graph.CoreLevel()
	nodeCount := graph.NodeCount()

	index := 0
	indices := make(map[coregraph.NodeID]int, nodeCount)
	lowlink := make(map[coregraph.NodeID]int, nodeCount)
	onStack := make(map[coregraph.NodeID]bool, nodeCount)
	var componentStack []coregraph.NodeID
	var components []Component

	visited := func(n coregraph.NodeID) bool {
		_, ok := indices[n]
		return ok
	}

	for n := int32(0); n < int32(nodeCount); n++ {
		if graph.Level(n) < coreLevel || visited(n) {
			continue
		}

		work := []*frame{{node: n}}
		for len(work) > 0 {
			top := work[len(work)-1]
			v := top.node

			if top.explorer == nil {
				indices[v] = index
				lowlink[v] = index
				index++
				componentStack = append(componentStack, v)
				onStack[v] = true
				top.explorer = graph.CreateEdgeExplorer(filter).SetBaseNode(v, true)
			}

			descended := false
			for top.explorer.Next() {
				w := top.explorer.EdgeIteratorState().AdjNode()
				if !visited(w) {
					work = append(work, &frame{node: w})
					descended = true
					break
				}
				if onStack[w] {
					if indices[w] < lowlink[v] {
						lowlink[v] = indices[w]
					}
				}
			}
			if descended {
				continue
			}

			work = work[:len(work)-1]
			if lowlink[v] == indices[v] {
				var comp Component
				for {
					w := componentStack[len(componentStack)-1]
					componentStack = componentStack[:len(componentStack)-1]
					onStack[w] = false
					comp = append(comp, w)
					if w == v {
						break
					}
				}
				components = append(components, comp)
			}
			if len(work) > 0 {
				parent := work[len(work)-1]
				if lowlink[v] < lowlink[parent.node] {
					lowlink[parent.node] = lowlink[v]
				}
			}
		}
	}

	return components
}
