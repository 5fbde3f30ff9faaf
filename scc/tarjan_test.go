package scc_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ttpr0/corelandmarks/coregraph"
	"github.com/ttpr0/corelandmarks/scc"
)

type fakeEdge struct {
	base, adj coregraph.NodeID
}

func (e fakeEdge) EdgeID() coregraph.EdgeID { return 0 }
func (e fakeEdge) BaseNode() coregraph.NodeID { return e.base }
func (e fakeEdge) AdjNode() coregraph.NodeID  { return e.adj }
func (e fakeEdge) IsShortcut() bool           { return false }
func (e fakeEdge) SkippedEdges() (coregraph.EdgeID, coregraph.EdgeID) {
	return coregraph.NoEdge, coregraph.NoEdge
}
func (e fakeEdge) Weight() float64 { return 1 }

type acceptAll struct{}

func (acceptAll) Accept(coregraph.EdgeIteratorState) bool { return true }

type fakeExplorer struct {
	edges []fakeEdge
	pos   int
}

func (e *fakeExplorer) SetBaseNode(node coregraph.NodeID, forward bool) coregraph.EdgeExplorer {
	return e
}
func (e *fakeExplorer) Next() bool {
	e.pos++
	return e.pos <= len(e.edges)
}
func (e *fakeExplorer) EdgeIteratorState() coregraph.EdgeIteratorState {
	return e.edges[e.pos-1]
}

type fakeGraph struct {
	adjacency map[coregraph.NodeID][]coregraph.NodeID
	nodeCount int
}

func (g *fakeGraph) NodeCount() int              { return g.nodeCount }
func (g *fakeGraph) EdgeCount() int               { return 0 }
func (g *fakeGraph) CoreNodeCount() int32         { return int32(g.nodeCount) }
func (g *fakeGraph) Level(coregraph.NodeID) coregraph.CoreLevel { return 10 }
func (g *fakeGraph) CoreLevel() coregraph.CoreLevel             { return 10 }
func (g *fakeGraph) Lat(coregraph.NodeID) float64               { return 0 }
func (g *fakeGraph) Lon(coregraph.NodeID) float64               { return 0 }
func (g *fakeGraph) EdgeIteratorState(coregraph.EdgeID, coregraph.NodeID) (coregraph.EdgeIteratorState, bool) {
	return nil, false
}
func (g *fakeGraph) AllEdges(func(coregraph.EdgeIteratorState) bool) {}
func (g *fakeGraph) CreateEdgeExplorer(coregraph.EdgeFilter) coregraph.EdgeExplorer {
	return &fakeExplorer{}
}

func newGraphFromEdges(nodeCount int, edges map[coregraph.NodeID][]coregraph.NodeID) *namedGraph {
	return &namedGraph{fakeGraph: fakeGraph{nodeCount: nodeCount}, adjacency: edges}
}

type namedGraph struct {
	fakeGraph
	adjacency map[coregraph.NodeID][]coregraph.NodeID
	current   coregraph.NodeID
}

func (g *namedGraph) CreateEdgeExplorer(coregraph.EdgeFilter) coregraph.EdgeExplorer {
	return &lazyExplorer{graph: g}
}

type lazyExplorer struct {
	graph *namedGraph
	node  coregraph.NodeID
	edges []fakeEdge
	pos   int
}

func (e *lazyExplorer) SetBaseNode(node coregraph.NodeID, forward bool) coregraph.EdgeExplorer {
	e.node = node
	e.edges = nil
	for _, adj := range e.graph.adjacency[node] {
		e.edges = append(e.edges, fakeEdge{base: node, adj: adj})
	}
	e.pos = 0
	return e
}
func (e *lazyExplorer) Next() bool {
	e.pos++
	return e.pos <= len(e.edges)
}
func (e *lazyExplorer) EdgeIteratorState() coregraph.EdgeIteratorState {
	return e.edges[e.pos-1]
}

func sortedComponents(comps []scc.Component) [][]coregraph.NodeID {
	out := make([][]coregraph.NodeID, len(comps))
	for i, c := range comps {
		cp := append([]coregraph.NodeID(nil), c...)
		sort.Slice(cp, func(a, b int) bool { return cp[a] < cp[b] })
		out[i] = cp
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a][0] < out[b][0]
	})
	return out
}

func TestTarjanCycleIsOneComponent(t *testing.T) {
	// 0 -> 1 -> 2 -> 0, a single cycle.
	g := newGraphFromEdges(3, map[coregraph.NodeID][]coregraph.NodeID{
		0: {1},
		1: {2},
		2: {0},
	})

	comps := scc.Tarjan(g, acceptAll{})
	got := sortedComponents(comps)
	require.Len(t, got, 1)
	require.Equal(t, []coregraph.NodeID{0, 1, 2}, got[0])
}

func TestTarjanSeparatesUnreachablePairs(t *testing.T) {
	// two one-way edges, no cycles: every node is its own SCC.
	g := newGraphFromEdges(4, map[coregraph.NodeID][]coregraph.NodeID{
		0: {1},
		2: {3},
	})

	comps := scc.Tarjan(g, acceptAll{})
	require.Len(t, comps, 4)
	for _, c := range comps {
		require.Len(t, c, 1)
	}
}

func TestTarjanTwoSeparateCycles(t *testing.T) {
	g := newGraphFromEdges(6, map[coregraph.NodeID][]coregraph.NodeID{
		0: {1},
		1: {0},
		2: {3},
		3: {4},
		4: {2},
		5: {},
	})

	comps := scc.Tarjan(g, acceptAll{})
	got := sortedComponents(comps)
	require.Len(t, got, 3)
	require.Equal(t, []coregraph.NodeID{0, 1}, got[0])
	require.Equal(t, []coregraph.NodeID{2, 3, 4}, got[1])
	require.Equal(t, []coregraph.NodeID{5}, got[2])
}
