package filter_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ttpr0/corelandmarks/coregraph"
	"github.com/ttpr0/corelandmarks/filter"
	"github.com/ttpr0/corelandmarks/util"
)

type fakeEdge struct {
	id       coregraph.EdgeID
	base     coregraph.NodeID
	adj      coregraph.NodeID
	fwd, bwd bool
}

func (e fakeEdge) EdgeID() coregraph.EdgeID           { return e.id }
func (e fakeEdge) BaseNode() coregraph.NodeID         { return e.base }
func (e fakeEdge) AdjNode() coregraph.NodeID          { return e.adj }
func (e fakeEdge) IsShortcut() bool                   { return false }
func (e fakeEdge) SkippedEdges() (coregraph.EdgeID, coregraph.EdgeID) { return coregraph.NoEdge, coregraph.NoEdge }
func (e fakeEdge) Weight() float64                    { return 0 }

type fakeAccess struct{}

func (fakeAccess) Forward(e coregraph.EdgeIteratorState) bool  { return e.(fakeEdge).fwd }
func (fakeAccess) Backward(e coregraph.EdgeIteratorState) bool { return e.(fakeEdge).bwd }

type fakeEncoder struct{}

func (fakeEncoder) AccessEncoder() coregraph.BoolDecoder { return fakeAccess{} }

type fakeGraph struct {
	levels    map[coregraph.NodeID]coregraph.CoreLevel
	coreLevel coregraph.CoreLevel
}

func (g fakeGraph) NodeCount() int                { return len(g.levels) }
func (g fakeGraph) EdgeCount() int                 { return 0 }
func (g fakeGraph) CoreNodeCount() int32           { return 0 }
func (g fakeGraph) Level(n coregraph.NodeID) coregraph.CoreLevel { return g.levels[n] }
func (g fakeGraph) CoreLevel() coregraph.CoreLevel  { return g.coreLevel }
func (g fakeGraph) Lat(coregraph.NodeID) float64    { return 0 }
func (g fakeGraph) Lon(coregraph.NodeID) float64    { return 0 }
func (g fakeGraph) EdgeIteratorState(coregraph.EdgeID, coregraph.NodeID) (coregraph.EdgeIteratorState, bool) {
	return nil, false
}
func (g fakeGraph) AllEdges(func(coregraph.EdgeIteratorState) bool) {}
func (g fakeGraph) CreateEdgeExplorer(coregraph.EdgeFilter) coregraph.EdgeExplorer {
	return nil
}

func TestInCore(t *testing.T) {
	g := fakeGraph{
		coreLevel: 10,
		levels: map[coregraph.NodeID]coregraph.CoreLevel{
			1: 10, // core
			2: 10, // core
			3: 3,  // not core (exit ramp)
		},
	}
	f := filter.InCore(g, fakeEncoder{}, true, false)

	// both core, forward flag set -> accept
	require.True(t, f.Accept(fakeEdge{base: 1, adj: 2, fwd: true}))
	// both core, forward flag unset -> reject
	require.False(t, f.Accept(fakeEdge{base: 1, adj: 2, fwd: false}))
	// leaving the core -> always accept
	require.True(t, f.Accept(fakeEdge{base: 1, adj: 3, fwd: false}))
}

func TestBlockedEdges(t *testing.T) {
	blocked := util.NewIntSet(2)
	blocked.Add(5)

	f := filter.BlockedEdges(blocked)
	require.False(t, f.Accept(fakeEdge{id: 5}))
	require.True(t, f.Accept(fakeEdge{id: 6}))
}

func TestSequenceIsAND(t *testing.T) {
	always := filter.Always
	never := filter.BlockedEdges(func() util.IntSet {
		s := util.NewIntSet(1)
		s.Add(1)
		return s
	}())

	seq := filter.Sequence(always, never)
	require.False(t, seq.Accept(fakeEdge{id: 1}))
	require.True(t, seq.Accept(fakeEdge{id: 2}))
}

func TestBothDirections(t *testing.T) {
	f := filter.BothDirections(fakeEncoder{})
	require.True(t, f.Accept(fakeEdge{fwd: true, bwd: true}))
	require.False(t, f.Accept(fakeEdge{fwd: true, bwd: false}))
}
