package landmark_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ttpr0/corelandmarks/coregraph"
	"github.com/ttpr0/corelandmarks/landmark"
)

// levelGraph is a minimal CoreGraph stub exposing only NodeCount/Level/
// CoreLevel/CoreNodeCount, all NewCoreNodeIndexMap actually reads.
type levelGraph struct {
	levels        []coregraph.CoreLevel
	coreLevel     coregraph.CoreLevel
	coreNodeCount int32
}

func (g levelGraph) NodeCount() int                            { return len(g.levels) }
func (g levelGraph) EdgeCount() int                             { return 0 }
func (g levelGraph) CoreNodeCount() int32                       { return g.coreNodeCount }
func (g levelGraph) Level(n coregraph.NodeID) coregraph.CoreLevel { return g.levels[n] }
func (g levelGraph) CoreLevel() coregraph.CoreLevel             { return g.coreLevel }
func (g levelGraph) Lat(coregraph.NodeID) float64               { return 0 }
func (g levelGraph) Lon(coregraph.NodeID) float64               { return 0 }
func (g levelGraph) EdgeIteratorState(coregraph.EdgeID, coregraph.NodeID) (coregraph.EdgeIteratorState, bool) {
	return nil, false
}
func (g levelGraph) AllEdges(func(coregraph.EdgeIteratorState) bool)          {}
func (g levelGraph) CreateEdgeExplorer(coregraph.EdgeFilter) coregraph.EdgeExplorer { return nil }

func TestNewCoreNodeIndexMapDenseAscending(t *testing.T) {
	// nodes 0,2,3 are core (level>=1); node1 is contracted below the core.
	g := levelGraph{levels: []coregraph.CoreLevel{1, 0, 1, 2}, coreLevel: 1, coreNodeCount: 3}

	m, err := landmark.NewCoreNodeIndexMap(g)
	require.NoError(t, err)
	require.Equal(t, int32(3), m.CoreNodeCount())

	idx0, ok := m.Index(0)
	require.True(t, ok)
	require.Equal(t, int32(0), idx0)

	idx2, ok := m.Index(2)
	require.True(t, ok)
	require.Equal(t, int32(1), idx2)

	idx3, ok := m.Index(3)
	require.True(t, ok)
	require.Equal(t, int32(2), idx3)

	_, ok = m.Index(1)
	require.False(t, ok)
}

func TestNewCoreNodeIndexMapRejectsDensityMismatch(t *testing.T) {
	g := levelGraph{levels: []coregraph.CoreLevel{1, 1}, coreLevel: 1, coreNodeCount: 5}

	_, err := landmark.NewCoreNodeIndexMap(g)
	require.Error(t, err)
}
