package landmark

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newFillerFixtures(t *testing.T, graph *fakeGraph) (*weightTable, *subnetworkTable, *CoreNodeIndexMap, *Codec) {
	t.Helper()
	coreIndex, err := NewCoreNodeIndexMap(graph)
	require.NoError(t, err)
	codec, err := NewCodec(1)
	require.NoError(t, err)
	table, err := createWeightTable(t.TempDir()+"/w", coreIndex.CoreNodeCount(), 1, codec)
	require.NoError(t, err)
	subnetworks, err := createSubnetworkTable(t.TempDir()+"/s", coreIndex.CoreNodeCount())
	require.NoError(t, err)
	return table, subnetworks, coreIndex, codec
}

func TestFillLandmarkWeightsWritesForwardAndReverse(t *testing.T) {
	graph := newFakeGraph(3, []testEdge{
		{id: 0, a: 0, b: 1, weight: 4},
		{id: 1, a: 1, b: 2, weight: 6},
	})
	weighting := fakeWeighting{name: "fill"}
	table, subnetworks, coreIndex, codec := newFillerFixtures(t, graph)

	ok, err := fillLandmarkWeights(graph, weighting, nil, 0, 0, true, 1, table, subnetworks, coreIndex, codec, nil, nil, nil)
	require.NoError(t, err)
	require.True(t, ok)

	idx1, _ := coreIndex.Index(1)
	idx2, _ := coreIndex.Index(2)
	require.InDelta(t, 4.0, codec.Decode(table.FromWeight(idx1, 0)), 1)
	require.InDelta(t, 10.0, codec.Decode(table.FromWeight(idx2, 0)), 1)
	require.InDelta(t, 4.0, codec.Decode(table.ToWeight(idx1, 0)), 1)
	require.InDelta(t, 10.0, codec.Decode(table.ToWeight(idx2, 0)), 1)

	require.Equal(t, int8(1), subnetworks.Get(idx1))
	require.Equal(t, int8(1), subnetworks.Get(idx2))
}

func TestFillLandmarkWeightsSkipsSubnetworkTaggingWhenNotFirstLandmark(t *testing.T) {
	graph := newFakeGraph(2, []testEdge{{id: 0, a: 0, b: 1, weight: 1}})
	weighting := fakeWeighting{name: "fill"}
	table, subnetworks, coreIndex, codec := newFillerFixtures(t, graph)

	ok, err := fillLandmarkWeights(graph, weighting, nil, 0, 0, false, 1, table, subnetworks, coreIndex, codec, nil, nil, nil)
	require.NoError(t, err)
	require.True(t, ok)

	idx1, _ := coreIndex.Index(1)
	require.Equal(t, SubnetworkUnset, subnetworks.Get(idx1))
}

func TestFillLandmarkWeightsDoesNotAbandonOnUnclearTag(t *testing.T) {
	graph := newFakeGraph(2, []testEdge{{id: 0, a: 0, b: 1, weight: 1}})
	weighting := fakeWeighting{name: "fill"}
	table, subnetworks, coreIndex, codec := newFillerFixtures(t, graph)

	idx1, _ := coreIndex.Index(1)
	subnetworks.Set(idx1, SubnetworkUnclear)

	ok, err := fillLandmarkWeights(graph, weighting, nil, 0, 0, true, 1, table, subnetworks, coreIndex, codec, nil, nil, nil)
	require.NoError(t, err)
	require.True(t, ok)
	// UNCLEAR is not a conflict: the node is claimed by this subnetwork.
	require.Equal(t, int8(1), subnetworks.Get(idx1))
}

func TestFillLandmarkWeightsAbandonsOnSubnetworkConflict(t *testing.T) {
	graph := newFakeGraph(2, []testEdge{{id: 0, a: 0, b: 1, weight: 1}})
	weighting := fakeWeighting{name: "fill"}
	table, subnetworks, coreIndex, codec := newFillerFixtures(t, graph)

	idx1, _ := coreIndex.Index(1)
	subnetworks.Set(idx1, 2)

	ok, err := fillLandmarkWeights(graph, weighting, nil, 0, 0, true, 1, table, subnetworks, coreIndex, codec, nil, nil, nil)
	require.NoError(t, err)
	require.False(t, ok)
	// abandonment leaves the earlier, conflicting tag untouched.
	require.Equal(t, int8(2), subnetworks.Get(idx1))
}

func TestFillLandmarkWeightsReportsCancellation(t *testing.T) {
	graph := newRingGraph(4, 1)
	weighting := fakeWeighting{name: "fill"}
	table, subnetworks, coreIndex, codec := newFillerFixtures(t, graph)

	cancel := func() bool { return true }
	_, err := fillLandmarkWeights(graph, weighting, nil, 0, 0, true, 1, table, subnetworks, coreIndex, codec, nil, nil, cancel)
	require.True(t, err.(*Error).Kind == Cancelled)
}
