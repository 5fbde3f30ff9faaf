package landmark

import (
	"github.com/ttpr0/corelandmarks/coregraph"
)

// CoreNodeIndexMap is the total function graphNodeId -> coreNodeIndex over
// a graph's core nodes described in §3. Built once from a CoreGraph and
// immutable afterward.
type CoreNodeIndexMap struct {
	toIndex   map[coregraph.NodeID]int32
	nodeCount int32
}

// NewCoreNodeIndexMap scans graph's nodes and assigns each core node
// (Level >= CoreLevel) a dense, zero-based index in ascending node-id
// order. §9's "SubnetworkStorage capacity ... implementers must assert
// density" is enforced here: the resulting index count must equal
// graph.CoreNodeCount(), otherwise every downstream table sized off it
// would silently under- or over-allocate.
func NewCoreNodeIndexMap(graph coregraph.CoreGraph) (*CoreNodeIndexMap, error) {
	toIndex := make(map[coregraph.NodeID]int32, graph.CoreNodeCount())
	var next int32
	nodeCount := int32(graph.NodeCount())
	coreLevel := graph.CoreLevel()
	for n := int32(0); n < nodeCount; n++ {
		if graph.Level(n) < coreLevel {
			continue
		}
		toIndex[n] = next
		next++
	}
	if next != graph.CoreNodeCount() {
		return nil, newError(GraphMismatch, "core node index map is not dense: indexed %d nodes, graph reports CoreNodeCount()=%d", next, graph.CoreNodeCount())
	}
	return &CoreNodeIndexMap{toIndex: toIndex, nodeCount: next}, nil
}

// Index returns node's compact core-node index. ok is false for a node
// outside the core, matching §3's "undefined elsewhere".
func (m *CoreNodeIndexMap) Index(node coregraph.NodeID) (int32, bool) {
	idx, ok := m.toIndex[node]
	return idx, ok
}

func (m *CoreNodeIndexMap) CoreNodeCount() int32 {
	return m.nodeCount
}
