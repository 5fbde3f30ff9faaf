// Package coregraph names the external collaborators this module treats as
// given: the road graph, its weighting functions, and the optional spatial
// rule lookup. None of these are implemented here — the contraction
// hierarchy, the base graph storage, and the weighting functions that turn
// edges into costs all live outside this module's scope. This package only
// pins down the narrow capability set the rest of the module programs
// against, in the same style as ttpr0-go-routing/comps/graph_base.go's
// IGraphBase and graph/graph.go's IGraph/IGraphExplorer.
package coregraph

// NodeID and EdgeID are graph-wide identifiers, distinct from the compact
// core-node indices the landmark package derives from them.
type NodeID = int32
type EdgeID = int32

// CoreLevel is the hierarchy level a node was contracted at. Nodes with
// level >= a graph's CoreLevel() sentinel belong to the core.
type CoreLevel = int16

// Weighting converts edges into non-negative real costs. calcWeight mirrors
// the reference contract's (edge, reverse, prevEdgeId) signature; prevEdge
// is NoEdge when there is no predecessor.
type Weighting interface {
	CalcWeight(edge EdgeIteratorState, reverse bool, prevEdge EdgeID) float64
	MinWeight(distanceMeters float64) float64
	Name() string
	FlagEncoder() FlagEncoder
}

// FlagEncoder exposes the per-edge access bits a Weighting's underlying
// vehicle profile uses. accessEnc is opaque; only BoolDecoder consumes it.
type FlagEncoder interface {
	AccessEncoder() BoolDecoder
}

// BoolDecoder reads a single boolean flag off an edge, direction-aware.
type BoolDecoder interface {
	Forward(edge EdgeIteratorState) bool
	Backward(edge EdgeIteratorState) bool
}

// NoEdge marks the absence of a previous edge, matching EdgeIterator.NO_EDGE
// in the reference contract.
const NoEdge EdgeID = -1

// EdgeIteratorState is a single directed traversal of an edge (base -> adj).
// A shortcut's two skipped edges recursively resolve to EdgeIteratorStates
// of either plain edges or further shortcuts.
type EdgeIteratorState interface {
	EdgeID() EdgeID
	BaseNode() NodeID
	AdjNode() NodeID
	IsShortcut() bool
	// SkippedEdges returns the two edges a shortcut skips over, valid only
	// when IsShortcut() is true. Order is implementation-defined; callers
	// resolve which endpoint each belongs to the way §4.3 describes.
	SkippedEdges() (first, second EdgeID)
	// Weight is the precomputed contraction weight carried on a shortcut.
	// Meaningless (and unused) for a plain, non-shortcut edge.
	Weight() float64
}

// CoreGraph is the hierarchical contracted graph this module augments. It
// exposes only what landmark precomputation needs: node/edge counts,
// per-node hierarchy level, edge iteration, and lookup of an edge relative
// to one of its endpoints (needed to resolve shortcut expansion).
type CoreGraph interface {
	NodeCount() int
	EdgeCount() int
	CoreNodeCount() int32
	Level(node NodeID) CoreLevel
	// CoreLevel is the sentinel level (graph node count + 1) at or above
	// which a node is considered part of the core.
	CoreLevel() CoreLevel
	Lat(node NodeID) float64
	Lon(node NodeID) float64
	// EdgeIteratorState resolves an edge id relative to one of its
	// endpoints, returning ok=false when the edge does not touch adjNode
	// (mirrors CHGraph.getEdgeIteratorState returning null in the
	// reference implementation).
	EdgeIteratorState(edge EdgeID, adjNode NodeID) (EdgeIteratorState, bool)
	// AllEdges yields every EdgeIteratorState in the graph exactly once,
	// used by the border-edge detector's full scan.
	AllEdges(yield func(EdgeIteratorState) bool)
	// CreateEdgeExplorer returns a fresh, single-threaded explorer that
	// iterates the (filtered) adjacency of any node it is pointed at.
	CreateEdgeExplorer(filter EdgeFilter) EdgeExplorer
}

// EdgeExplorer iterates the adjacency of one node at a time. Not safe for
// concurrent use; callers create one explorer per goroutine.
type EdgeExplorer interface {
	// SetBaseNode points the explorer at node's outgoing (forward=true) or
	// incoming (forward=false) adjacency and returns itself for chaining.
	SetBaseNode(node NodeID, forward bool) EdgeExplorer
	Next() bool
	EdgeIteratorState() EdgeIteratorState
}

// EdgeFilter is implemented by the filter package; declared here as an
// interface alias point so CoreGraph.CreateEdgeExplorer doesn't import
// the filter package (which itself depends on coregraph).
type EdgeFilter interface {
	Accept(edge EdgeIteratorState) bool
}

// RuleID identifies a spatial rule region (administrative border, custom
// polygon). Two edge endpoints under different rule ids are a border edge.
type RuleID int32

// NoRule is returned by a SpatialRuleLookup for points outside every region.
const NoRule RuleID = -1

// SpatialRuleLookup is the optional collaborator the border-edge detector
// consults. A nil lookup is a valid "no lookup configured" state.
type SpatialRuleLookup interface {
	LookupRule(lat, lon float64) RuleID
	Size() int
}

// LandmarkSuggestion lets a caller hand-author known-good landmark node ids
// for a geographic region, short-circuiting the selection heuristic.
type LandmarkSuggestion interface {
	Box() (minLat, minLon, maxLat, maxLon float64)
	NodeIDs() []NodeID
}
