// Package spatial provides the optional geography-aware collaborators the
// core module can consult but never requires: a default SpatialRuleLookup
// backed by an R-tree of rule bounding boxes, the border-edge detector that
// consumes it, and a small LandmarkSuggestion value type. Grounded on
// azybler-map_router's use of an R-tree/geoindex transport for spatial
// lookups (go.mod) and on the SpatialRuleLookup / LandmarkSuggestion seed
// file support described in original_source/'s CoreLandmarkStorage.
package spatial

import (
	"github.com/paulmach/orb"
	"github.com/tidwall/rtree"

	"github.com/ttpr0/corelandmarks/coregraph"
)

// RuleIndex is a default SpatialRuleLookup: every rule is registered as an
// axis-aligned bounding box, and a point lookup returns the id of the first
// containing box the tree's search reaches. Full polygon containment is
// out of scope; callers whose rule regions are not well approximated by a
// bounding box should supply their own SpatialRuleLookup.
type RuleIndex struct {
	tree  rtree.RTreeG[coregraph.RuleID]
	count int
}

func NewRuleIndex() *RuleIndex {
	return &RuleIndex{}
}

// AddRule indexes bound under id. Later AddRule calls whose boxes overlap
// an earlier one make LookupRule's result order-dependent (first hit
// during the tree's traversal), which is acceptable for the coarse
// border-edge heuristic this feeds.
func (idx *RuleIndex) AddRule(id coregraph.RuleID, bound orb.Bound) {
	min := [2]float64{bound.Min.X(), bound.Min.Y()}
	max := [2]float64{bound.Max.X(), bound.Max.Y()}
	idx.tree.Insert(min, max, id)
	idx.count++
}

// LookupRule returns the id of a rule box containing (lat, lon), or
// coregraph.NoRule if none does.
func (idx *RuleIndex) LookupRule(lat, lon float64) coregraph.RuleID {
	point := [2]float64{lon, lat}
	found := coregraph.NoRule
	idx.tree.Search(point, point, func(min, max [2]float64, id coregraph.RuleID) bool {
		found = id
		return false
	})
	return found
}

func (idx *RuleIndex) Size() int {
	return idx.count
}

var _ coregraph.SpatialRuleLookup = (*RuleIndex)(nil)
