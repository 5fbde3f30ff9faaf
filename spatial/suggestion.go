package spatial

import (
	"github.com/ttpr0/corelandmarks/coregraph"
)

// Suggestion is a hand-authored set of known-good landmark node ids for a
// geographic region, letting a caller short-circuit landmark selection for
// well-studied subnetworks (a region whose landmark placement has already
// been tuned offline). Implements coregraph.LandmarkSuggestion.
type Suggestion struct {
	minLat, minLon, maxLat, maxLon float64
	nodeIDs                        []coregraph.NodeID
}

// NewSuggestion builds a Suggestion covering the given lat/lon box.
// nodeIDs should list at least K node ids in priority order; the landmark
// selector takes the first K and fails if fewer are supplied.
func NewSuggestion(minLat, minLon, maxLat, maxLon float64, nodeIDs []coregraph.NodeID) *Suggestion {
	return &Suggestion{
		minLat: minLat, minLon: minLon,
		maxLat: maxLat, maxLon: maxLon,
		nodeIDs: nodeIDs,
	}
}

func (s *Suggestion) Box() (minLat, minLon, maxLat, maxLon float64) {
	return s.minLat, s.minLon, s.maxLat, s.maxLon
}

func (s *Suggestion) NodeIDs() []coregraph.NodeID {
	return s.nodeIDs
}

var _ coregraph.LandmarkSuggestion = (*Suggestion)(nil)
