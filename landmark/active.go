package landmark

import (
	"sort"

	"github.com/ttpr0/corelandmarks/coregraph"
)

// scoredLandmark is one landmark's triangle-inequality gap for a given
// (from, to) pair, computed in PickActiveLandmarks step 2.
type scoredLandmark struct {
	index int32
	score float64
}

// PickActiveLandmarks implements §4.9: resolve fromNode/toNode's shared
// subnetwork, score every landmark of it, and fill the caller-owned
// activeIdx/activeFroms/activeTos arrays. -1 in activeIdx[0] on entry means
// "no previous pick to preserve"; any other value means a re-pick mid
// search, in which case at most two previously active landmarks are kept.
// Returns UnreachableSubnetwork when either endpoint has no subnetwork
// yet, DisconnectedSubnetworks when they disagree.
func (s *Storage) PickActiveLandmarks(
	fromNode, toNode coregraph.NodeID,
	reverse bool,
	activeIdx []int32,
	activeFroms []uint16,
	activeTos []uint16,
) error {
	fromIdx, ok := s.coreIndex.Index(fromNode)
	if !ok {
		return newError(UnreachableSubnetwork, "fromNode %d is not a core node", fromNode)
	}
	toIdx, ok := s.coreIndex.Index(toNode)
	if !ok {
		return newError(UnreachableSubnetwork, "toNode %d is not a core node", toNode)
	}

	fromSub := s.subnetworks.Get(fromIdx)
	toSub := s.subnetworks.Get(toIdx)
	if fromSub == SubnetworkUnset || fromSub == SubnetworkUnclear {
		return newError(UnreachableSubnetwork, "fromNode %d has no usable subnetwork", fromNode)
	}
	if toSub == SubnetworkUnset || toSub == SubnetworkUnclear {
		return newError(UnreachableSubnetwork, "toNode %d has no usable subnetwork", toNode)
	}
	if fromSub != toSub {
		return newError(DisconnectedSubnetworks, "fromNode %d and toNode %d are in different subnetworks", fromNode, toNode)
	}

	k := s.table.K()
	scores := make([]scoredLandmark, k)
	for l := int32(0); l < k; l++ {
		fromScore := s.codec.Decode(s.table.FromWeight(toIdx, l)) - s.codec.Decode(s.table.FromWeight(fromIdx, l))
		toScore := s.codec.Decode(s.table.ToWeight(fromIdx, l)) - s.codec.Decode(s.table.ToWeight(toIdx, l))
		score := maxf(fromScore, toScore)
		if reverse {
			score = maxf(-fromScore, -toScore)
		}
		scores[l] = scoredLandmark{index: l, score: score}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	a := len(activeIdx)

	// §9 open question, preserved verbatim: this loop overwrites the
	// prefix of activeIdx with the new top-ranked picks and stops as soon
	// as it is within COUNT slots of the end, adjusted upward every time
	// a freshly written slot happens to coincide with a previously active
	// landmark. Left-over tail slots keep whatever they held on entry.
	// For arrays of length <= 2, COUNT is <= 0, so the bound is never
	// reached and every slot is rewritten; this is not special-cased.
	if a > 0 && activeIdx[0] >= 0 {
		existing := make(map[int32]bool, a)
		for _, idx := range activeIdx {
			existing[idx] = true
		}
		existingLandmarkCounter := 0
		count := a - 2
		if count > 2 {
			count = 2
		}
		for i := 0; i < a; i++ {
			if i >= a-count+existingLandmarkCounter {
				break
			}
			activeIdx[i] = scores[i].index
			if existing[activeIdx[i]] {
				existingLandmarkCounter++
			}
		}
	} else {
		for i := 0; i < a; i++ {
			activeIdx[i] = scores[i].index
		}
	}

	// populateActiveWeights: both activeFroms and activeTos are read
	// relative to toNode. Kept verbatim per §9's open question rather than
	// "fixed" to use fromNode for activeFroms.
	for i := 0; i < a; i++ {
		l := activeIdx[i]
		activeFroms[i] = s.table.FromWeight(toIdx, l)
		activeTos[i] = s.table.ToWeight(toIdx, l)
	}

	return nil
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
