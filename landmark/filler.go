package landmark

import (
	"golang.org/x/exp/slog"
	"gonum.org/v1/gonum/stat"

	"github.com/ttpr0/corelandmarks/coregraph"
	"github.com/ttpr0/corelandmarks/filter"
	"github.com/ttpr0/corelandmarks/obs"
)

// fillLandmarkWeights runs §4.8's forward and reverse Dijkstras from one
// landmark and writes every reached core node's weight into table. ok is
// false when the first-landmark subnetwork tagging in step 3 finds a node
// already tagged with a differing real subnetwork id (UNCLEAR is not a
// conflict, only another 1..127 id is), and the whole subnetwork is then
// abandoned by the caller.
func fillLandmarkWeights(
	graph coregraph.CoreGraph,
	weighting coregraph.Weighting,
	extraFilter coregraph.EdgeFilter,
	landmark coregraph.NodeID,
	landmarkIdx int32,
	isFirstLandmark bool,
	subnetworkID int8,
	table *weightTable,
	subnetworks *subnetworkTable,
	coreIndex *CoreNodeIndexMap,
	codec *Codec,
	metrics *obs.BuildMetrics,
	logger *slog.Logger,
	cancel func() bool,
) (bool, error) {
	encoder := weighting.FlagEncoder()
	forwardFilter := filter.Sequence(filter.InCore(graph, encoder, false, true), asFilter(extraFilter))
	reverseFilter := filter.Sequence(filter.InCore(graph, encoder, true, false), asFilter(extraFilter))

	var saturated int
	var visited int
	var abandoned bool
	var fillErr error
	var sample []float64

	_, _, cancelled := runDijkstra(graph, weighting, forwardFilter, true,
		[]dijkstraSource{{node: landmark, dist: 0}}, cancel,
		func(node coregraph.NodeID, dist float64) bool {
			idx, ok := coreIndex.Index(node)
			if !ok {
				return true
			}
			visited++
			sample = append(sample, dist)

			v, sat, err := codec.Encode(dist)
			if err != nil {
				fillErr = err
				return false
			}
			if sat {
				saturated++
				if metrics != nil {
					metrics.SaturatedWeights.Inc()
				}
			}
			table.SetFromWeight(idx, landmarkIdx, v)

			if isFirstLandmark {
				existing := subnetworks.Get(idx)
				if existing != SubnetworkUnset && existing != SubnetworkUnclear && existing != subnetworkID {
					abandoned = true
					return false
				}
				subnetworks.Set(idx, subnetworkID)
			}
			return true
		})
	if cancelled {
		return false, KindError(Cancelled)
	}
	if fillErr != nil {
		return false, fillErr
	}
	if abandoned {
		return false, nil
	}

	_, _, cancelled = runDijkstra(graph, weighting, reverseFilter, false,
		[]dijkstraSource{{node: landmark, dist: 0}}, cancel,
		func(node coregraph.NodeID, dist float64) bool {
			idx, ok := coreIndex.Index(node)
			if !ok {
				return true
			}
			visited++
			sample = append(sample, dist)

			v, sat, err := codec.Encode(dist)
			if err != nil {
				fillErr = err
				return false
			}
			if sat {
				saturated++
				if metrics != nil {
					metrics.SaturatedWeights.Inc()
				}
			}
			table.SetToWeight(idx, landmarkIdx, v)
			return true
		})
	if cancelled {
		return false, KindError(Cancelled)
	}
	if fillErr != nil {
		return false, fillErr
	}

	if visited > 0 && float64(saturated)/float64(visited) > 0.1 && logger != nil {
		mean := stat.Mean(sample, nil)
		logger.Warn("landmark weight saturation exceeds 10%, consider a larger factor",
			slog.Int64("landmark", int64(landmark)),
			slog.Int("saturated", saturated),
			slog.Int("visited", visited),
			slog.Float64("mean_weight", mean),
		)
	}

	return true, nil
}

// asFilter adapts a possibly-nil coregraph.EdgeFilter to filter.EdgeFilter
// so it can be composed with filter.Sequence; a nil extraFilter behaves as
// filter.Always.
func asFilter(f coregraph.EdgeFilter) filter.EdgeFilter {
	if f == nil {
		return filter.Always
	}
	if ef, ok := f.(filter.EdgeFilter); ok {
		return ef
	}
	return filterAdapter{f}
}

type filterAdapter struct {
	f coregraph.EdgeFilter
}

func (a filterAdapter) Accept(edge coregraph.EdgeIteratorState) bool {
	return a.f.Accept(edge)
}
