// Package landmark implements the core-graph landmark precomputation and
// query subsystem: per-subnetwork landmark selection, forward/reverse
// weight filling, quantised persistent storage, and the query-time
// active-landmark picker. It depends only on the coregraph, filter,
// hopweight, scc, spatial, store, util and obs packages of this module.
package landmark

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/ttpr0/corelandmarks/coregraph"
)

// ShortInfinity marks an unreached (from,to) cell. Never written by a
// successful weight fill; only ever the initial fill value of a freshly
// created weight table.
const ShortInfinity uint16 = 0xFFFF

// ShortMax is the saturation sentinel: the largest representable quantised
// weight, written when a real weight would otherwise overflow the 16-bit
// range or an actual encoded value collides with ShortInfinity.
const ShortMax uint16 = 0xFFFE

// bboxDiagonalMultiplier and maxEstimatedDistance implement §4.1's fallback
// maxWeight estimate: 7x the bbox diagonal, replaced outright by a flat
// 30,000km-derived distance once that 7x figure passes maxSmallAreaMeters
// (i.e. the raw diagonal exceeds 50km), or the box is degenerate.
const bboxDiagonalMultiplier = 7
const maxSmallAreaMeters = 50_000 * bboxDiagonalMultiplier
const maxEstimatedDistanceMeters = 30_000_000

// Codec converts real-valued weights to and from the 16-bit quantised
// representation the weight table stores, using a single per-build factor.
type Codec struct {
	factor float64
}

// NewCodec validates factor the way §4.1/§7 require: it must be finite,
// positive, and its microsecond-scaled header encoding (round(factor*1e6))
// must fit an int32, else the build cannot proceed (FactorOverflow).
func NewCodec(factor float64) (*Codec, error) {
	if !(factor > 0) || math.IsInf(factor, 0) || math.IsNaN(factor) {
		return nil, newError(FactorOverflow, "factor %v is not finite and positive", factor)
	}
	if factor*1e6 > math.MaxInt32 {
		return nil, newError(FactorOverflow, "factor %v scaled by 1e6 overflows int32", factor)
	}
	return &Codec{factor: factor}, nil
}

func (c *Codec) Factor() float64 {
	return c.factor
}

// HeaderFactor is the header's round(factor*1e6) encoding.
func (c *Codec) HeaderFactor() int32 {
	return int32(math.Round(c.factor * 1e6))
}

// Encode quantises w, reporting whether the result saturated at ShortMax.
// Per §4.1's contract, a ratio beyond int32 range is a hard ValueOutOfRange
// failure rather than a silent saturation — that only happens for weights
// wildly outside anything a real build's factor should ever see.
func (c *Codec) Encode(w float64) (uint16, bool, error) {
	ratio := w / c.factor
	if ratio > math.MaxInt32 {
		return 0, false, newError(ValueOutOfRange, "weight %v (ratio %v) exceeds int32 range before quantisation", w, ratio)
	}
	if ratio >= float64(ShortMax) {
		return ShortMax, true, nil
	}
	return uint16(math.Round(ratio)), false, nil
}

// Decode reverses Encode. ShortInfinity decodes to +Inf.
func (c *Codec) Decode(v uint16) float64 {
	if v == ShortInfinity {
		return math.Inf(1)
	}
	return float64(v) * c.factor
}

func IsSaturated(v uint16) bool {
	return v == ShortMax
}

func IsUnset(v uint16) bool {
	return v == ShortInfinity
}

// EstimateMaxWeight derives a maxWeight for NewCodec when the caller
// supplies none, per §4.1: 7x the bounding-box diagonal distance (metres),
// run through the weighting's own MinWeight so the estimate uses the same
// units the weighting itself would produce. Once that 7x figure passes
// maxSmallAreaMeters (a small-area cutoff of a 50km raw diagonal, true for
// almost any real-world graph), the estimate is replaced outright by the
// flat 30,000km-derived distance rather than merely capped there.
func EstimateMaxWeight(bbox orb.Bound, weighting coregraph.Weighting) float64 {
	diagonal := geo.Distance(bbox.Min, bbox.Max)
	valid := diagonal > 0 && !math.IsNaN(diagonal) && !math.IsInf(diagonal, 0)

	distance := bboxDiagonalMultiplier * diagonal
	if !valid || distance > maxSmallAreaMeters {
		distance = maxEstimatedDistanceMeters
	}
	return weighting.MinWeight(distance)
}
