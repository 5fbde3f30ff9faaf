package obs

import (
	"github.com/prometheus/client_golang/prometheus"
)

// BuildMetrics collects the counters and histograms a landmark build
// exercises. New to this module (the teacher has no metrics of its own);
// grounded on github.com/prometheus/client_golang's documented
// NewCounter/NewHistogram/NewGauge constructors, following the naming
// convention (`<namespace>_<unit>_total` for counters) client_golang's own
// examples use.
type BuildMetrics struct {
	BuildDuration      prometheus.Histogram
	SaturatedWeights   prometheus.Counter
	Subnetworks        prometheus.Gauge
	UnclearSubnetworks prometheus.Counter
	LandmarksSelected  prometheus.Counter
}

// NewBuildMetrics constructs and registers a fresh BuildMetrics against reg.
// Pass prometheus.NewRegistry() for an isolated set (as tests do) or
// prometheus.DefaultRegisterer to expose these alongside a process's other
// metrics.
func NewBuildMetrics(reg prometheus.Registerer) *BuildMetrics {
	m := &BuildMetrics{
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "corelandmarks_build_duration_seconds",
			Help:    "Wall time spent building landmark data for one core graph.",
			Buckets: prometheus.DefBuckets,
		}),
		SaturatedWeights: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "corelandmarks_saturated_weights_total",
			Help: "Number of encoded weights clamped to SHORT_MAX.",
		}),
		Subnetworks: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "corelandmarks_subnetworks",
			Help: "Number of subnetworks produced by the last build.",
		}),
		UnclearSubnetworks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "corelandmarks_unclear_subnetworks_total",
			Help: "Components skipped for falling below the minimum-node threshold.",
		}),
		LandmarksSelected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "corelandmarks_landmarks_selected_total",
			Help: "Landmarks picked across all subnetworks of the last build.",
		}),
	}
	reg.MustRegister(
		m.BuildDuration,
		m.SaturatedWeights,
		m.Subnetworks,
		m.UnclearSubnetworks,
		m.LandmarksSelected,
	)
	return m
}
