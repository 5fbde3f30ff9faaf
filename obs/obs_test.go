package obs_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"github.com/ttpr0/corelandmarks/obs"
)

func TestLogHandlerFormatsOneLine(t *testing.T) {
	var buf bytes.Buffer
	handler := obs.NewLogHandler(&buf, nil)
	logger := slog.New(handler)

	logger.Info("build finished", slog.Int("landmarks", 8))

	out := buf.String()
	require.True(t, strings.Contains(out, "build finished"))
	require.True(t, strings.Contains(out, "INFO"))
}

func TestLogHandlerEnabledDelegates(t *testing.T) {
	handler := obs.NewLogHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	require.False(t, handler.Enabled(context.Background(), slog.LevelInfo))
	require.True(t, handler.Enabled(context.Background(), slog.LevelWarn))
}

func TestBuildMetricsRegistersAndCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := obs.NewBuildMetrics(reg)

	m.SaturatedWeights.Add(3)
	m.Subnetworks.Set(2)

	got, err := reg.Gather()
	require.NoError(t, err)

	var saturated float64
	for _, mf := range got {
		if mf.GetName() == "corelandmarks_saturated_weights_total" {
			saturated = mf.Metric[0].GetCounter().GetValue()
		}
	}
	require.Equal(t, float64(3), saturated)
}
