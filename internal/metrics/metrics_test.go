// SPDX-License-Identifier: MIT
package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ManuGH/m3urenew/internal/playlist"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	t.Helper()
	metric := &dto.Metric{}
	require.NoError(t, gauge.Write(metric))
	return metric.GetGauge().GetValue()
}

func TestRecordRun(t *testing.T) {
	before := testutil.ToFloat64(runsTotal.WithLabelValues(OutcomeSuccess))
	failuresBefore := testutil.ToFloat64(runsTotal.WithLabelValues(OutcomeNotFound))

	RecordRun(OutcomeSuccess, 20*time.Millisecond)
	RecordRun(OutcomeNotFound, time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(runsTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, failuresBefore+1, testutil.ToFloat64(runsTotal.WithLabelValues(OutcomeNotFound)))
	assert.Greater(t, getGaugeValue(t, lastSuccess), float64(0))
}

func TestRecordStats(t *testing.T) {
	stats := playlist.Stats{
		OriginalLines:  10,
		ProcessedLines: 5,
		RemovedLines:   5,
		FilterStats: playlist.FilterStats{
			TimestampLines: 2,
			StrayLinks:     1,
			ByClassifier:   map[string]int{"update-time-zh": 1, "generated-year": 1},
		},
		RewriteStats: playlist.RewriteStats{
			QuotedGroupTitles:   3,
			UnquotedGroupTitles: 1,
			CollapsedBlankRuns:  1,
		},
	}

	stamps := testutil.ToFloat64(linesRemoved.WithLabelValues("timestamp"))
	quoted := testutil.ToFloat64(groupTitlesRewritten.WithLabelValues("quoted"))
	zh := testutil.ToFloat64(timestampMatches.WithLabelValues("update-time-zh"))

	RecordStats(stats)

	assert.Equal(t, stamps+2, testutil.ToFloat64(linesRemoved.WithLabelValues("timestamp")))
	assert.Equal(t, quoted+3, testutil.ToFloat64(groupTitlesRewritten.WithLabelValues("quoted")))
	assert.Equal(t, zh+1, testutil.ToFloat64(timestampMatches.WithLabelValues("update-time-zh")))
	assert.Equal(t, float64(10), getGaugeValue(t, inputLines))
	assert.Equal(t, float64(5), getGaugeValue(t, outputLines))
}

func TestWriteTextfile(t *testing.T) {
	RecordDecoded("gbk")

	path := filepath.Join(t.TempDir(), "nested", "m3urenew.prom")
	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `m3urenew_decoded_total{encoding="gbk"}`)
	assert.NotContains(t, string(data), "go_goroutines")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
