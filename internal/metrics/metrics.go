// SPDX-License-Identifier: MIT

// Package metrics provides Prometheus metrics for m3urenew runs.
//
// Metrics live in a dedicated registry rather than the default one so that a
// textfile export contains only m3urenew series and no Go runtime collectors.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ManuGH/m3urenew/internal/playlist"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run outcomes. Kept to a fixed set to bound label cardinality.
const (
	OutcomeSuccess     = "success"
	OutcomeNotFound    = "not_found"
	OutcomeDecodeError = "decode_error"
	OutcomeFailure     = "failure"
)

// Registry holds every m3urenew metric.
var Registry = prometheus.NewRegistry()

var (
	runsTotal = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "m3urenew_runs_total",
		Help: "Total number of normalization runs by outcome",
	}, []string{"outcome"}) // outcome=success|not_found|decode_error|failure

	runDuration = promauto.With(Registry).NewHistogram(prometheus.HistogramOpts{
		Name:    "m3urenew_run_duration_seconds",
		Help:    "Wall time of a normalization run",
		Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
	})

	lastSuccess = promauto.With(Registry).NewGauge(prometheus.GaugeOpts{
		Name: "m3urenew_last_success_timestamp_seconds",
		Help: "Unix time of the last successful run",
	})

	decodedTotal = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "m3urenew_decoded_total",
		Help: "Inputs decoded, by the encoding that succeeded",
	}, []string{"encoding"})

	linesRemoved = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "m3urenew_lines_removed_total",
		Help: "Lines dropped by the line filter, by reason",
	}, []string{"reason"}) // reason=timestamp|stray_link

	timestampMatches = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "m3urenew_timestamp_lines_total",
		Help: "Timestamp announcement lines removed, by first matching classifier",
	}, []string{"classifier"})

	groupTitlesRewritten = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "m3urenew_group_titles_rewritten_total",
		Help: "group-title values rewritten, by original form",
	}, []string{"form"}) // form=quoted|unquoted

	blankRunsCollapsed = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Name: "m3urenew_blank_runs_collapsed_total",
		Help: "Runs of three or more blank lines collapsed to one",
	})

	inputLines = promauto.With(Registry).NewGauge(prometheus.GaugeOpts{
		Name: "m3urenew_input_lines",
		Help: "Line count of the input in the last successful run",
	})

	outputLines = promauto.With(Registry).NewGauge(prometheus.GaugeOpts{
		Name: "m3urenew_output_lines",
		Help: "Line count of the output in the last successful run",
	})
)

// RecordRun records the outcome and duration of one run.
func RecordRun(outcome string, d time.Duration) {
	runsTotal.WithLabelValues(outcome).Inc()
	runDuration.Observe(d.Seconds())
	if outcome == OutcomeSuccess {
		lastSuccess.SetToCurrentTime()
	}
}

// RecordDecoded counts an input decoded with encoding.
func RecordDecoded(encoding string) {
	decodedTotal.WithLabelValues(encoding).Inc()
}

// RecordStats publishes the counters of a normalization pass.
func RecordStats(s playlist.Stats) {
	linesRemoved.WithLabelValues("timestamp").Add(float64(s.TimestampLines))
	linesRemoved.WithLabelValues("stray_link").Add(float64(s.StrayLinks))
	for name, n := range s.ByClassifier {
		timestampMatches.WithLabelValues(name).Add(float64(n))
	}
	groupTitlesRewritten.WithLabelValues("quoted").Add(float64(s.QuotedGroupTitles))
	groupTitlesRewritten.WithLabelValues("unquoted").Add(float64(s.UnquotedGroupTitles))
	blankRunsCollapsed.Add(float64(s.CollapsedBlankRuns))
	inputLines.Set(float64(s.OriginalLines))
	outputLines.Set(float64(s.ProcessedLines))
}

// WriteTextfile writes the registry in the node_exporter textfile format.
// The write is atomic; the parent directory is created if needed.
func WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create metrics dir: %w", err)
		}
	}
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
