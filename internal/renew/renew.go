// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package renew runs one normalization job: read and decode the input
// playlist, normalize it, write the output atomically and record metrics.
package renew

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ManuGH/m3urenew/internal/config"
	xglog "github.com/ManuGH/m3urenew/internal/log"
	"github.com/ManuGH/m3urenew/internal/metrics"
	"github.com/ManuGH/m3urenew/internal/playlist"
	"github.com/ManuGH/m3urenew/internal/textio"
	"github.com/google/uuid"
)

// Options controls a single run.
type Options struct {
	InputPath          string
	OutputPath         string
	EncodingFallbacks  []string
	GroupTitle         string
	CollapseBlankLines bool
	// MetricsTextfile, when set, receives the metrics registry after every run.
	MetricsTextfile string
}

// OptionsFromConfig maps the effective configuration onto run options.
func OptionsFromConfig(cfg config.AppConfig) Options {
	return Options{
		InputPath:          cfg.InputPath,
		OutputPath:         cfg.OutputPath,
		EncodingFallbacks:  cfg.EncodingFallbacks,
		GroupTitle:         cfg.GroupTitle,
		CollapseBlankLines: cfg.CollapseBlankLines,
		MetricsTextfile:    cfg.MetricsTextfile,
	}
}

// DefaultOptions returns the options of a run with the built-in configuration.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Defaults())
}

// Report describes a successful run.
type Report struct {
	RunID    string
	Input    string
	Output   string
	Encoding string
	Stats    playlist.Stats
	Duration time.Duration
}

// Run performs the complete cycle: decode input → normalize → write output.
// The output file is only replaced after the whole transformation succeeded.
func Run(ctx context.Context, opts Options) (*Report, error) {
	runID := uuid.NewString()
	ctx = xglog.ContextWithRunID(ctx, runID)
	logger := xglog.WithComponentFromContext(ctx, "renew")
	start := time.Now()

	logger.Info().
		Str(xglog.FieldEvent, "renew.start").
		Str(xglog.FieldInputPath, opts.InputPath).
		Str(xglog.FieldOutputPath, opts.OutputPath).
		Msg("starting normalization")

	report, err := run(ctx, opts)
	elapsed := time.Since(start)

	metrics.RecordRun(outcome(err), elapsed)
	if opts.MetricsTextfile != "" {
		if werr := metrics.WriteTextfile(opts.MetricsTextfile); werr != nil {
			logger.Warn().
				Err(werr).
				Str(xglog.FieldEvent, "metrics.textfile_failed").
				Str(xglog.FieldPath, opts.MetricsTextfile).
				Msg("metrics textfile not written")
		}
	}

	if err != nil {
		return nil, err
	}

	report.RunID = runID
	report.Duration = elapsed
	logger.Info().
		Str(xglog.FieldEvent, "renew.success").
		Str(xglog.FieldEncoding, report.Encoding).
		Int(xglog.FieldOriginalLines, report.Stats.OriginalLines).
		Int(xglog.FieldProcessedLines, report.Stats.ProcessedLines).
		Int(xglog.FieldRemovedLines, report.Stats.RemovedLines).
		Int64(xglog.FieldDurationMS, elapsed.Milliseconds()).
		Msg("normalization completed")
	return report, nil
}

func run(ctx context.Context, opts Options) (*Report, error) {
	logger := xglog.WithComponentFromContext(ctx, "renew")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dec, err := textio.NewDecoder(opts.EncodingFallbacks)
	if err != nil {
		return nil, fmt.Errorf("encoding fallbacks: %w", err)
	}

	normalizer, err := playlist.New(
		playlist.WithGroupTitle(opts.GroupTitle),
		playlist.WithBlankCollapse(opts.CollapseBlankLines),
	)
	if err != nil {
		return nil, fmt.Errorf("normalizer: %w", err)
	}

	decoded, err := dec.ReadFile(opts.InputPath)
	if err != nil {
		return nil, err
	}
	metrics.RecordDecoded(decoded.Encoding)
	logger.Debug().
		Str(xglog.FieldEvent, "renew.decoded").
		Str(xglog.FieldEncoding, decoded.Encoding).
		Int("bytes", decoded.Size).
		Msg("input decoded")

	result := normalizer.Normalize(decoded.Text)

	if err := textio.WriteFile(ctx, opts.OutputPath, result.Text); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}
	metrics.RecordStats(result.Stats)

	logger.Info().
		Str(xglog.FieldEvent, "renew.written").
		Str(xglog.FieldPath, opts.OutputPath).
		Int("timestamp_lines", result.Stats.TimestampLines).
		Int("stray_links", result.Stats.StrayLinks).
		Int("group_titles", result.Stats.QuotedGroupTitles+result.Stats.UnquotedGroupTitles).
		Msg("output written")

	return &Report{
		Input:    opts.InputPath,
		Output:   opts.OutputPath,
		Encoding: decoded.Encoding,
		Stats:    result.Stats,
	}, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, textio.ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, textio.ErrDecode):
		return metrics.OutcomeDecodeError
	default:
		return metrics.OutcomeFailure
	}
}
