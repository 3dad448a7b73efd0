// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ManuGH/m3urenew/internal/config"
	xglog "github.com/ManuGH/m3urenew/internal/log"
	"github.com/ManuGH/m3urenew/internal/renew"
	"github.com/ManuGH/m3urenew/internal/textio"
	"github.com/ManuGH/m3urenew/internal/validate"
	"github.com/ManuGH/m3urenew/internal/version"
	"github.com/ManuGH/m3urenew/internal/watch"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// cliFlags holds the values of the flags shared by every command.
type cliFlags struct {
	configPath      string
	input           string
	output          string
	fallbacks       []string
	groupTitle      string
	logLevel        string
	metricsTextfile string
	noCollapse      bool
	debounce        time.Duration
}

func (f *cliFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.configPath, "config", "c", "", "path to YAML configuration file")
	fs.StringVarP(&f.input, "input", "i", config.DefaultInputPath, "input playlist")
	fs.StringVarP(&f.output, "output", "o", config.DefaultOutputPath, "output playlist")
	fs.StringSliceVar(&f.fallbacks, "encoding-fallback", textio.DefaultFallbacks, "encodings tried after UTF-8, in order")
	fs.StringVar(&f.groupTitle, "group-title", "", "label written into every group-title (default \"频道\")")
	fs.StringVar(&f.logLevel, "log-level", config.DefaultLogLevel, "log level ("+strings.Join(validate.LogLevels, ", ")+")")
	fs.StringVar(&f.metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file after each run")
	fs.BoolVar(&f.noCollapse, "no-collapse", false, "keep runs of blank lines")
	fs.DurationVar(&f.debounce, "watch-debounce", config.DefaultWatchDebounce, "quiet period before a watched change is processed")
}

// load resolves the configuration. Only flags set on the command line
// override environment and file values.
func (f *cliFlags) load(cmd *cobra.Command) (config.AppConfig, error) {
	changed := cmd.Flags().Changed
	loader := config.NewLoader(f.configPath, version.Version).WithOverride(func(c *config.AppConfig) {
		if changed("input") {
			c.InputPath = f.input
		}
		if changed("output") {
			c.OutputPath = f.output
		}
		if changed("encoding-fallback") {
			c.EncodingFallbacks = append([]string(nil), f.fallbacks...)
		}
		if changed("group-title") {
			c.GroupTitle = f.groupTitle
		}
		if changed("log-level") {
			c.LogLevel = f.logLevel
		}
		if changed("metrics-textfile") {
			c.MetricsTextfile = f.metricsTextfile
		}
		if changed("no-collapse") {
			c.CollapseBlankLines = !f.noCollapse
		}
		if changed("watch-debounce") {
			c.WatchDebounce = f.debounce
		}
	})

	cfg, err := loader.Load()
	if err != nil {
		return cfg, &exitError{code: exitConfig, err: err}
	}
	return cfg, nil
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &cliFlags{}
	var watchMode bool

	root := &cobra.Command{
		Use:           "m3urenew",
		Short:         "Clean timestamp comments and group titles out of an M3U playlist",
		Version:       version.String(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			xglog.Configure(xglog.Config{Output: stderr, Version: version.Version})
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			xglog.Configure(xglog.Config{Level: cfg.LogLevel, Output: stderr, Version: version.Version})

			p := &printer{out: stdout, colorize: shouldColorize(stdout)}
			opts := renew.OptionsFromConfig(cfg)
			runAndReport(cmd.Context(), opts, p)

			if !watchMode {
				return nil
			}
			return watchAndReport(cmd.Context(), cfg, opts, p)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags.register(root.PersistentFlags())
	root.Flags().BoolVarP(&watchMode, "watch", "w", false, "keep running and reprocess the input whenever it changes")

	root.AddCommand(newConfigCmd(flags, stdout))
	root.AddCommand(newVersionCmd(stdout))
	return root
}

// runAndReport runs one job and prints its outcome. Processing errors are
// reported to the user and never escape as a process failure.
func runAndReport(ctx context.Context, opts renew.Options, p *printer) {
	report, err := renew.Run(ctx, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		logger := xglog.WithComponentFromContext(ctx, "cli")
		logger.Error().
			Err(err).
			Str(xglog.FieldEvent, "renew.failed").
			Str(xglog.FieldInputPath, opts.InputPath).
			Msg("normalization failed")
		p.failure(opts.InputPath, err)
		return
	}
	p.success(report)
}

func watchAndReport(ctx context.Context, cfg config.AppConfig, opts renew.Options, p *printer) error {
	lock, err := acquireOutputLock(cfg.OutputPath)
	if err != nil {
		return &exitError{code: exitConfig, err: fmt.Errorf("watch mode: %w", err)}
	}
	defer func() { _ = lock.Unlock() }()

	w, err := watch.New(cfg.InputPath, cfg.WatchDebounce, func(ctx context.Context) error {
		runAndReport(ctx, opts, p)
		return nil
	})
	if err != nil {
		return &exitError{code: exitConfig, err: fmt.Errorf("watch mode: %w", err)}
	}
	defer func() { _ = w.Close() }()

	p.watching(w.Path())
	return w.Run(ctx)
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(stdout, "m3urenew %s\n", version.String())
		},
	}
}
