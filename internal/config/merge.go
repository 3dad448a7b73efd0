// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"
	"time"
)

// mergeFileConfig copies every key present in the file over cfg.
func mergeFileConfig(cfg *AppConfig, fc *FileConfig) error {
	if fc == nil {
		return nil
	}
	if fc.InputPath != "" {
		cfg.InputPath = fc.InputPath
	}
	if fc.OutputPath != "" {
		cfg.OutputPath = fc.OutputPath
	}
	if fc.EncodingFallbacks != nil {
		cfg.EncodingFallbacks = append([]string(nil), fc.EncodingFallbacks...)
	}
	if fc.GroupTitle != "" {
		cfg.GroupTitle = fc.GroupTitle
	}
	if fc.CollapseBlankLines != nil {
		cfg.CollapseBlankLines = *fc.CollapseBlankLines
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.MetricsTextfile != "" {
		cfg.MetricsTextfile = fc.MetricsTextfile
	}
	if fc.WatchDebounce != "" {
		d, err := time.ParseDuration(fc.WatchDebounce)
		if err != nil {
			return fmt.Errorf("watch_debounce: %w", err)
		}
		cfg.WatchDebounce = d
	}
	return nil
}

// mergeEnvConfig applies M3URENEW_* variables on top of cfg.
func (l *Loader) mergeEnvConfig(cfg *AppConfig) {
	cfg.InputPath = l.envString(EnvInput, cfg.InputPath)
	cfg.OutputPath = l.envString(EnvOutput, cfg.OutputPath)
	cfg.EncodingFallbacks = l.envList(EnvEncodingFallbacks, cfg.EncodingFallbacks)
	cfg.GroupTitle = l.envString(EnvGroupTitle, cfg.GroupTitle)
	cfg.CollapseBlankLines = l.envBool(EnvCollapseBlanks, cfg.CollapseBlankLines)
	cfg.LogLevel = l.envString(EnvLogLevel, cfg.LogLevel)
	cfg.MetricsTextfile = l.envString(EnvMetricsTextfile, cfg.MetricsTextfile)
	cfg.WatchDebounce = l.envDuration(EnvWatchDebounce, cfg.WatchDebounce)
}
