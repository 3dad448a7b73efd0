// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"time"

	"github.com/ManuGH/m3urenew/internal/playlist"
	"github.com/ManuGH/m3urenew/internal/textio"
)

const (
	DefaultInputPath     = "./output/result.m3u"
	DefaultOutputPath    = "./output/url.m3u"
	DefaultLogLevel      = "info"
	DefaultWatchDebounce = 500 * time.Millisecond
)

// Defaults returns the built-in configuration.
func Defaults() AppConfig {
	return AppConfig{
		InputPath:          DefaultInputPath,
		OutputPath:         DefaultOutputPath,
		EncodingFallbacks:  append([]string(nil), textio.DefaultFallbacks...),
		GroupTitle:         playlist.DefaultGroupTitle,
		CollapseBlankLines: true,
		LogLevel:           DefaultLogLevel,
		WatchDebounce:      DefaultWatchDebounce,
	}
}
