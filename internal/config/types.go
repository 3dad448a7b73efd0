// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import "time"

// Environment variable names.
const (
	EnvInput             = "M3URENEW_INPUT"
	EnvOutput            = "M3URENEW_OUTPUT"
	EnvEncodingFallbacks = "M3URENEW_ENCODING_FALLBACKS"
	EnvGroupTitle        = "M3URENEW_GROUP_TITLE"
	EnvLogLevel          = "M3URENEW_LOG_LEVEL"
	EnvMetricsTextfile   = "M3URENEW_METRICS_TEXTFILE"
	EnvWatchDebounce     = "M3URENEW_WATCH_DEBOUNCE"
	EnvCollapseBlanks    = "M3URENEW_COLLAPSE_BLANKS"
)

// AppConfig is the effective runtime configuration.
type AppConfig struct {
	Version string

	InputPath         string
	OutputPath        string
	EncodingFallbacks []string

	GroupTitle         string
	CollapseBlankLines bool

	LogLevel        string
	MetricsTextfile string
	WatchDebounce   time.Duration
}

// FileConfig is the on-disk YAML representation. Pointer fields distinguish
// "not set" from the zero value so that defaults survive partial files.
type FileConfig struct {
	InputPath          string   `yaml:"input_path,omitempty"`
	OutputPath         string   `yaml:"output_path,omitempty"`
	EncodingFallbacks  []string `yaml:"encoding_fallbacks,omitempty"`
	GroupTitle         string   `yaml:"group_title,omitempty"`
	CollapseBlankLines *bool    `yaml:"collapse_blank_lines,omitempty"`
	LogLevel           string   `yaml:"log_level,omitempty"`
	MetricsTextfile    string   `yaml:"metrics_textfile,omitempty"`
	WatchDebounce      string   `yaml:"watch_debounce,omitempty"`
}

// ToFile converts the effective configuration back into its YAML form.
func (c AppConfig) ToFile() FileConfig {
	collapse := c.CollapseBlankLines
	fc := FileConfig{
		InputPath:          c.InputPath,
		OutputPath:         c.OutputPath,
		EncodingFallbacks:  append([]string(nil), c.EncodingFallbacks...),
		GroupTitle:         c.GroupTitle,
		CollapseBlankLines: &collapse,
		LogLevel:           c.LogLevel,
		MetricsTextfile:    c.MetricsTextfile,
	}
	if c.WatchDebounce > 0 {
		fc.WatchDebounce = c.WatchDebounce.String()
	}
	return fc
}
