// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"github.com/ManuGH/m3urenew/internal/playlist"
	"github.com/ManuGH/m3urenew/internal/textio"
	"github.com/ManuGH/m3urenew/internal/validate"
)

// Validate checks the effective configuration and returns a
// validate.ValidationError listing every problem found.
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.NotEmpty("input_path", cfg.InputPath)
	v.NotEmpty("output_path", cfg.OutputPath)
	v.DistinctPaths("output_path", cfg.OutputPath, cfg.InputPath)

	for _, label := range cfg.EncodingFallbacks {
		v.Custom("encoding_fallbacks", label, func(value interface{}) error {
			_, _, err := textio.ResolveEncoding(value.(string))
			return err
		})
	}

	v.Custom("group_title", cfg.GroupTitle, func(value interface{}) error {
		return playlist.ValidateGroupTitle(value.(string))
	})

	v.LogLevel("log_level", cfg.LogLevel)
	v.PositiveDuration("watch_debounce", cfg.WatchDebounce)

	return v.Err()
}
