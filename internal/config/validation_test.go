// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"errors"
	"testing"

	"github.com/ManuGH/m3urenew/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*AppConfig)
		wantField string
	}{
		{"defaults", func(*AppConfig) {}, ""},
		{"empty input", func(c *AppConfig) { c.InputPath = " " }, "input_path"},
		{"empty output", func(c *AppConfig) { c.OutputPath = "" }, "output_path"},
		{"same paths", func(c *AppConfig) { c.OutputPath = "output/result.m3u" }, "output_path"},
		{"unknown encoding", func(c *AppConfig) { c.EncodingFallbacks = []string{"gbk", "klingon"} }, "encoding_fallbacks"},
		{"gb2312 alias", func(c *AppConfig) { c.EncodingFallbacks = []string{"gb2312"} }, ""},
		{"quote in label", func(c *AppConfig) { c.GroupTitle = `a"b` }, "group_title"},
		{"empty label", func(c *AppConfig) { c.GroupTitle = "" }, "group_title"},
		{"bad log level", func(c *AppConfig) { c.LogLevel = "loud" }, "log_level"},
		{"zero debounce", func(c *AppConfig) { c.WatchDebounce = 0 }, "watch_debounce"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)

			err := Validate(cfg)
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}

			var verr validate.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			require.Len(t, verr.Errors(), 1)
			assert.Equal(t, tt.wantField, verr.Errors()[0].Field)
		})
	}
}
