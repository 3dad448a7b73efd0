// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ManuGH/m3urenew/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := NewLoader("", "v1.2.3").Load()
	require.NoError(t, err)

	want := Defaults()
	want.Version = "v1.2.3"
	assert.Equal(t, want, cfg)
	assert.Equal(t, "./output/result.m3u", cfg.InputPath)
	assert.Equal(t, "./output/url.m3u", cfg.OutputPath)
	assert.Equal(t, []string{"gbk"}, cfg.EncodingFallbacks)
	assert.Equal(t, "频道", cfg.GroupTitle)
	assert.True(t, cfg.CollapseBlankLines)
}

func TestLoad_File(t *testing.T) {
	cfg, err := NewLoader(filepath.Join("testdata", "full.yaml"), "dev").Load()
	require.NoError(t, err)

	assert.Equal(t, "./playlists/source.m3u", cfg.InputPath)
	assert.Equal(t, "./playlists/clean.m3u", cfg.OutputPath)
	assert.Equal(t, []string{"gb18030", "big5"}, cfg.EncodingFallbacks)
	assert.Equal(t, "全部", cfg.GroupTitle)
	assert.False(t, cfg.CollapseBlankLines)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "./metrics/m3urenew.prom", cfg.MetricsTextfile)
	assert.Equal(t, 2*time.Second, cfg.WatchDebounce)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	cfg, err := NewLoader(filepath.Join("testdata", "partial.yml"), "dev").Load()
	require.NoError(t, err)

	assert.Equal(t, "Channels", cfg.GroupTitle)
	assert.Equal(t, DefaultInputPath, cfg.InputPath)
	assert.True(t, cfg.CollapseBlankLines)
	assert.Equal(t, DefaultWatchDebounce, cfg.WatchDebounce)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := NewLoader(filepath.Join("testdata", "empty.yaml"), "dev").Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultOutputPath, cfg.OutputPath)
}

func TestLoad_Precedence(t *testing.T) {
	t.Setenv(EnvInput, "./env/input.m3u")
	t.Setenv(EnvGroupTitle, "Env")
	t.Setenv(EnvEncodingFallbacks, " gb18030 , ,big5")
	t.Setenv(EnvCollapseBlanks, "yes")

	loader := NewLoader(filepath.Join("testdata", "full.yaml"), "dev").
		WithOverride(func(c *AppConfig) { c.GroupTitle = "Flag" })

	cfg, err := loader.Load()
	require.NoError(t, err)

	// flag beats env beats file
	assert.Equal(t, "Flag", cfg.GroupTitle)
	// env beats file
	assert.Equal(t, "./env/input.m3u", cfg.InputPath)
	assert.Equal(t, []string{"gb18030", "big5"}, cfg.EncodingFallbacks)
	assert.True(t, cfg.CollapseBlankLines)
	// file beats defaults
	assert.Equal(t, "./playlists/clean.m3u", cfg.OutputPath)

	assert.Contains(t, loader.ConsumedEnvKeys, EnvInput)
	assert.Contains(t, loader.ConsumedEnvKeys, EnvWatchDebounce)
}

func TestLoader_UnknownEnvKeys(t *testing.T) {
	t.Setenv(EnvGroupTitle, "Env")
	t.Setenv("M3URENEW_GROUP_TITEL", "typo")
	t.Setenv("M3URENEW_DEBUG", "1")
	t.Setenv("OTHER_GROUP_TITLE", "ignored")

	loader := NewLoader("", "dev")
	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "Env", cfg.GroupTitle)

	assert.Equal(t, []string{"M3URENEW_DEBUG", "M3URENEW_GROUP_TITEL"}, loader.UnknownEnvKeys())
}

func TestLoader_UnknownEnvKeys_SkipsConsumed(t *testing.T) {
	t.Setenv(EnvInput, "./in.m3u")

	loader := NewLoader("", "dev")
	_, err := loader.Load()
	require.NoError(t, err)
	assert.NotContains(t, loader.UnknownEnvKeys(), EnvInput)
}

func TestLoad_FileErrors(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		target error
	}{
		{"unknown key", "unknown_key.yaml", ErrUnknownConfigField},
		{"not yaml", "config.toml", ErrUnsupportedFormat},
		{"missing", "does_not_exist.yaml", os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(filepath.Join("testdata", tt.file), "dev").Load()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
		})
	}
}

func TestLoad_MultipleDocumentsRejected(t *testing.T) {
	_, err := NewLoader(filepath.Join("testdata", "multi_doc.yaml"), "dev").Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiple documents")
}

func TestLoad_BadDebounceInFile(t *testing.T) {
	_, err := NewLoader(filepath.Join("testdata", "bad_debounce.yaml"), "dev").Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch_debounce")
}

func TestLoad_ValidationFailure(t *testing.T) {
	t.Setenv(EnvOutput, DefaultInputPath)
	t.Setenv(EnvLogLevel, "chatty")

	_, err := NewLoader("", "dev").Load()
	require.Error(t, err)

	var verr validate.ValidationError
	require.True(t, errors.As(err, &verr))
	fields := make([]string, 0, len(verr.Errors()))
	for _, e := range verr.Errors() {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"output_path", "log_level"}, fields)
}

func TestDump_RoundTrip(t *testing.T) {
	cfg, err := NewLoader(filepath.Join("testdata", "full.yaml"), "dev").Load()
	require.NoError(t, err)

	out, err := Dump(cfg)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "dump.yaml")
	require.NoError(t, os.WriteFile(path, out, 0o600))

	again, err := NewLoader(path, "dev").Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}
