// SPDX-License-Identifier: MIT
package validate

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_NotEmpty(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"value", "./output/url.m3u", false},
		{"empty", "", true},
		{"whitespace", "  \t", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.NotEmpty("input_path", tt.value)
			assert.Equal(t, !tt.wantErr, v.IsValid())
		})
	}
}

func TestValidator_LogLevel(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"trace", false},
		{"info", false},
		{"error", false},
		{"verbose", true},
		{"INFO", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			v := New()
			v.LogLevel("log_level", tt.value)
			require.Equal(t, !tt.wantErr, v.IsValid())
			if tt.wantErr {
				assert.Equal(t, "log_level", v.Errors()[0].Field)
				assert.Contains(t, v.Errors()[0].Message, ErrInvalidLogLevel.Message)
				assert.Contains(t, v.Errors()[0].Message, fmt.Sprintf("got %q", tt.value))
			}
		})
	}
}

func TestValidator_PositiveDuration(t *testing.T) {
	v := New()
	v.PositiveDuration("watch_debounce", 500*time.Millisecond)
	assert.True(t, v.IsValid())

	v.PositiveDuration("watch_debounce", 0)
	v.PositiveDuration("watch_debounce", -time.Second)
	assert.Len(t, v.Errors(), 2)
}

func TestValidator_DistinctPaths(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		wantErr bool
	}{
		{"different files", "./output/result.m3u", "./output/url.m3u", false},
		{"same file", "./output/result.m3u", "output/result.m3u", true},
		{"dot segments", "output/../output/a.m3u", "output/a.m3u", true},
		{"empty skipped", "", "output/a.m3u", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.DistinctPaths("output_path", tt.a, tt.b)
			assert.Equal(t, !tt.wantErr, v.IsValid())
		})
	}
}

func TestValidator_Custom(t *testing.T) {
	v := New()
	v.Custom("group_title", "bad\"label", func(value interface{}) error {
		if strings.Contains(value.(string), `"`) {
			return errors.New("must not contain quotes")
		}
		return nil
	})
	require.Len(t, v.Errors(), 1)
	assert.Equal(t, "group_title", v.Errors()[0].Field)
}

func TestValidator_Err(t *testing.T) {
	v := New()
	require.NoError(t, v.Err())

	v.NotEmpty("input_path", "")
	v.NotEmpty("output_path", "")
	err := v.Err()
	require.Error(t, err)

	var verr ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Errors(), 2)
	assert.Equal(t,
		"validation failed for input_path: value cannot be empty; validation failed for output_path: value cannot be empty",
		err.Error())

	// Later additions must not leak into an error already returned.
	v.NotEmpty("group_title", "")
	assert.Len(t, verr.Errors(), 2)
}

func TestParseLogLevel(t *testing.T) {
	for _, s := range LogLevels {
		lvl, err := ParseLogLevel(s)
		require.NoError(t, err)
		assert.Equal(t, s, lvl.String())
	}

	_, err := ParseLogLevel("INFO")
	assert.Equal(t, ErrInvalidLogLevel, err)
	assert.False(t, LogLevel("INFO").IsValid())
}
