// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package playlist

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestFilterLines(t *testing.T) {
	tests := []struct {
		name       string
		in         []string
		want       []string
		timestamps int
		strays     int
	}{
		{
			name: "timestamp followed by banner url",
			in: []string{
				"#EXTM3U 更新时间: 2024-01-15 12:00:00",
				"http://example.com/banner",
				"#EXTINF:-1,A",
				"http://a",
			},
			want:       []string{"#EXTINF:-1,A", "http://a"},
			timestamps: 1,
			strays:     1,
		},
		{
			name:       "timestamp at end of input",
			in:         []string{"#EXTINF:-1,A", "http://a", "# Generated 2024"},
			want:       []string{"#EXTINF:-1,A", "http://a"},
			timestamps: 1,
		},
		{
			name:       "next line is a directive and is kept",
			in:         []string{"# Last update", "#EXTINF:-1,A", "http://a"},
			want:       []string{"#EXTINF:-1,A", "http://a"},
			timestamps: 1,
		},
		{
			name:       "next line is plain text and is kept",
			in:         []string{"# 最后更新", "welcome banner", "#EXTINF:-1,A"},
			want:       []string{"welcome banner", "#EXTINF:-1,A"},
			timestamps: 1,
		},
		{
			name:       "next line is blank and is kept",
			in:         []string{"# 最后更新", "", "#EXTINF:-1,A"},
			want:       []string{"", "#EXTINF:-1,A"},
			timestamps: 1,
		},
		{
			name:       "padded scheme-only link is dropped",
			in:         []string{"# Updated time", "   rtmp://live/x  ", "#EXTINF:-1,A"},
			want:       []string{"#EXTINF:-1,A"},
			timestamps: 1,
			strays:     1,
		},
		{
			name: "adjacent timestamps are each removed",
			in: []string{
				"# 更新时间",
				"# Last update 2024",
				"http://banner",
				"#EXTINF:-1,C",
				"http://c",
			},
			want:       []string{"#EXTINF:-1,C", "http://c"},
			timestamps: 2,
			strays:     1,
		},
		{
			name:       "only one line of lookahead is consumed",
			in:         []string{"# 更新时间", "http://banner", "http://kept"},
			want:       []string{"http://kept"},
			timestamps: 1,
			strays:     1,
		},
		{
			name:       "suppressed line is never classified",
			in:         []string{"# 更新时间", "http://x/# Generated 2024", "#EXTM3U"},
			want:       []string{"#EXTM3U"},
			timestamps: 1,
			strays:     1,
		},
		{
			name: "non comment lines with dates are kept",
			in:   []string{"#EXTINF:-1,News", "http://x/2024-01-15/12:00:00.ts"},
			want: []string{"#EXTINF:-1,News", "http://x/2024-01-15/12:00:00.ts"},
		},
		{
			name: "empty document",
			in:   []string{""},
			want: []string{""},
		},
	}

	f := NewFilter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, stats := f.Lines(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.timestamps, stats.TimestampLines)
			assert.Equal(t, tt.strays, stats.StrayLinks)
		})
	}
}

func TestFilterLines_PreservesNonTimestampLines(t *testing.T) {
	in := []string{
		"#EXTM3U",
		"#EXTINF:-1 tvg-id=\"a\",A",
		"  http://a  ",
		"# 更新时间 2024",
		"https://banner",
		"",
		"#EXTINF:-1,B",
		"http://b\r",
	}
	got, _ := NewFilter().Lines(in)

	want := []string{"#EXTM3U", "#EXTINF:-1 tvg-id=\"a\",A", "  http://a  ", "", "#EXTINF:-1,B", "http://b\r"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "# 更新时间 2024", in[3], "input must not be modified")
}

func TestFilterLines_ByClassifier(t *testing.T) {
	in := []string{
		"# 更新时间",
		"# 2024-01-01",
		"# Generated 2024",
		"#EXTINF:-1,A",
		"# generated 1999",
	}
	_, stats := NewFilter().Lines(in)

	assert.Equal(t, map[string]int{
		"update-time-zh": 1,
		"iso-date":       1,
		"generated-year": 2,
	}, stats.ByClassifier)
}

func TestFilterLines_CustomClassifiers(t *testing.T) {
	only := MustPatternClassifier("banner", "banner")
	got, stats := NewFilter(only).Lines([]string{"# banner", "http://x", "# 更新时间"})

	assert.Equal(t, []string{"# 更新时间"}, got)
	assert.Equal(t, 1, stats.TimestampLines)
	assert.Equal(t, 1, stats.StrayLinks)
}
