// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package playlist

// FilterStats counts the lines dropped by a Filter.
type FilterStats struct {
	TimestampLines int
	StrayLinks     int
	// ByClassifier attributes each timestamp line to the first classifier that matched it.
	ByClassifier map[string]int
}

// Filter removes timestamp announcements and the stray link line directly
// below each of them.
type Filter struct {
	classifiers []Classifier
}

// NewFilter returns a Filter using the given classifiers, or the defaults when none are given.
func NewFilter(classifiers ...Classifier) *Filter {
	if len(classifiers) == 0 {
		classifiers = DefaultClassifiers()
	}
	return &Filter{classifiers: classifiers}
}

// Lines returns the retained lines in their original order. The input slice
// is not modified.
func (f *Filter) Lines(lines []string) ([]string, FilterStats) {
	stats := FilterStats{ByClassifier: make(map[string]int)}
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		current := lines[i]
		name, ok := Classify(current, f.classifiers)
		if !ok {
			out = append(out, current)
			continue
		}
		stats.TimestampLines++
		stats.ByClassifier[name]++

		// The link below a timestamp is consumed here and never classified itself.
		if next, ok := lookahead(lines, i); ok && IsStrayLink(next) {
			stats.StrayLinks++
			i++
		}
	}
	return out, stats
}

func lookahead(lines []string, i int) (string, bool) {
	if i+1 >= len(lines) {
		return "", false
	}
	return lines[i+1], true
}
