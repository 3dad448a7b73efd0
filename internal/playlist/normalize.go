// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package playlist normalizes M3U playlist text: it drops timestamp
// announcements (and the link line under them) and rewrites every
// group-title to a single label.
package playlist

import (
	"strings"
)

// Stats summarizes one normalization.
type Stats struct {
	OriginalLines  int
	ProcessedLines int
	RemovedLines   int
	FilterStats
	RewriteStats
}

// Result is the normalized text together with its statistics.
type Result struct {
	Text  string
	Stats Stats
}

type options struct {
	classifiers    []Classifier
	groupTitle     string
	collapseBlanks bool
}

// Option configures a Normalizer.
type Option func(*options)

// WithClassifiers replaces the default timestamp classifiers.
func WithClassifiers(classifiers ...Classifier) Option {
	return func(o *options) { o.classifiers = classifiers }
}

// WithGroupTitle sets the label written into every group-title attribute.
func WithGroupTitle(label string) Option {
	return func(o *options) { o.groupTitle = label }
}

// WithBlankCollapse toggles collapsing of 3+ consecutive blank lines.
func WithBlankCollapse(enabled bool) Option {
	return func(o *options) { o.collapseBlanks = enabled }
}

// Normalizer runs the line filter followed by the attribute rewriter.
type Normalizer struct {
	filter   *Filter
	rewriter *Rewriter
}

// New builds a Normalizer. It fails only for an invalid group-title label.
func New(opts ...Option) (*Normalizer, error) {
	o := options{groupTitle: DefaultGroupTitle, collapseBlanks: true}
	for _, opt := range opts {
		opt(&o)
	}
	rw, err := NewRewriter(o.groupTitle, o.collapseBlanks)
	if err != nil {
		return nil, err
	}
	return &Normalizer{
		filter:   NewFilter(o.classifiers...),
		rewriter: rw,
	}, nil
}

var defaultNormalizer, _ = New()

// Normalize runs the default pipeline on text.
func Normalize(text string) Result {
	return defaultNormalizer.Normalize(text)
}

// lineEndings folds "\r\n" and lone "\r" into "\n".
var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Normalize filters then rewrites text. Line endings are folded to "\n" first,
// so the output always uses "\n" and the line counts follow the folded text.
func (n *Normalizer) Normalize(text string) Result {
	text = lineEndings.Replace(text)
	kept, fstats := n.filter.Lines(strings.Split(text, "\n"))
	out, rstats := n.rewriter.Rewrite(strings.Join(kept, "\n"))

	stats := Stats{
		OriginalLines:  CountLines(text),
		ProcessedLines: CountLines(out),
		FilterStats:    fstats,
		RewriteStats:   rstats,
	}
	stats.RemovedLines = stats.OriginalLines - stats.ProcessedLines
	return Result{Text: out, Stats: stats}
}

// CountLines counts lines the way a line-oriented reader would: a final line
// without a trailing newline still counts.
func CountLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}
