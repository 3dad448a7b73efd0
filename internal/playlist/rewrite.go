// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package playlist

import (
	"errors"
	"regexp"
	"strings"
)

// DefaultGroupTitle is the label every group-title is rewritten to.
const DefaultGroupTitle = "频道"

const groupTitleKey = "group-title="

// space matches what Unicode-aware "\s" does: ASCII whitespace, \v, the
// \x1c-\x1f separators, NEL and every Z category rune.
const space = `\s\v\x{1c}-\x{1f}\x{85}\p{Z}`

var (
	// Alternatives are tried in order at each position: a quoted value (which
	// may run across lines up to the next quote), an unterminated quote, then
	// a bare token. A value that was already rewritten is therefore only ever
	// seen as quoted.
	groupTitle = regexp.MustCompile(`group-title=(?:"[^"]*"|"[^` + space + `,"]*|[^` + space + `,"][^` + space + `,]*)`)
	blankRun   = regexp.MustCompile(`\n[` + space + `]*\n[` + space + `]*\n`)
)

// ErrInvalidGroupTitle is returned for labels that cannot be written as a quoted attribute value.
var ErrInvalidGroupTitle = errors.New("invalid group-title label")

// ValidateGroupTitle checks that label can be emitted inside double quotes on one line.
func ValidateGroupTitle(label string) error {
	if label == "" || strings.ContainsAny(label, "\"\r\n") {
		return ErrInvalidGroupTitle
	}
	return nil
}

// RewriteStats counts the substitutions made by a Rewriter.
type RewriteStats struct {
	QuotedGroupTitles   int
	UnquotedGroupTitles int
	CollapsedBlankRuns  int
}

// Rewriter normalizes group-title values and squeezes blank line runs.
type Rewriter struct {
	replacement    string
	collapseBlanks bool
}

// NewRewriter returns a Rewriter that writes label into every group-title.
func NewRewriter(label string, collapseBlanks bool) (*Rewriter, error) {
	if err := ValidateGroupTitle(label); err != nil {
		return nil, err
	}
	return &Rewriter{
		replacement:    groupTitleKey + `"` + label + `"`,
		collapseBlanks: collapseBlanks,
	}, nil
}

// Rewrite replaces every group-title value (quoted first, then unquoted) and
// then collapses runs of blank lines into a single blank line.
func (r *Rewriter) Rewrite(text string) (string, RewriteStats) {
	var stats RewriteStats

	text = groupTitle.ReplaceAllStringFunc(text, func(m string) string {
		if isQuotedValue(m[len(groupTitleKey):]) {
			stats.QuotedGroupTitles++
		} else {
			stats.UnquotedGroupTitles++
		}
		return r.replacement
	})

	if r.collapseBlanks {
		stats.CollapsedBlankRuns = len(blankRun.FindAllStringIndex(text, -1))
		text = blankRun.ReplaceAllLiteralString(text, "\n\n")
	}
	return text, stats
}

func isQuotedValue(v string) bool {
	return len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"'
}
