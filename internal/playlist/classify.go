// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package playlist

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Classifier decides whether a comment line announces a playlist
// generation or update timestamp.
type Classifier interface {
	Name() string
	Matches(line string) bool
}

// PatternClassifier matches a line when its regular expression is found
// anywhere in it.
type PatternClassifier struct {
	name string
	re   *regexp.Regexp
}

// NewPatternClassifier compiles expr case-insensitively.
func NewPatternClassifier(name, expr string) (*PatternClassifier, error) {
	if name == "" {
		return nil, fmt.Errorf("classifier name must not be empty")
	}
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return nil, fmt.Errorf("compile classifier %q: %w", name, err)
	}
	return &PatternClassifier{name: name, re: re}, nil
}

// MustPatternClassifier is like NewPatternClassifier but panics on error.
func MustPatternClassifier(name, expr string) *PatternClassifier {
	c, err := NewPatternClassifier(name, expr)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *PatternClassifier) Name() string { return c.name }

func (c *PatternClassifier) Matches(line string) bool { return c.re.MatchString(line) }

// Built-in timestamp classifiers. Digits are any Unicode decimal digit, so
// full-width years match too.
var (
	UpdateTimeZH   = MustPatternClassifier("update-time-zh", `更新时间`)
	ISODate        = MustPatternClassifier("iso-date", `\p{Nd}{4}-\p{Nd}{2}-\p{Nd}{2}`)
	ClockTime      = MustPatternClassifier("clock-time", `\p{Nd}{2}:\p{Nd}{2}:\p{Nd}{2}`)
	UpdateTime     = MustPatternClassifier("update-time", `update.*time`)
	GeneratedYear  = MustPatternClassifier("generated-year", `generated.*\p{Nd}{4}`)
	LastUpdatedZH  = MustPatternClassifier("last-updated-zh", `最后更新`)
	LastUpdate     = MustPatternClassifier("last-update", `last.*update`)
	TimeWithYearZH = MustPatternClassifier("time-year-zh", `时间.*\p{Nd}{4}`)
)

// DefaultClassifiers returns the built-in classifier set in evaluation order.
func DefaultClassifiers() []Classifier {
	return []Classifier{
		UpdateTimeZH,
		ISODate,
		ClockTime,
		UpdateTime,
		GeneratedYear,
		LastUpdatedZH,
		LastUpdate,
		TimeWithYearZH,
	}
}

// IsComment reports whether line starts with '#' after leading whitespace
// and an optional byte order mark.
func IsComment(line string) bool {
	return strings.HasPrefix(strings.TrimLeftFunc(line, isLeadingSpace), "#")
}

func isLeadingSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Classify returns the name of the first classifier matching a comment line.
// Non-comment lines never match.
func Classify(line string, classifiers []Classifier) (string, bool) {
	if !IsComment(line) {
		return "", false
	}
	for _, c := range classifiers {
		if c.Matches(line) {
			return c.Name(), true
		}
	}
	return "", false
}

// IsStrayLink reports whether a line following a timestamp announcement is a
// bare URL or banner link that should be dropped with it.
func IsStrayLink(line string) bool {
	s := strings.TrimSpace(line)
	if s == "" || strings.HasPrefix(s, "#") {
		return false
	}
	return strings.HasPrefix(s, "http") || strings.Contains(s, "://")
}
