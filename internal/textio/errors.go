// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package textio

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDecode classifies inputs that are valid in none of the configured encodings.
	// Use errors.Is(err, ErrDecode) instead of type assertions where the details are not needed.
	ErrDecode = errors.New("cannot decode input")

	// ErrNotFound classifies a missing input file. Errors carrying it also match fs.ErrNotExist.
	ErrNotFound = errors.New("input file not found")

	// ErrUnknownEncoding is returned when a fallback encoding name cannot be resolved.
	ErrUnknownEncoding = errors.New("unknown encoding")
)

// DecodingError reports the encodings that were tried for an input.
type DecodingError struct {
	Path  string
	Tried []string
}

func (e *DecodingError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v (tried %s)", ErrDecode, strings.Join(e.Tried, ", "))
	}
	return fmt.Sprintf("%s: %v (tried %s)", e.Path, ErrDecode, strings.Join(e.Tried, ", "))
}

func (e *DecodingError) Is(target error) bool { return target == ErrDecode }

// NotFoundError wraps the underlying stat/open error for a missing input.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%v: %s", ErrNotFound, e.Path) }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func (e *NotFoundError) Unwrap() error { return e.Err }
