// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRunID = "run_id"

	// Process / pipeline fields
	FieldEvent     = "event"
	FieldComponent = "component"

	// Path fields
	FieldPath       = "path"
	FieldInputPath  = "input_path"
	FieldOutputPath = "output_path"

	// Playlist fields
	FieldEncoding       = "encoding"
	FieldOriginalLines  = "original_lines"
	FieldProcessedLines = "processed_lines"
	FieldRemovedLines   = "removed_lines"
	FieldDurationMS     = "duration_ms"
)
