// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package textio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	xglog "github.com/ManuGH/m3urenew/internal/log"
)

// WriteFile writes text to path as UTF-8, replacing any existing file only
// once the complete content is on disk. Missing parent directories are created.
func WriteFile(ctx context.Context, path string, text string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := writeAtomic(ctx, path, []byte(text)); err != nil {
		return err
	}
	xglog.FromContext(ctx).Debug().
		Str(xglog.FieldEvent, "textio.written").
		Str(xglog.FieldPath, path).
		Int("bytes", len(text)).
		Msg("wrote file")
	return nil
}
