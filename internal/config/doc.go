// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package config loads the m3urenew configuration.
//
// Values are resolved with the precedence flags > environment > file > defaults.
// Flags are applied by the caller through Loader.WithOverride; the file is
// strict YAML and unknown keys are rejected with ErrUnknownConfigField.
package config
