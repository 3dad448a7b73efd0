// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"os"
	"sort"
	"strings"

	"github.com/ManuGH/m3urenew/internal/log"
)

// EnvPrefix is shared by every environment variable the loader reads.
const EnvPrefix = "M3URENEW_"

// UnknownEnvKeys lists the M3URENEW_* variables in the environment that the
// loader never consumed (dead flags or typos), sorted. Call it after Load.
func (l *Loader) UnknownEnvKeys() []string {
	unknown := make([]string, 0)
	for _, pair := range os.Environ() {
		key := strings.SplitN(pair, "=", 2)[0]
		if !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		if _, consumed := l.ConsumedEnvKeys[key]; consumed {
			continue
		}
		unknown = append(unknown, key)
	}
	sort.Strings(unknown)
	return unknown
}

// warnUnknownEnvKeys logs every unconsumed M3URENEW_* key.
func (l *Loader) warnUnknownEnvKeys() {
	unknown := l.UnknownEnvKeys()
	if len(unknown) == 0 {
		return
	}
	logger := log.WithComponent("config")
	for _, key := range unknown {
		logger.Warn().
			Str(log.FieldEvent, "config.unknown_env").
			Str("key", key).
			Msg("unknown M3URENEW env key detected (dead flag or typo)")
	}
}
