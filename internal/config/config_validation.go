// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Server-side requirements (DSN, token sign key) are enforced lazily by the
// components that need them, so a client process can run from the same
// config without carrying server secrets.
func (cfg *StructuredConfig) validate() error {
	if cfg.Sync.Network != NetworkAny && cfg.Sync.Network != NetworkUnmetered {
		return ErrInvalidSyncConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.Path == "" || strings.Contains(cfg.Storage.DB.Path, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.BaseURL == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Sync.Interval <= 0 || cfg.Sync.BatchSize <= 0 {
		return ErrInvalidSyncConfigs
	}

	return nil
}
