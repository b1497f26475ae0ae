// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"strings"
	"time"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Currently a no-op; the client view carries the real rules.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.IdentityAddress == "" || cfg.Adapter.SyncAddress == "" {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval < time.Minute {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.HashKey == "" || cfg.App.ClientID == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
