// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"fmt"

	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/store"
)

// Adapters groups the remote collaborators of the sync client.
type Adapters struct {
	Identity    IdentityProvider
	TokenServer TokenServerAdapter
	Sync        SyncAdapter
}

// NewAdapters builds the HTTP adapters from cfg. Account state is kept in
// keychain.
func NewAdapters(cfg *config.ClientConfig, keychain store.Keychain, log *logger.Logger) (*Adapters, error) {
	identity, err := NewHTTPIdentityProvider(cfg.Adapter, cfg.App, keychain, log)
	if err != nil {
		return nil, fmt.Errorf("create identity provider: %w", err)
	}

	syncAdapter, err := NewHTTPSyncAdapter(cfg.Adapter, log)
	if err != nil {
		return nil, fmt.Errorf("create sync adapter: %w", err)
	}

	return &Adapters{
		Identity:    identity,
		TokenServer: NewHTTPTokenServerAdapter(cfg.Adapter, log),
		Sync:        syncAdapter,
	}, nil
}
