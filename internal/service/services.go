// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/go-sync-keeper/internal/adapter"
	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/store"
)

// Services groups the sync client's business layer.
type Services struct {
	Credentials  CredentialCache
	Engines      EngineRegistry
	EnginePrefs  EnginePreferenceStore
	Telemetry    TelemetryReporter
	Orchestrator SyncOrchestrator
}

// NewServices wires the orchestrator and its collaborators on top of
// storages and adapters. Metrics are registered with reg.
func NewServices(
	cfg *config.ClientConfig,
	storages *store.Storages,
	adapters *adapter.Adapters,
	reg prometheus.Registerer,
	log *logger.Logger,
) (*Services, error) {
	telemetry, err := NewSyncTelemetry(adapters.Sync, reg, log)
	if err != nil {
		return nil, fmt.Errorf("create telemetry: %w", err)
	}

	engines := NewEngineRegistry(log)
	RegisterDefaultEngines(engines, storages.Keychain, log)

	credentials := NewCredentialCache(adapters.Identity, adapters.TokenServer, storages.Prefs, storages.Keychain, log)
	enginePrefs := NewEnginePreferenceStore(storages.Prefs, log)

	orchestrator := NewSyncOrchestrator(OrchestratorDeps{
		Identity:    adapters.Identity,
		Remote:      adapters.Sync,
		Credentials: credentials,
		Engines:     engines,
		EnginePrefs: enginePrefs,
		Prefs:       storages.Prefs,
		Telemetry:   telemetry,
	}, cfg, log)

	return &Services{
		Credentials:  credentials,
		Engines:      engines,
		EnginePrefs:  enginePrefs,
		Telemetry:    telemetry,
		Orchestrator: orchestrator,
	}, nil
}
