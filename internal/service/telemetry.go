// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/go-sync-keeper/internal/adapter"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/models"
)

// Engine results recorded per run.
const (
	engineResultSynced   = "synced"
	engineResultDeclined = "declined"
	engineResultFailed   = "failed"
	engineResultExcluded = "excluded"
)

type syncTelemetry struct {
	remote adapter.SyncAdapter
	logger *logger.Logger

	runs        *prometheus.CounterVec
	engines     *prometheus.CounterVec
	lastSuccess prometheus.Gauge
}

// NewSyncTelemetry registers the sync metrics with reg and returns a
// TelemetryReporter that forwards payloads through remote.
func NewSyncTelemetry(remote adapter.SyncAdapter, reg prometheus.Registerer, log *logger.Logger) (TelemetryReporter, error) {
	t := &syncTelemetry{
		remote: remote,
		logger: log,
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sync_runs_total",
				Help: "Finished sync runs by remote status and resolved display state.",
			},
			[]string{"status", "display_state"},
		),
		engines: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sync_engine_results_total",
				Help: "Per-engine results of sync runs.",
			},
			[]string{"engine", "result"},
		),
		lastSuccess: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "sync_last_success_timestamp_seconds",
				Help: "Finish time of the last run that resolved to good.",
			},
		),
	}

	for _, c := range []prometheus.Collector{t.runs, t.engines, t.lastSuccess} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register sync metrics: %w", err)
		}
	}

	return t, nil
}

func (t *syncTelemetry) Observe(result models.SyncResult) {
	status := string(result.Outcome.Status)
	if status == "" {
		status = string(models.StatusOK)
	}
	t.runs.WithLabelValues(status, string(result.State)).Inc()

	synced := make(map[models.EngineName]bool, len(result.Outcome.SuccessfulEngines))
	for _, e := range result.Outcome.SuccessfulEngines {
		synced[e] = true
	}

	for _, e := range result.Attempted {
		res := engineResultFailed
		switch {
		case synced[e]:
			res = engineResultSynced
		case result.Outcome.IsDeclined(e):
			res = engineResultDeclined
		}
		t.engines.WithLabelValues(e.String(), res).Inc()
	}
	for _, e := range result.Excluded {
		t.engines.WithLabelValues(e.String(), engineResultExcluded).Inc()
	}

	if result.State == models.DisplayStateGood {
		t.lastSuccess.Set(float64(result.Finished.Unix()))
	}
}

func (t *syncTelemetry) Report(ctx context.Context, outcome models.SyncOutcome) error {
	if outcome.TelemetryPayload == "" {
		t.logger.Debug().Msg("no telemetry data was returned")
		return nil
	}

	t.logger.Debug().Int("size", len(outcome.TelemetryPayload)).Msg("reporting sync telemetry")
	return t.remote.ReportTelemetry(ctx, outcome.TelemetryPayload)
}
