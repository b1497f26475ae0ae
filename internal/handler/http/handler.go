// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/service"
	"github.com/MKhiriev/go-sync-keeper/internal/validators"
	"github.com/MKhiriev/go-sync-keeper/models"
)

// AccountStore keeps the account state handed over by the host.
type AccountStore interface {
	SaveAccount(ctx context.Context, account models.AccountState) error
}

type Handler struct {
	orchestrator service.SyncOrchestrator
	accounts     AccountStore
	validator    validators.Validator
	metrics      http.Handler
	authToken    string

	logger *logger.Logger
}

// NewHandler builds the control API handler. Metrics are served from
// gatherer; an empty authToken disables authentication.
func NewHandler(
	orchestrator service.SyncOrchestrator,
	accounts AccountStore,
	gatherer prometheus.Gatherer,
	authToken string,
	logger *logger.Logger,
) *Handler {
	logger.Info().Bool("auth", authToken != "").Msg("http handler created")
	return &Handler{
		orchestrator: orchestrator,
		accounts:     accounts,
		validator:    validators.NewAccountValidator(),
		metrics:      promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
		authToken:    authToken,
		logger:       logger,
	}
}
