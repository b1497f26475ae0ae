// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
	"github.com/MKhiriev/go-sync-keeper/models"
)

type httpSyncAdapter struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPSyncAdapter constructs a [SyncAdapter] for the sync service at
// adapterCfg.SyncAddress.
//
// Returns an error if the address cannot be parsed as a URL.
func NewHTTPSyncAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (SyncAdapter, error) {
	baseURL, err := utils.NormalizeBaseURL(adapterCfg.SyncAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid sync address: %w", err)
	}

	return &httpSyncAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}, nil
}

// Sync implements [SyncAdapter]. It POSTs req to /api/sync/run authenticated
// with the token-server token id and decodes the [models.SyncOutcome].
func (a *httpSyncAdapter) Sync(ctx context.Context, cred models.CachedCredential, req models.SyncRunRequest) (models.SyncOutcome, error) {
	resp, err := a.authedRequest(ctx, cred).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/sync/run")
	if err != nil {
		return models.SyncOutcome{}, transportError("sync run request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SyncOutcome{}, err
	}

	var outcome models.SyncOutcome
	if err = json.Unmarshal(resp.Body(), &outcome); err != nil {
		return models.SyncOutcome{}, fmt.Errorf("%w: decode sync outcome: %w", ErrInvalidResponse, err)
	}
	if outcome.Status == "" {
		outcome.Status = models.StatusOK
	}

	return outcome, nil
}

// Disconnect implements [SyncAdapter].
func (a *httpSyncAdapter) Disconnect(ctx context.Context) error {
	resp, err := a.client.R().SetContext(ctx).Post("/api/sync/disconnect")
	if err != nil {
		return transportError("disconnect request", err)
	}
	return mapHTTPError(resp)
}

// ReportTelemetry implements [SyncAdapter]. The payload is sent verbatim.
func (a *httpSyncAdapter) ReportTelemetry(ctx context.Context, payload string) error {
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post("/api/telemetry")
	if err != nil {
		return transportError("telemetry request", err)
	}
	return mapHTTPError(resp)
}

func (a *httpSyncAdapter) authedRequest(ctx context.Context, cred models.CachedCredential) *resty.Request {
	req := a.client.R().SetContext(ctx)
	if cred.Token.ID != "" {
		req.SetAuthToken(cred.Token.ID)
	}
	return req
}
