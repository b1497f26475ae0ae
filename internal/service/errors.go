// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-sync-keeper/internal/adapter"
	"github.com/MKhiriev/go-sync-keeper/models"
)

// Run setup and credential errors.
var (
	ErrScopedKey             = errors.New("no key data found for scope")
	ErrEncryptionKey         = errors.New("failed to get stored key")
	ErrDeviceID              = errors.New("failed to get device id")
	ErrNoTokenServerURL      = errors.New("failed to get token server endpoint url")
	ErrEngineAndKeyRetrieval = errors.New("failed to get sync engine and key data")

	ErrAccessToken   = errors.New("failed to get access token")
	ErrTokenExchange = errors.New("failed to exchange access token")
)

// Engine and orchestration errors.
var (
	ErrNoKeyNeeded    = errors.New("engine does not use a local encryption key")
	ErrUnknownEngine  = errors.New("unknown engine")
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrNoSyncableAccount wraps run failures caused by a missing account.
	ErrNoSyncableAccount = errors.New("no syncable account")
)

// ClassifyError maps a run setup or credential error onto the status the
// remote service would have reported for it. Transport failures and
// timeouts are network errors; rejected or missing credentials are auth
// errors; everything else is other. A nil error is ok.
func ClassifyError(err error) models.SyncStatus {
	switch {
	case err == nil:
		return models.StatusOK

	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, adapter.ErrNetwork),
		errors.Is(err, adapter.ErrTooManyRequests),
		errors.Is(err, adapter.ErrBadGateway),
		errors.Is(err, adapter.ErrServiceUnavailable),
		errors.Is(err, adapter.ErrGatewayTimeout):
		return models.StatusNetworkError

	case errors.Is(err, ErrScopedKey),
		errors.Is(err, ErrAccessToken),
		errors.Is(err, ErrNoSyncableAccount),
		errors.Is(err, adapter.ErrUnauthorized),
		errors.Is(err, adapter.ErrForbidden),
		errors.Is(err, adapter.ErrNoAccount):
		return models.StatusAuthError
	}

	return models.StatusOther
}
