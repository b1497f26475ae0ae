// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer clients for the remote
// collaborators of the sync client: the identity provider, the token server
// and the remote sync service.
//
// All implementations speak HTTP(S) through resty. Error values defined in
// errors.go are mapped from HTTP status codes by mapHTTPError so that callers
// can use [errors.Is] for transport-agnostic error handling (e.g.
// [ErrUnauthorized] for 401, [ErrNetwork] when no response was received).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-sync-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ScopeOldSync is the OAuth scope whose key material authenticates with the
// token server.
const ScopeOldSync = "https://identity.mozilla.com/apps/oldsync"

// IdentityProvider is the signed-in account as seen by the sync client.
type IdentityProvider interface {
	// AccessToken returns an OAuth access token for scope together with the
	// scope's key material, if the account holds any for it.
	AccessToken(ctx context.Context, scope string) (models.AccessTokenInfo, error)

	// TokenServerEndpointURL returns the token-server endpoint used to
	// exchange access tokens.
	TokenServerEndpointURL(ctx context.Context) (string, error)

	// LocalDevice describes the current device as registered with the
	// account. Returns [ErrNoLocalDevice] when the account has no record for
	// it.
	LocalDevice(ctx context.Context) (models.DeviceDescriptor, error)

	// AccountUID returns the uid of the stored account, or [ErrNoAccount].
	AccountUID(ctx context.Context) (string, error)

	// HasSyncableAccount reports whether a verified account is signed in.
	HasSyncableAccount(ctx context.Context) bool

	// SaveAccount stores the signed-in account state handed over by the host.
	SaveAccount(ctx context.Context, account models.AccountState) error

	// Logout destroys the refresh token remotely (best effort) and forgets
	// the local account state.
	Logout(ctx context.Context) error

	// PollCommands fetches device commands received since the last poll.
	PollCommands(ctx context.Context) ([]models.DeviceCommand, error)
}

// TokenServerAdapter exchanges OAuth access tokens for sync tokens.
type TokenServerAdapter interface {
	// Exchange trades accessToken (whose scoped key id is keyID) for a
	// token-server token at endpointURL.
	Exchange(ctx context.Context, endpointURL, accessToken, keyID string) (models.TokenServerToken, error)
}

// SyncAdapter drives sync runs on the remote sync service.
type SyncAdapter interface {
	// Sync executes one run authenticated by cred and returns the service's
	// outcome.
	Sync(ctx context.Context, cred models.CachedCredential, req models.SyncRunRequest) (models.SyncOutcome, error)

	// Disconnect ends this device's sync session.
	Disconnect(ctx context.Context) error

	// ReportTelemetry forwards an opaque telemetry payload produced by a run.
	ReportTelemetry(ctx context.Context, payload string) error
}
