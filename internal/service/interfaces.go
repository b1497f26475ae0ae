// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-sync-keeper/models"
)

// CredentialCache holds the token-server credential used to authenticate
// sync runs, together with the key derived from the access token's scoped
// key material.
type CredentialCache interface {
	// Credential returns the cached credential when one exists and either
	// allowExpired is set or it stays valid for at least the expiry skew
	// past now. Otherwise it fetches a fresh one: access token, token-server
	// URL, token exchange, key derivation. Concurrent misses share a single
	// fetch.
	Credential(ctx context.Context, now time.Time, allowExpired bool) (models.CachedCredential, error)

	// Invalidate drops the in-memory and durable copies. The next call to
	// Credential always fetches. A fetch already in flight still answers its
	// callers but does not repopulate the cache.
	Invalidate(ctx context.Context)

	// Clear invalidates the cache and forgets the per-install namespace, so
	// the next account starts with a fresh one.
	Clear(ctx context.Context) error
}

// EngineBackend is the storage behind one or more engines.
type EngineBackend interface {
	// RegisterWithSyncManager marks the backend as a participant in sync
	// runs for the lifetime of the process.
	RegisterWithSyncManager(ctx context.Context) error

	// RequiresEncryptionKey reports whether the backend keeps its data
	// encrypted at rest with a locally held key.
	RequiresEncryptionKey() bool

	// StoredKey returns the at-rest encryption key.
	StoredKey(ctx context.Context) (string, error)
}

// EngineRegistry maps engine names onto their backends.
type EngineRegistry interface {
	// Add binds backend to every name in names.
	Add(backend EngineBackend, names ...models.EngineName)

	// Register registers the backend bound to name. Each backend is
	// registered at most once, however many names share it.
	Register(ctx context.Context, name models.EngineName) error

	// LocalKey returns the stored key for name. Engines without at-rest
	// encryption return ErrNoKeyNeeded.
	LocalKey(ctx context.Context, name models.EngineName) (string, error)
}

// EnginePreferenceStore persists per-engine enablement and the changes the
// next run must report.
type EnginePreferenceStore interface {
	IsEnabled(ctx context.Context, name models.EngineName) (bool, error)

	// SetEnabled records a user toggle: it stores the new state and flags
	// the engine as changed since the last sync.
	SetEnabled(ctx context.Context, name models.EngineName, enabled bool) error

	HasChangedSinceLastSync(ctx context.Context, name models.EngineName) (bool, error)
	ClearChangedFlag(ctx context.Context, name models.EngineName) error

	// SetDeclinedAtSetup stores the engines the user declined while setting
	// up the account.
	SetDeclinedAtSetup(ctx context.Context, names []models.EngineName) error

	// TakeEnablementChanges returns the changes to report with the next
	// run. The declined-at-setup list wins and is consumed; otherwise the
	// changed flags are scanned and cleared.
	TakeEnablementChanges(ctx context.Context) (models.EngineEnablementChange, error)

	// ApplyDeclined makes the remote service's declined list the local
	// truth: declined engines are disabled, every other togglable engine is
	// enabled, and all changed flags are cleared.
	ApplyDeclined(ctx context.Context, declined []models.EngineName) error
}

// SyncOrchestrator runs sync and reacts to host lifecycle events.
type SyncOrchestrator interface {
	// SyncEverything runs every togglable engine.
	SyncEverything(ctx context.Context, reason models.SyncReason) (models.SyncResult, error)

	// SyncNamedCollections runs the given engines. Duplicates and unknown
	// names are dropped silently.
	SyncNamedCollections(ctx context.Context, reason models.SyncReason, names []string) (models.SyncResult, error)

	SyncTabs(ctx context.Context) (models.SyncResult, error)
	SyncHistory(ctx context.Context) (models.SyncResult, error)

	// SetEngineEnabled records a user toggle to be reported on the next run.
	SetEngineEnabled(ctx context.Context, name models.EngineName, enabled bool) error

	// SetDeclinedAtSetup records the engines the user turned off while
	// setting up the account. The next run reports them as disabled, once.
	SetDeclinedAtSetup(ctx context.Context, names []models.EngineName) error

	// OnAddedAccount starts periodic sync and syncs immediately, provided
	// the account can sync. Otherwise it does nothing.
	OnAddedAccount(ctx context.Context) error

	// OnRemovedAccount disconnects from the remote service and wipes local
	// sync state whether or not the disconnect succeeds.
	OnRemovedAccount(ctx context.Context) error

	// SignOut logs out of the identity provider and then behaves like
	// OnRemovedAccount.
	SignOut(ctx context.Context) error

	ApplicationDidBecomeActive(ctx context.Context)
	ApplicationDidEnterBackground()

	IsSyncing() bool
	DisplayState() models.DisplayState
	LastSyncFinishTime(ctx context.Context) (time.Time, bool)

	// Subscribe returns a channel receiving run events until Unsubscribe or
	// Close.
	Subscribe() <-chan models.SyncEvent
	Unsubscribe(ch <-chan models.SyncEvent)

	// Close stops the scheduler and closes every subscriber channel.
	Close()
}

// Scheduler triggers periodic and delayed runs.
type Scheduler interface {
	// Start launches the periodic timer. It is a no-op while a timer is
	// already running.
	Start(ctx context.Context)

	// Stop cancels the timer and waits for its goroutine. A run already in
	// flight is not cancelled.
	Stop()

	IsRunning() bool

	// SyncSoon schedules a single run with reason after the foreground
	// delay, off the caller's goroutine.
	SyncSoon(ctx context.Context, reason models.SyncReason)
}

// TelemetryReporter records the outcome of finished runs.
type TelemetryReporter interface {
	// Observe updates local metrics for result.
	Observe(result models.SyncResult)

	// Report forwards the run's telemetry payload to the remote service.
	Report(ctx context.Context, outcome models.SyncOutcome) error
}
