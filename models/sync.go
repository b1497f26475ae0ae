// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// EngineSelection lists the engines a run covers. An empty list means none.
type EngineSelection struct {
	Engines []EngineName `json:"engines,omitempty"`
}

// SyncRunRequest is everything the remote sync service needs for one run.
// It is built fresh for every run and never shared between runs.
type SyncRunRequest struct {
	Reason              WireReason             `json:"reason"`
	Engines             EngineSelection        `json:"engines"`
	EnablementChanges   EngineEnablementChange `json:"enabled_changes"`
	LocalEncryptionKeys map[EngineName]string  `json:"local_encryption_keys"`
	AuthInfo            AuthInfo               `json:"auth_info"`
	PersistedState      *string                `json:"persisted_state"`
	Device              DeviceDescriptor       `json:"device_settings"`
}

// SyncStatus is the overall status the remote sync service reports.
type SyncStatus string

const (
	StatusOK           SyncStatus = "ok"
	StatusAuthError    SyncStatus = "authError"
	StatusNetworkError SyncStatus = "networkError"
	StatusOther        SyncStatus = "other"
)

// SyncOutcome is the response of a sync run. PersistedState is opaque and is
// submitted back on the next run.
type SyncOutcome struct {
	Status            SyncStatus   `json:"status"`
	SuccessfulEngines []EngineName `json:"successful"`
	DeclinedEngines   []EngineName `json:"declined"`
	PersistedState    string       `json:"persisted_state"`
	TelemetryPayload  string       `json:"telemetry_json,omitempty"`
}

// HasSynced reports whether at least one engine synced successfully.
func (o SyncOutcome) HasSynced() bool {
	return len(o.SuccessfulEngines) > 0
}

// IsDeclined reports whether engine appears in the declined list.
func (o SyncOutcome) IsDeclined(engine EngineName) bool {
	for _, d := range o.DeclinedEngines {
		if d == engine {
			return true
		}
	}
	return false
}

// SyncResult is what the orchestrator hands back to callers for a finished
// run. Excluded lists the requested engines that were dropped because their
// backend failed to register or their local key could not be read.
type SyncResult struct {
	Reason    SyncReason
	Outcome   SyncOutcome
	State     DisplayState
	Attempted []EngineName
	Excluded  []EngineName
	Finished  time.Time
}

// SyncEventKind distinguishes run start from run completion.
type SyncEventKind string

const (
	SyncEventStarted  SyncEventKind = "started"
	SyncEventFinished SyncEventKind = "finished"
)

// SyncEvent is delivered to orchestrator subscribers. Result is only set
// for [SyncEventFinished].
type SyncEvent struct {
	Kind   SyncEventKind
	Reason SyncReason
	Result SyncResult
}
