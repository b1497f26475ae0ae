// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "github.com/MKhiriev/go-sync-keeper/models"

// ResolveDisplayState summarises outcome for the host UI. Any synced engine
// makes the run good. Otherwise an auth error is a warning, and a network
// error or an unrecognised failure is bad.
//
// A StatusOther outcome with no synced engine is bad, not good: the remote
// service uses it for failures it could not classify, so it is never
// treated like StatusOK.
func ResolveDisplayState(outcome models.SyncOutcome) models.DisplayState {
	if outcome.HasSynced() {
		return models.DisplayStateGood
	}

	switch outcome.Status {
	case models.StatusOK, "":
		return models.DisplayStateGood
	case models.StatusAuthError:
		return models.DisplayStateWarning
	default:
		return models.DisplayStateBad
	}
}
