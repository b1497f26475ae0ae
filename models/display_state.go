// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// DisplayState is the three-valued summary of a run shown to the host UI.
// It is recomputed on every run and never persisted.
type DisplayState string

const (
	// DisplayStateInProgress is set while a run is active. Resolution never
	// produces it.
	DisplayStateInProgress DisplayState = "inProgress"
	// DisplayStateGood means at least one engine synced, or nothing failed.
	DisplayStateGood DisplayState = "good"
	// DisplayStateWarning means nothing synced because of an auth failure.
	DisplayStateWarning DisplayState = "warning"
	// DisplayStateBad means nothing synced because of a network or other
	// failure.
	DisplayStateBad DisplayState = "bad"
)

// NeedsAttention reports whether the host should show a non-blocking
// indicator for s.
func (s DisplayState) NeedsAttention() bool {
	return s == DisplayStateWarning || s == DisplayStateBad
}
