// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AccountState is the locally persisted identity account: who is signed in,
// the refresh token used to mint scoped access tokens, and the scoped keys
// obtained during sign-in. It lives in the keychain, never in plain prefs.
type AccountState struct {
	UID          string               `json:"uid"`
	Email        string               `json:"email"`
	Verified     bool                 `json:"verified"`
	RefreshToken string               `json:"refresh_token"`
	ScopedKeys   map[string]ScopedKey `json:"scoped_keys"`

	// CommandIndex is the index of the last device command consumed.
	CommandIndex int64 `json:"command_index"`
}

// IsSyncable reports whether the account is fully verified and can mint
// tokens.
func (a *AccountState) IsSyncable() bool {
	return a != nil && a.Verified && a.RefreshToken != ""
}

// DeviceCommand is a pending command sent to this device by another one,
// such as an incoming tab.
type DeviceCommand struct {
	Index   int64  `json:"index"`
	Command string `json:"command"`
	Sender  string `json:"sender,omitempty"`
	Payload string `json:"payload,omitempty"`
}
