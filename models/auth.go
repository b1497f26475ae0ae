// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ScopedKey is the key material an identity provider attaches to an access
// token for a given OAuth scope. K is base64url encoded.
type ScopedKey struct {
	Kid   string `json:"kid"`
	K     string `json:"k"`
	Kty   string `json:"kty"`
	Scope string `json:"scope"`
}

// AccessTokenInfo is an OAuth access token and its scoped key, if the scope
// carries one.
type AccessTokenInfo struct {
	Token     string
	Key       *ScopedKey
	ExpiresAt time.Time

	// AccountUID is the uid of the account the token was minted for.
	AccountUID string
}

// AuthInfo is the per-run authentication block sent with a sync request.
type AuthInfo struct {
	KeyID          string `json:"kid"`
	AccessToken    string `json:"fxa_access_token"`
	SyncKey        string `json:"sync_key"`
	TokenServerURL string `json:"tokenserver_url"`
}
