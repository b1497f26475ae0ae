// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// TokenServerToken is the credential issued by the token server in exchange
// for an OAuth access token. ID and Key authenticate requests to the sync
// storage node at APIEndpoint for DurationInSeconds.
type TokenServerToken struct {
	ID                string `json:"id"`
	Key               string `json:"key"`
	UID               string `json:"uid"`
	APIEndpoint       string `json:"api_endpoint"`
	DurationInSeconds int64  `json:"duration"`
	HashedFxAUID      string `json:"hashed_fxa_uid,omitempty"`

	// RemoteTimestamp is the server clock (X-Timestamp) at issue time, in
	// seconds. Informational only.
	RemoteTimestamp int64 `json:"remote_timestamp,omitempty"`
}

// Duration returns DurationInSeconds as a time.Duration.
func (t TokenServerToken) Duration() time.Duration {
	return time.Duration(t.DurationInSeconds) * time.Second
}

// CachedCredential is a token-server token together with the symmetric key
// derived from the access token's scoped key material.
//
// ExpiresAt is always fetch time plus the server-reported duration.
// AccountUID is the account it was fetched for; it is never served to
// another one.
type CachedCredential struct {
	Token      TokenServerToken
	DerivedKey []byte
	ExpiresAt  time.Time
	AccountUID string
}

// IsExpired reports whether the credential should be refreshed at now when
// callers need skew of headroom: it is expired once fewer than skew remain
// before ExpiresAt. A negative skew is treated as zero.
func (c CachedCredential) IsExpired(now time.Time, skew time.Duration) bool {
	if skew < 0 {
		skew = 0
	}
	return c.ExpiresAt.Before(now.Add(skew))
}
