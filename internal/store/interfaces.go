// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"
)

// Prefs is a small typed key/value preference store. Getters report ok=false
// when the key was never set.
type Prefs interface {
	GetString(ctx context.Context, key string) (value string, ok bool, err error)
	SetString(ctx context.Context, key, value string) error
	GetBool(ctx context.Context, key string) (value bool, ok bool, err error)
	SetBool(ctx context.Context, key string, value bool) error
	GetTime(ctx context.Context, key string) (value time.Time, ok bool, err error)
	SetTime(ctx context.Context, key string, value time.Time) error
	Remove(ctx context.Context, keys ...string) error
}

// Keychain stores secret blobs by label. Get returns
// [ErrKeychainItemNotFound] for unknown labels; Delete of an unknown label is
// not an error.
type Keychain interface {
	Get(ctx context.Context, label string) ([]byte, error)
	Set(ctx context.Context, label string, blob []byte) error
	Delete(ctx context.Context, label string) error
}
