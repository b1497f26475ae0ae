// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"github.com/MKhiriev/go-sync-keeper/internal/crypto"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
)

// Storages groups the local persistence used by the sync client.
type Storages struct {
	Prefs    Prefs
	Keychain Keychain
}

// NewStorages builds SQLite-backed storages on db. Keychain blobs are sealed
// with sealer.
func NewStorages(db *DB, sealer crypto.Sealer, log *logger.Logger) *Storages {
	return &Storages{
		Prefs:    NewPrefsRepository(db, log),
		Keychain: NewSealedKeychain(NewKeychainRepository(db, log), sealer),
	}
}
