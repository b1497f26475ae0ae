// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/store"
	"github.com/MKhiriev/go-sync-keeper/models"
)

const (
	engineKeyLabelPrefix = "engine.key."
	engineKeyLen         = 32
)

// storageEngine is a local collection whose records are applied by the
// remote sync service. Only engines built with a keychain hold an at-rest
// key.
type storageEngine struct {
	name     string
	keychain store.Keychain
	logger   *logger.Logger
}

// NewPlacesEngine returns the backend shared by bookmarks and history.
func NewPlacesEngine(log *logger.Logger) EngineBackend {
	return &storageEngine{name: "places", logger: log}
}

// NewTabsEngine returns the remote tabs backend.
func NewTabsEngine(log *logger.Logger) EngineBackend {
	return &storageEngine{name: models.EngineTabs.String(), logger: log}
}

// NewPasswordsEngine returns the logins backend. Its at-rest key lives in
// keychain and is created on first use.
func NewPasswordsEngine(keychain store.Keychain, log *logger.Logger) EngineBackend {
	return &storageEngine{name: models.EnginePasswords.String(), keychain: keychain, logger: log}
}

func (e *storageEngine) RegisterWithSyncManager(_ context.Context) error {
	e.logger.Debug().Str("backend", e.name).Msg("backend registered")
	return nil
}

func (e *storageEngine) RequiresEncryptionKey() bool {
	return e.keychain != nil
}

func (e *storageEngine) StoredKey(ctx context.Context) (string, error) {
	if e.keychain == nil {
		return "", ErrNoKeyNeeded
	}

	label := engineKeyLabelPrefix + e.name
	blob, err := e.keychain.Get(ctx, label)
	if err == nil {
		return string(blob), nil
	}
	if !errors.Is(err, store.ErrKeychainItemNotFound) {
		return "", fmt.Errorf("read key: %w", err)
	}

	raw := make([]byte, engineKeyLen)
	if _, err = rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	key := base64.StdEncoding.EncodeToString(raw)

	if err = e.keychain.Set(ctx, label, []byte(key)); err != nil {
		return "", fmt.Errorf("store key: %w", err)
	}

	e.logger.Info().Str("backend", e.name).Msg("created at-rest key")
	return key, nil
}

// RegisterDefaultEngines binds the built-in backends: places for bookmarks
// and history, tabs, and passwords keyed in keychain.
func RegisterDefaultEngines(registry EngineRegistry, keychain store.Keychain, log *logger.Logger) {
	registry.Add(NewTabsEngine(log), models.EngineTabs)
	registry.Add(NewPlacesEngine(log), models.EngineBookmarks, models.EngineHistory)
	registry.Add(NewPasswordsEngine(keychain, log), models.EnginePasswords)
}
