// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/models"
)

type engineBinding struct {
	backend    EngineBackend
	registered bool
}

type engineRegistry struct {
	mu       sync.Mutex
	bindings map[models.EngineName]*engineBinding
	logger   *logger.Logger
}

// NewEngineRegistry returns an empty EngineRegistry.
func NewEngineRegistry(log *logger.Logger) EngineRegistry {
	return &engineRegistry{
		bindings: make(map[models.EngineName]*engineBinding),
		logger:   log,
	}
}

func (r *engineRegistry) Add(backend EngineBackend, names ...models.EngineName) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b := &engineBinding{backend: backend}
	for _, name := range names {
		r.bindings[name] = b
	}
}

func (r *engineRegistry) Register(ctx context.Context, name models.EngineName) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bindings[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEngine, name)
	}
	if b.registered {
		return nil
	}

	if err := b.backend.RegisterWithSyncManager(ctx); err != nil {
		return fmt.Errorf("register %s: %w", name, err)
	}
	b.registered = true

	r.logger.Debug().Str("engine", name.String()).Msg("engine registered with sync manager")
	return nil
}

func (r *engineRegistry) LocalKey(ctx context.Context, name models.EngineName) (string, error) {
	r.mu.Lock()
	b, ok := r.bindings[name]
	r.mu.Unlock()

	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownEngine, name)
	}
	if !b.backend.RequiresEncryptionKey() {
		return "", ErrNoKeyNeeded
	}

	key, err := b.backend.StoredKey(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrEncryptionKey, name, err)
	}
	if key == "" {
		return "", fmt.Errorf("%w: %s: empty key", ErrEncryptionKey, name)
	}

	return key, nil
}
