// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/mock"
	"github.com/MKhiriev/go-sync-keeper/internal/store"
	"github.com/MKhiriev/go-sync-keeper/models"
)

// stubBackend counts registrations and serves a fixed key.
type stubBackend struct {
	registrations int
	registerErr   error
	needsKey      bool
	key           string
	keyErr        error
}

func (b *stubBackend) RegisterWithSyncManager(context.Context) error {
	b.registrations++
	return b.registerErr
}

func (b *stubBackend) RequiresEncryptionKey() bool { return b.needsKey }

func (b *stubBackend) StoredKey(context.Context) (string, error) { return b.key, b.keyErr }

func TestEngineRegistry_SharedBackendRegisteredOnce(t *testing.T) {
	r := NewEngineRegistry(logger.Nop())
	places := &stubBackend{}
	r.Add(places, models.EngineBookmarks, models.EngineHistory)
	ctx := context.Background()

	require.NoError(t, r.Register(ctx, models.EngineBookmarks))
	require.NoError(t, r.Register(ctx, models.EngineHistory))
	require.NoError(t, r.Register(ctx, models.EngineHistory))

	assert.Equal(t, 1, places.registrations)
}

func TestEngineRegistry_FailedRegistrationIsRetried(t *testing.T) {
	r := NewEngineRegistry(logger.Nop())
	b := &stubBackend{registerErr: errors.New("busy")}
	r.Add(b, models.EngineTabs)
	ctx := context.Background()

	assert.Error(t, r.Register(ctx, models.EngineTabs))
	b.registerErr = nil
	assert.NoError(t, r.Register(ctx, models.EngineTabs))
	assert.Equal(t, 2, b.registrations)
}

func TestEngineRegistry_LocalKey(t *testing.T) {
	r := NewEngineRegistry(logger.Nop())
	r.Add(&stubBackend{}, models.EngineTabs)
	r.Add(&stubBackend{needsKey: true, key: "k"}, models.EnginePasswords)
	r.Add(&stubBackend{needsKey: true, keyErr: errors.New("locked")}, models.EngineHistory)
	r.Add(&stubBackend{needsKey: true}, models.EngineBookmarks)
	ctx := context.Background()

	_, err := r.LocalKey(ctx, models.EngineTabs)
	assert.ErrorIs(t, err, ErrNoKeyNeeded)

	key, err := r.LocalKey(ctx, models.EnginePasswords)
	require.NoError(t, err)
	assert.Equal(t, "k", key)

	_, err = r.LocalKey(ctx, models.EngineHistory)
	assert.ErrorIs(t, err, ErrEncryptionKey)

	_, err = r.LocalKey(ctx, models.EngineBookmarks)
	assert.ErrorIs(t, err, ErrEncryptionKey)

	_, err = r.LocalKey(ctx, "nonsense")
	assert.ErrorIs(t, err, ErrUnknownEngine)
	assert.ErrorIs(t, r.Register(ctx, "nonsense"), ErrUnknownEngine)
}

func TestRegisterDefaultEngines(t *testing.T) {
	r := NewEngineRegistry(logger.Nop())
	kc := store.NewMemoryKeychain()
	RegisterDefaultEngines(r, kc, logger.Nop())
	ctx := context.Background()

	for _, e := range models.TogglableEngines {
		assert.NoError(t, r.Register(ctx, e))
	}

	for _, e := range []models.EngineName{models.EngineTabs, models.EngineBookmarks, models.EngineHistory} {
		_, err := r.LocalKey(ctx, e)
		assert.ErrorIs(t, err, ErrNoKeyNeeded, e)
	}

	first, err := r.LocalKey(ctx, models.EnginePasswords)
	require.NoError(t, err)
	assert.NotEmpty(t, first)
	assert.Equal(t, 1, kc.Len())

	second, err := r.LocalKey(ctx, models.EnginePasswords)
	require.NoError(t, err)
	assert.Equal(t, first, second, "key is created once and reused")
}

func TestPasswordsEngine_KeychainFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	kc := mock.NewMockKeychain(ctrl)
	ctx := context.Background()

	kc.EXPECT().Get(ctx, engineKeyLabelPrefix+"passwords").Return(nil, errors.New("locked"))

	_, err := NewPasswordsEngine(kc, logger.Nop()).StoredKey(ctx)
	assert.ErrorContains(t, err, "read key")
}

func TestPasswordsEngine_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	kc := mock.NewMockKeychain(ctrl)
	ctx := context.Background()

	kc.EXPECT().Get(ctx, gomock.Any()).Return(nil, store.ErrKeychainItemNotFound)
	kc.EXPECT().Set(ctx, gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	_, err := NewPasswordsEngine(kc, logger.Nop()).StoredKey(ctx)
	assert.ErrorContains(t, err, "store key")
}
