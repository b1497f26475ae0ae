// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-keeper/models"
)

func TestSyncRunBuilder_Build(t *testing.T) {
	in := RunInputs{
		Reason:            models.ReasonDidLogin,
		Engines:           []models.EngineName{models.EngineHistory, models.EnginePasswords},
		EnablementChanges: models.EngineEnablementChange{models.EngineTabs: false},
		LocalKeys:         map[models.EngineName]string{models.EnginePasswords: "pw-key"},
		AccessToken:       testAccessToken(),
		TokenServerURL:    "https://token/1.0/sync/1.5",
		PersistedState:    "opaque",
		Device:            models.DeviceDescriptor{ID: "dev", DisplayName: "Laptop", Kind: models.DeviceDesktop},
	}

	req := SyncRunBuilder{}.Build(in)

	assert.Equal(t, models.WireReasonEnabledChange, req.Reason)
	assert.Equal(t, in.Engines, req.Engines.Engines)
	assert.Equal(t, in.EnablementChanges, req.EnablementChanges)
	assert.Equal(t, in.LocalKeys, req.LocalEncryptionKeys)
	assert.Equal(t, models.AuthInfo{
		KeyID:          "1-kid",
		AccessToken:    "access-token",
		SyncKey:        "c3luYy1rZXk",
		TokenServerURL: "https://token/1.0/sync/1.5",
	}, req.AuthInfo)
	require.NotNil(t, req.PersistedState)
	assert.Equal(t, "opaque", *req.PersistedState)
	assert.Equal(t, in.Device, req.Device)

	// The request owns its collections.
	in.Engines[0] = models.EngineTabs
	in.LocalKeys[models.EnginePasswords] = "changed"
	in.EnablementChanges[models.EngineTabs] = true
	assert.Equal(t, models.EngineHistory, req.Engines.Engines[0])
	assert.Equal(t, "pw-key", req.LocalEncryptionKeys[models.EnginePasswords])
	assert.False(t, req.EnablementChanges[models.EngineTabs])
}

func TestSyncRunBuilder_EmptyInputs(t *testing.T) {
	req := SyncRunBuilder{}.Build(RunInputs{Reason: models.ReasonScheduled})

	assert.Equal(t, models.WireReasonScheduled, req.Reason)
	assert.Empty(t, req.Engines.Engines)
	assert.NotNil(t, req.Engines.Engines, "explicit empty selection, not all")
	assert.Nil(t, req.PersistedState)
	assert.Empty(t, req.AuthInfo.KeyID)
}
