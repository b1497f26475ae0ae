// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "github.com/MKhiriev/go-sync-keeper/models"

// RunInputs is everything gathered during run setup.
type RunInputs struct {
	Reason            models.SyncReason
	Engines           []models.EngineName
	EnablementChanges models.EngineEnablementChange
	LocalKeys         map[models.EngineName]string
	AccessToken       models.AccessTokenInfo
	TokenServerURL    string
	PersistedState    string
	Device            models.DeviceDescriptor
}

// SyncRunBuilder assembles sync requests. It holds no state.
type SyncRunBuilder struct{}

// Build returns a request for in. The request owns copies of every slice
// and map, so in may be reused. An empty PersistedState is sent as null.
func (SyncRunBuilder) Build(in RunInputs) models.SyncRunRequest {
	engines := make([]models.EngineName, len(in.Engines))
	copy(engines, in.Engines)

	changes := make(models.EngineEnablementChange, len(in.EnablementChanges))
	for k, v := range in.EnablementChanges {
		changes[k] = v
	}

	keys := make(map[models.EngineName]string, len(in.LocalKeys))
	for k, v := range in.LocalKeys {
		keys[k] = v
	}

	req := models.SyncRunRequest{
		Reason:              in.Reason.Wire(),
		Engines:             models.EngineSelection{Engines: engines},
		EnablementChanges:   changes,
		LocalEncryptionKeys: keys,
		Device:              in.Device,
		AuthInfo: models.AuthInfo{
			AccessToken:    in.AccessToken.Token,
			TokenServerURL: in.TokenServerURL,
		},
	}

	if k := in.AccessToken.Key; k != nil {
		req.AuthInfo.KeyID = k.Kid
		req.AuthInfo.SyncKey = k.K
	}

	if in.PersistedState != "" {
		state := in.PersistedState
		req.PersistedState = &state
	}

	return req
}
