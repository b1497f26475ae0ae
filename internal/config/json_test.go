// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestParseJSON_Success(t *testing.T) {
	p := writeJSON(t, `{
		"app": {
			"hash_key": "security_hash",
			"client_id": "client-123",
			"device_name": "tablet",
			"send_usage_data": false
		},
		"storage": { "db": { "dsn": "./sync.db" } },
		"adapter": {
			"identity_address": "https://accounts.example.com",
			"sync_address": "https://sync.example.com",
			"request_timeout": "30s",
			"token_server_rps": 3
		},
		"workers": {
			"sync_interval": "15m",
			"foreground_min_delay": "5m",
			"foreground_sync_delay": 1000000000
		},
		"server": { "http_address": "localhost:8080" }
	}`)

	cfg, err := parseJSON(p)
	require.NoError(t, err)

	assert.Equal(t, "security_hash", cfg.App.HashKey)
	assert.Equal(t, "client-123", cfg.App.ClientID)
	assert.Equal(t, "tablet", cfg.App.DeviceName)
	require.NotNil(t, cfg.App.SendUsageData)
	assert.False(t, *cfg.App.SendUsageData)
	assert.Equal(t, "./sync.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "https://accounts.example.com", cfg.Adapter.IdentityAddress)
	assert.Equal(t, "https://sync.example.com", cfg.Adapter.SyncAddress)
	assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
	assert.InDelta(t, 3.0, cfg.Adapter.TokenServerRPS, 0.0001)
	assert.Equal(t, 15*time.Minute, cfg.Workers.SyncInterval)
	assert.Equal(t, 5*time.Minute, cfg.Workers.ForegroundMinDelay)
	assert.Equal(t, time.Second, cfg.Workers.ForegroundSyncDelay)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_Malformed(t *testing.T) {
	p := writeJSON(t, `{"app": `)
	_, err := parseJSON(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_BadDuration(t *testing.T) {
	p := writeJSON(t, `{"workers": {"sync_interval": "soon"}}`)
	_, err := parseJSON(p)
	require.Error(t, err)
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration(90 * time.Second))
	require.NoError(t, err)
	assert.JSONEq(t, `"1m30s"`, string(b))
}
