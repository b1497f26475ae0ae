// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// Defaults applied by [GetClientConfig] when a value is not configured.
const (
	DefaultSyncInterval        = 15 * time.Minute
	DefaultForegroundMinDelay  = 5 * time.Minute
	DefaultForegroundSyncDelay = 5 * time.Second
	DefaultRequestTimeout      = 30 * time.Second
	DefaultTokenServerRPS      = 1.0
	DefaultDeviceName          = "go-sync-keeper"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// HashKey seals keychain entries at rest.
	HashKey string
	// ClientID is the OAuth client id.
	ClientID string
	// DeviceName is the fallback device display name.
	DeviceName string
	// SendUsageData is the default for the usage-data pref.
	SendUsageData bool
	// LogFile is where logs are appended; empty means stdout.
	LogFile string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// IdentityAddress is the identity provider base URL.
	IdentityAddress string
	// TokenServerAddress optionally overrides token-server discovery.
	TokenServerAddress string
	// SyncAddress is the remote sync service base URL.
	SyncAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// TokenServerRPS paces token exchanges.
	TokenServerRPS float64
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains client background sync settings.
type ClientWorkers struct {
	// SyncInterval defines how often scheduled syncs run.
	SyncInterval time.Duration
	// ForegroundMinDelay is the debounce for foreground-triggered syncs.
	ForegroundMinDelay time.Duration
	// ForegroundSyncDelay is the delay of a "sync soon" run.
	ForegroundSyncDelay time.Duration
}

// ClientServer contains control API settings.
type ClientServer struct {
	// HTTPAddress is the listen address; empty disables the API.
	HTTPAddress string
	// AuthToken is the optional bearer token required by the control API.
	AuthToken string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains remote collaborator addresses and timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Workers contains background job settings.
	Workers ClientWorkers
	// Server contains control API settings.
	Server ClientServer
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps the fields
// relevant to the client runtime, fills defaults and validates the resulting
// [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)

	return clientCfg, clientCfg.validate()
}

// NewClientConfig projects cfg onto a [ClientConfig] and applies defaults.
// It does not validate.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	sendUsageData := true
	if cfg.App.SendUsageData != nil {
		sendUsageData = *cfg.App.SendUsageData
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			HashKey:       cfg.App.HashKey,
			ClientID:      cfg.App.ClientID,
			DeviceName:    cfg.App.DeviceName,
			SendUsageData: sendUsageData,
			LogFile:       cfg.App.LogFile,
		},
		Adapter: ClientAdapter{
			IdentityAddress:    cfg.Adapter.IdentityAddress,
			TokenServerAddress: cfg.Adapter.TokenServerAddress,
			SyncAddress:        cfg.Adapter.SyncAddress,
			RequestTimeout:     cfg.Adapter.RequestTimeout,
			TokenServerRPS:     cfg.Adapter.TokenServerRPS,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
		Workers: ClientWorkers{
			SyncInterval:        cfg.Workers.SyncInterval,
			ForegroundMinDelay:  cfg.Workers.ForegroundMinDelay,
			ForegroundSyncDelay: cfg.Workers.ForegroundSyncDelay,
		},
		Server: ClientServer{
			HTTPAddress: cfg.Server.HTTPAddress,
			AuthToken:   cfg.Server.AuthToken,
		},
	}

	clientCfg.applyDefaults()
	return clientCfg
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.App.DeviceName == "" {
		cfg.App.DeviceName = DefaultDeviceName
	}
	if cfg.Adapter.RequestTimeout <= 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Adapter.TokenServerRPS <= 0 {
		cfg.Adapter.TokenServerRPS = DefaultTokenServerRPS
	}
	if cfg.Workers.SyncInterval <= 0 {
		cfg.Workers.SyncInterval = DefaultSyncInterval
	}
	if cfg.Workers.ForegroundMinDelay <= 0 {
		cfg.Workers.ForegroundMinDelay = DefaultForegroundMinDelay
	}
	if cfg.Workers.ForegroundSyncDelay <= 0 {
		cfg.Workers.ForegroundSyncDelay = DefaultForegroundSyncDelay
	}
}
