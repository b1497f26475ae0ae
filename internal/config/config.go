// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-sync-keeper client. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: the sealing key for local
	// secrets, device naming and usage-data defaults.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local SQLite database that keeps
	// sync prefs and the keychain.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds addresses and timeouts of the remote collaborators:
	// identity provider, token server and sync service.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds the periodic and foreground sync timings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Server holds the local control API settings.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// HashKey is the secret used to derive the key that seals keychain
	// entries at rest. Must be kept confidential.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// ClientID is the OAuth client id registered with the identity provider.
	// Env: APP_CLIENT_ID
	ClientID string `env:"CLIENT_ID"`

	// DeviceName is used when the identity provider does not report a
	// display name for the local device.
	// Env: APP_DEVICE_NAME
	DeviceName string `env:"DEVICE_NAME"`

	// SendUsageData is the default for the usage-data pref consulted before
	// telemetry is reported. Nil means "not configured" (defaults to true).
	// Env: APP_SEND_USAGE_DATA
	SendUsageData *bool `env:"SEND_USAGE_DATA"`

	// LogFile is the file JSON logs are appended to. Empty logs to stdout.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Storage groups the configuration for local persistence.
type Storage struct {
	// DB holds the SQLite database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local database.
type DB struct {
	// DSN is the SQLite file path (e.g. "./sync.db").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds configuration for the remote collaborators.
type Adapter struct {
	// IdentityAddress is the base URL of the identity provider.
	// Env: ADAPTER_IDENTITY_ADDRESS
	IdentityAddress string `env:"IDENTITY_ADDRESS"`

	// TokenServerAddress overrides the token-server endpoint discovered from
	// the identity provider. Usually empty.
	// Env: ADAPTER_TOKEN_SERVER_ADDRESS
	TokenServerAddress string `env:"TOKEN_SERVER_ADDRESS"`

	// SyncAddress is the base URL of the remote sync service.
	// Env: ADAPTER_SYNC_ADDRESS
	SyncAddress string `env:"SYNC_ADDRESS"`

	// RequestTimeout bounds every outbound network call (e.g. "30s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// TokenServerRPS limits token exchanges per second.
	// Env: ADAPTER_TOKEN_SERVER_RPS
	TokenServerRPS float64 `env:"TOKEN_SERVER_RPS"`
}

// Workers holds the sync timing configuration.
type Workers struct {
	// SyncInterval is the period of scheduled syncs.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// ForegroundMinDelay is the minimum time since the last good sync before
	// returning to the foreground triggers a new one.
	// Env: WORKERS_FOREGROUND_MIN_DELAY
	ForegroundMinDelay time.Duration `env:"FOREGROUND_MIN_DELAY"`

	// ForegroundSyncDelay is how long a "sync soon" waits before running.
	// Env: WORKERS_FOREGROUND_SYNC_DELAY
	ForegroundSyncDelay time.Duration `env:"FOREGROUND_SYNC_DELAY"`
}

// Server holds settings of the local control API.
type Server struct {
	// HTTPAddress is the listen address in "host:port" form. Empty disables
	// the control API.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// AuthToken, when set, must be presented as a bearer token on every
	// control API request.
	// Env: SERVER_AUTH_TOKEN
	AuthToken string `env:"AUTH_TOKEN"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
