// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for the optional JSON file.
type StructuredJSONConfig struct {
	App struct {
		HashKey       string `json:"hash_key"`
		ClientID      string `json:"client_id"`
		DeviceName    string `json:"device_name"`
		SendUsageData *bool  `json:"send_usage_data"`
		LogFile       string `json:"log_file"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Adapter struct {
		IdentityAddress    string   `json:"identity_address"`
		TokenServerAddress string   `json:"token_server_address"`
		SyncAddress        string   `json:"sync_address"`
		RequestTimeout     Duration `json:"request_timeout"`
		TokenServerRPS     float64  `json:"token_server_rps"`
	} `json:"adapter,omitempty"`

	Workers struct {
		SyncInterval        Duration `json:"sync_interval"`
		ForegroundMinDelay  Duration `json:"foreground_min_delay"`
		ForegroundSyncDelay Duration `json:"foreground_sync_delay"`
	} `json:"workers,omitempty"`

	Server struct {
		HTTPAddress string `json:"http_address"`
		AuthToken   string `json:"auth_token"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			HashKey:       jsonCfg.App.HashKey,
			ClientID:      jsonCfg.App.ClientID,
			DeviceName:    jsonCfg.App.DeviceName,
			SendUsageData: jsonCfg.App.SendUsageData,
			LogFile:       jsonCfg.App.LogFile,
		},
		Storage: Storage{
			DB: DB{DSN: jsonCfg.Storage.DB.DSN},
		},
		Adapter: Adapter{
			IdentityAddress:    jsonCfg.Adapter.IdentityAddress,
			TokenServerAddress: jsonCfg.Adapter.TokenServerAddress,
			SyncAddress:        jsonCfg.Adapter.SyncAddress,
			RequestTimeout:     time.Duration(jsonCfg.Adapter.RequestTimeout),
			TokenServerRPS:     jsonCfg.Adapter.TokenServerRPS,
		},
		Workers: Workers{
			SyncInterval:        time.Duration(jsonCfg.Workers.SyncInterval),
			ForegroundMinDelay:  time.Duration(jsonCfg.Workers.ForegroundMinDelay),
			ForegroundSyncDelay: time.Duration(jsonCfg.Workers.ForegroundSyncDelay),
		},
		Server: Server{
			HTTPAddress: jsonCfg.Server.HTTPAddress,
			AuthToken:   jsonCfg.Server.AuthToken,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
