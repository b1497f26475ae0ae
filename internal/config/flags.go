// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses all configuration flags from args.
//
// Flags:
//
//	-a control API address in format [host]:[port]
//	-d database DSN (SQLite file path)
//	-c/-config json file path with configs
//	-hash-key key sealing local secrets
//	-client-id OAuth client id
//	-device-name fallback device display name
//	-identity identity provider base URL
//	-token-server token server endpoint override
//	-sync sync service base URL
//	-request-timeout outbound request timeout (e.g., "30s", "1m")
//	-sync-interval scheduled sync period (e.g., "15m")
//	-foreground-min-delay minimum time between foreground syncs
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("go-sync-keeper", flag.ContinueOnError)

	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var hashKey, clientID, deviceName string
	var identityAddress, tokenServerAddress, syncAddress string
	var requestTimeout, syncInterval, foregroundMinDelay time.Duration

	fs.Var(&serverAddress, "a", "Control API address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&hashKey, "hash-key", "", "Key sealing local secrets")
	fs.StringVar(&clientID, "client-id", "", "OAuth client id")
	fs.StringVar(&deviceName, "device-name", "", "Fallback device display name")
	fs.StringVar(&identityAddress, "identity", "", "Identity provider base URL")
	fs.StringVar(&tokenServerAddress, "token-server", "", "Token server endpoint override")
	fs.StringVar(&syncAddress, "sync", "", "Sync service base URL")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Scheduled sync period (e.g., 15m)")
	fs.DurationVar(&foregroundMinDelay, "foreground-min-delay", 0, "Minimum delay between foreground syncs")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			HashKey:    hashKey,
			ClientID:   clientID,
			DeviceName: deviceName,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Adapter: Adapter{
			IdentityAddress:    identityAddress,
			TokenServerAddress: tokenServerAddress,
			SyncAddress:        syncAddress,
			RequestTimeout:     requestTimeout,
		},
		Workers: Workers{
			SyncInterval:       syncInterval,
			ForegroundMinDelay: foregroundMinDelay,
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
