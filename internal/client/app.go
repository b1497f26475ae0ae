// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/MKhiriev/go-sync-keeper/internal/adapter"
	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/crypto"
	apihttp "github.com/MKhiriev/go-sync-keeper/internal/handler/http"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/server"
	"github.com/MKhiriev/go-sync-keeper/internal/service"
	"github.com/MKhiriev/go-sync-keeper/internal/store"
	"github.com/MKhiriev/go-sync-keeper/models"
)

// keychainSealInfo separates the keychain sealing key from any other key
// derived from the same hash key.
const keychainSealInfo = "go-sync-keeper keychain v1"

type App struct {
	services *service.Services
	server   server.Server
	closers  []io.Closer

	logger *logger.Logger
}

// NewApp opens and migrates the local database and wires storages, adapters,
// services and the control API from cfg.
func NewApp(ctx context.Context, cfg *config.ClientConfig, build models.AppBuildInfo, log *logger.Logger) (*App, error) {
	log.Info().
		Str("version", build.Version).
		Str("commit", build.Commit).
		Msg("starting sync client")

	db, err := store.NewConnectSQLite(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, fmt.Errorf("open local database: %w", err)
	}

	app, err := wire(cfg, build, db, log)
	if err != nil {
		db.Close()
		return nil, err
	}
	return app, nil
}

func wire(cfg *config.ClientConfig, build models.AppBuildInfo, db *store.DB, log *logger.Logger) (*App, error) {
	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migrate local database: %w", err)
	}

	sealer, err := crypto.NewSealer([]byte(cfg.App.HashKey), keychainSealInfo)
	if err != nil {
		return nil, fmt.Errorf("create keychain sealer: %w", err)
	}
	storages := store.NewStorages(db, sealer, log)

	adapters, err := adapter.NewAdapters(cfg, storages.Keychain, log)
	if err != nil {
		return nil, fmt.Errorf("create adapters: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		newBuildInfoGauge(build),
	)

	services, err := service.NewServices(cfg, storages, adapters, registry, log)
	if err != nil {
		return nil, fmt.Errorf("create services: %w", err)
	}

	handler := apihttp.NewHandler(services.Orchestrator, adapters.Identity, registry, cfg.Server.AuthToken, log)
	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	switch {
	case errors.Is(err, server.ErrNoServersAreCreated):
		log.Info().Msg("control API disabled")
	case err != nil:
		services.Orchestrator.Close()
		return nil, fmt.Errorf("create control API server: %w", err)
	}

	return newApp(services, srv, log, db), nil
}

// newBuildInfoGauge exports build metadata as labels of a constant 1.
func newBuildInfoGauge(build models.AppBuildInfo) prometheus.Gauge {
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sync_build_info",
		Help: "Build metadata of the running sync client.",
		ConstLabels: prometheus.Labels{
			"version": build.Version,
			"date":    build.Date,
			"commit":  build.Commit,
		},
	})
	g.Set(1)
	return g
}

func newApp(services *service.Services, srv server.Server, log *logger.Logger, closers ...io.Closer) *App {
	return &App{
		services: services,
		server:   srv,
		closers:  closers,
		logger:   log,
	}
}

// Run treats startup as a return to the foreground, then serves the control
// API until ctx is cancelled or a termination signal arrives. Everything is
// released before it returns.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()
	defer a.close()

	events := a.services.Orchestrator.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.logEvents(events)
	}()
	defer func() {
		a.services.Orchestrator.Unsubscribe(events)
		<-done
	}()

	a.services.Orchestrator.ApplicationDidBecomeActive(ctx)

	if a.server == nil {
		<-ctx.Done()
		a.logger.Info().Msg("client stopped")
		return nil
	}

	return a.server.Run(ctx)
}

func (a *App) logEvents(events <-chan models.SyncEvent) {
	for ev := range events {
		e := a.logger.Debug().Str("event", string(ev.Kind)).Str("reason", string(ev.Reason))
		if ev.Kind == models.SyncEventFinished {
			e = e.Str("display_state", string(ev.Result.State))
		}
		e.Msg("sync event")
	}
}

func (a *App) close() {
	a.services.Orchestrator.Close()

	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Err(err).Msg("error releasing client resources")
		}
	}
}
