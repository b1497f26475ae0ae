// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sync-keeper/internal/client"
	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(build)

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewLogger("go-sync-keeper").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger("go-sync-keeper", cfg.App.LogFile)

	ctx := context.Background()
	app, err := client.NewApp(ctx, cfg, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo(build models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", build.Version)
	fmt.Printf("Build date: %s\n", build.Date)
	fmt.Printf("Build commit: %s\n", build.Commit)
}
