// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

// NewServer creates the control API server for handler. It returns
// [ErrNoServersAreCreated] when cfg has no listen address.
func NewServer(handler http.Handler, cfg config.ClientServer, logger *logger.Logger) (Server, error) {
	if cfg.HTTPAddress == "" {
		return nil, ErrNoServersAreCreated
	}

	logger.Info().Msg("creating control API server...")
	return &server{
		httpServer: newHTTPServer(handler, cfg.HTTPAddress, logger),
		logger:     logger,
	}, nil
}

func (s *server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	s.logger.Info().Msg("launching HTTP server")
	go func() {
		errCh <- s.httpServer.listenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("control API: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.Shutdown()
	if err := <-errCh; err != nil {
		return fmt.Errorf("control API: %w", err)
	}

	s.logger.Info().Msg("server shutdown gracefully")
	return nil
}

func (s *server) Shutdown() {
	s.httpServer.shutdown()
}
