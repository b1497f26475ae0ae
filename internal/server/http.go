// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
)

// ShutdownTimeout bounds how long in-flight control requests may take once
// shutdown starts. A request blocked on a sync run is cut off after it.
const ShutdownTimeout = 10 * time.Second

type httpServer struct {
	server *http.Server
	logger *logger.Logger

	mu   sync.Mutex
	addr net.Addr
}

func newHTTPServer(handler http.Handler, address string, logger *logger.Logger) *httpServer {
	return &httpServer{
		server: &http.Server{
			Addr:              address,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// listenAndServe blocks until the server stops. A graceful shutdown is not
// an error.
func (h *httpServer) listenAndServe() error {
	ln, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.addr = ln.Addr()
	h.mu.Unlock()

	h.logger.Info().Str("address", ln.Addr().String()).Msg("control API listening")

	if err = h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (h *httpServer) boundAddr() net.Addr {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.addr
}

func (h *httpServer) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Err(err).Msg("HTTP server shutdown")
		_ = h.server.Close()
	}
}
