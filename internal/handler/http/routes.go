// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Get("/metrics", h.metrics.ServeHTTP)

	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(middleware.Compress(5, "application/json"))

		r.Post("/api/sync", h.syncEverything)
		r.Post("/api/sync/collections", h.syncCollections)
		r.Get("/api/sync/state", h.syncState)

		r.Post("/api/lifecycle/foreground", h.foreground)
		r.Post("/api/lifecycle/background", h.background)

		r.Post("/api/account/added", h.accountAdded)
		r.Post("/api/account/removed", h.accountRemoved)
		r.Post("/api/account/signout", h.signOut)

		r.Put("/api/engines/{engine}", h.setEngineEnabled)
	})

	router.MethodNotAllowed(hideRoute)

	return router
}

// hideRoute answers an unsupported method with 404 so that callers cannot
// probe which paths exist.
func hideRoute(w http.ResponseWriter, r *http.Request) {
	logger.FromRequest(r).Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("method not allowed")
	http.NotFound(w, r)
}
