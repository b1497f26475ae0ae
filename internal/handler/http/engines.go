// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
	"github.com/MKhiriev/go-sync-keeper/internal/validators"
	"github.com/MKhiriev/go-sync-keeper/models"
)

type engineToggleRequest struct {
	Enabled *bool `json:"enabled"`
}

// setEngineEnabled records a user toggle. The change is submitted with the
// next run.
func (h *Handler) setEngineEnabled(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	engine := models.EngineName(chi.URLParam(r, "engine"))
	if err := h.validator.Validate(r.Context(), engine, validators.FieldEngine); err != nil {
		log.Err(err).Str("func", "*Handler.setEngineEnabled").Msg("unknown engine")
		writeError(w, ErrInvalidRequest)
		return
	}

	var req engineToggleRequest
	if err := utils.ReadJSON(r, &req); err != nil || req.Enabled == nil {
		log.Error().Err(err).Str("func", "*Handler.setEngineEnabled").Msg("invalid toggle was passed")
		writeError(w, ErrInvalidRequest)
		return
	}

	if err := h.orchestrator.SetEngineEnabled(r.Context(), engine, *req.Enabled); err != nil {
		log.Err(err).Str("func", "*Handler.setEngineEnabled").Msg("error saving engine toggle")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
