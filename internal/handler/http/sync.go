// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/service"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
	"github.com/MKhiriev/go-sync-keeper/models"
)

type syncCollectionsRequest struct {
	Names []string `json:"names"`
}

type syncResponse struct {
	State models.DisplayState `json:"state"`
}

type stateResponse struct {
	State              models.DisplayState `json:"state"`
	Syncing            bool                `json:"syncing"`
	LastSyncFinishedAt *time.Time          `json:"last_sync_finished_at,omitempty"`
}

func (h *Handler) syncEverything(w http.ResponseWriter, r *http.Request) {
	result, err := h.orchestrator.SyncEverything(r.Context(), models.ReasonUser)
	writeRunResult(w, r, result, err)
}

func (h *Handler) syncCollections(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req syncCollectionsRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		log.Err(err).Str("func", "*Handler.syncCollections").Msg("invalid JSON was passed")
		writeError(w, ErrInvalidRequest)
		return
	}
	if len(req.Names) == 0 {
		log.Error().Str("func", "*Handler.syncCollections").Msg("no collection names were given")
		writeError(w, ErrInvalidRequest)
		return
	}

	result, err := h.orchestrator.SyncNamedCollections(r.Context(), models.ReasonUser, req.Names)
	writeRunResult(w, r, result, err)
}

func (h *Handler) syncState(w http.ResponseWriter, r *http.Request) {
	resp := stateResponse{
		State:   h.orchestrator.DisplayState(),
		Syncing: h.orchestrator.IsSyncing(),
	}
	if last, ok := h.orchestrator.LastSyncFinishTime(r.Context()); ok {
		resp.LastSyncFinishedAt = &last
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

// writeRunResult answers with the run's display state. A run that failed
// before reaching the remote service still resolves to a state; only a run
// that never started is an error.
func writeRunResult(w http.ResponseWriter, r *http.Request, result models.SyncResult, err error) {
	if err != nil {
		logger.FromRequest(r).Err(err).
			Str("reason", string(result.Reason)).
			Str("state", string(result.State)).
			Msg("sync run failed")

		if errors.Is(err, service.ErrSyncInProgress) || result.State == "" {
			writeError(w, fmt.Errorf("run not started: %w", err))
			return
		}
	}

	utils.WriteJSON(w, syncResponse{State: result.State}, http.StatusOK)
}
