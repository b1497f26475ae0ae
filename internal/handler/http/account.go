// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
	"github.com/MKhiriev/go-sync-keeper/internal/validators"
	"github.com/MKhiriev/go-sync-keeper/models"
)

// accountAddedRequest is the account state plus the engines the user
// declined while setting it up.
type accountAddedRequest struct {
	models.AccountState
	DeclinedEngines []models.EngineName `json:"declined_engines"`
}

// accountAdded stores the account handed over by the host and starts syncing
// if it is ready for it.
func (h *Handler) accountAdded(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req accountAddedRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		log.Err(err).Str("func", "*Handler.accountAdded").Msg("invalid JSON was passed")
		writeError(w, ErrInvalidRequest)
		return
	}
	if err := h.validator.Validate(ctx, req.AccountState); err != nil {
		log.Err(err).Str("func", "*Handler.accountAdded").Msg("invalid account state was passed")
		writeError(w, ErrInvalidRequest)
		return
	}
	for _, engine := range req.DeclinedEngines {
		if err := h.validator.Validate(ctx, engine, validators.FieldEngine); err != nil {
			log.Err(err).Str("func", "*Handler.accountAdded").Msg("invalid declined engine was passed")
			writeError(w, ErrInvalidRequest)
			return
		}
	}

	if err := h.accounts.SaveAccount(ctx, req.AccountState); err != nil {
		log.Err(err).Str("func", "*Handler.accountAdded").Msg("error saving account state")
		writeError(w, err)
		return
	}

	if req.DeclinedEngines != nil {
		if err := h.orchestrator.SetDeclinedAtSetup(ctx, req.DeclinedEngines); err != nil {
			log.Err(err).Str("func", "*Handler.accountAdded").Msg("error saving declined engines")
			writeError(w, err)
			return
		}
	}

	if err := h.orchestrator.OnAddedAccount(ctx); err != nil {
		log.Err(err).Str("func", "*Handler.accountAdded").Msg("initial sync after sign-in failed")
	}

	utils.WriteJSON(w, syncResponse{State: h.orchestrator.DisplayState()}, http.StatusOK)
}

func (h *Handler) accountRemoved(w http.ResponseWriter, r *http.Request) {
	if err := h.orchestrator.OnRemovedAccount(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.accountRemoved").Msg("error wiping sync state")
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	if err := h.orchestrator.SignOut(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.signOut").Msg("error signing out")
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
