// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

func (h *Handler) foreground(w http.ResponseWriter, r *http.Request) {
	h.orchestrator.ApplicationDidBecomeActive(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) background(w http.ResponseWriter, _ *http.Request) {
	h.orchestrator.ApplicationDidEnterBackground()
	w.WriteHeader(http.StatusNoContent)
}
