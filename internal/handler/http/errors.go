// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-sync-keeper/internal/service"
)

// Sentinel errors of the control API. Callers can match against them with
// [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned when a protected request has
	// no "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidToken is returned when the bearer token does not match the
	// configured control token.
	ErrInvalidToken = errors.New("invalid control token")

	// ErrInvalidRequest is returned for bodies or path values that fail
	// validation.
	ErrInvalidRequest = errors.New("invalid request")
)

var errorStatusMap = map[error]int{
	ErrInvalidRequest:         http.StatusBadRequest,
	service.ErrUnknownEngine:  http.StatusBadRequest,
	service.ErrSyncInProgress: http.StatusConflict,
}

// statusFromError maps err onto a response status. Anything unknown is a
// 500.
func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError answers with the bare status text for err.
func writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	http.Error(w, http.StatusText(status), status)
}
