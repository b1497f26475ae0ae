// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

// HTTP status sentinels returned by mapHTTPError.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")
	ErrGatewayTimeout      = errors.New("gateway timeout")
)

var (
	// ErrNetwork wraps transport failures where no HTTP response was
	// received (DNS, connection refused, timeouts).
	ErrNetwork = errors.New("network error")

	// ErrNoAccount is returned when no signed-in account is stored locally.
	ErrNoAccount = errors.New("no signed-in account")

	// ErrNoLocalDevice is returned when the account has no record for the
	// current device.
	ErrNoLocalDevice = errors.New("local device not registered")

	// ErrInvalidResponse is returned when a 2xx body cannot be decoded or
	// lacks required fields.
	ErrInvalidResponse = errors.New("invalid response")
)
