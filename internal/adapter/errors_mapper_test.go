// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"
)

func TestMapStatus(t *testing.T) {
	assert.NoError(t, mapStatus(http.StatusOK, ""))
	assert.NoError(t, mapStatus(http.StatusNoContent, ""))

	assert.ErrorIs(t, mapStatus(http.StatusBadRequest, "x"), ErrBadRequest)
	assert.ErrorIs(t, mapStatus(http.StatusNotFound, "x"), ErrNotFound)
	assert.ErrorIs(t, mapStatus(http.StatusConflict, "x"), ErrConflict)
	assert.ErrorIs(t, mapStatus(http.StatusBadGateway, "x"), ErrBadGateway)
	assert.ErrorIs(t, mapStatus(http.StatusGatewayTimeout, "x"), ErrGatewayTimeout)

	err := mapStatus(http.StatusTeapot, "")
	assert.EqualError(t, err, "http 418: I'm a teapot")
}

func TestMapOAuthError(t *testing.T) {
	assert.ErrorIs(t, mapOAuthError(errors.New("dial tcp: refused")), ErrNetwork)

	assert.ErrorIs(t, mapOAuthError(&oauth2.RetrieveError{ErrorCode: "invalid_grant"}), ErrUnauthorized)

	assert.ErrorIs(t, mapOAuthError(&oauth2.RetrieveError{}), ErrInvalidResponse)

	assert.ErrorIs(t, mapOAuthError(&oauth2.RetrieveError{
		Response: &http.Response{StatusCode: http.StatusBadGateway},
	}), ErrBadGateway)
}
