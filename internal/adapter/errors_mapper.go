// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
)

func mapHTTPError(resp *resty.Response) error {
	return mapStatus(resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
}

func mapStatus(status int, body string) error {
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	switch status {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, body)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrTooManyRequests, body)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, body)
	case http.StatusBadGateway:
		return fmt.Errorf("%w: %s", ErrBadGateway, body)
	case http.StatusServiceUnavailable:
		return fmt.Errorf("%w: %s", ErrServiceUnavailable, body)
	case http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %s", ErrGatewayTimeout, body)
	default:
		if body == "" {
			body = http.StatusText(status)
		}
		return fmt.Errorf("http %d: %s", status, body)
	}
}

// transportError wraps an error returned by the HTTP client itself.
func transportError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrNetwork, err)
}

// mapOAuthError turns an x/oauth2 refresh failure into the package sentinels.
// invalid_grant means the refresh token is no longer valid.
func mapOAuthError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if !errors.As(err, &retrieveErr) {
		return transportError("refresh access token", err)
	}

	if retrieveErr.ErrorCode == "invalid_grant" || retrieveErr.ErrorCode == "invalid_client" {
		return fmt.Errorf("refresh access token: %w: %s", ErrUnauthorized, retrieveErr.ErrorCode)
	}
	if retrieveErr.Response == nil {
		return fmt.Errorf("refresh access token: %w", ErrInvalidResponse)
	}

	return fmt.Errorf("refresh access token: %w", mapStatus(retrieveErr.Response.StatusCode, strings.TrimSpace(string(retrieveErr.Body))))
}
