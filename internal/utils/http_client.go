// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// userAgent is sent with every outbound request.
const userAgent = "go-sync-keeper"

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a resty-backed client with the given base URL and
// per-request timeout. Transport errors (not HTTP status codes) are retried
// once.
//
// An empty baseURL leaves requests absolute.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetHeader("User-Agent", userAgent).
		SetRetryCount(1).
		SetRetryWaitTime(100 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil
		})

	if baseURL != "" {
		client.SetBaseURL(baseURL)
	}
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}

// NormalizeBaseURL trims raw, defaults the scheme to http and strips
// trailing slashes. It returns an error for empty or host-less addresses.
func NormalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse address: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}
