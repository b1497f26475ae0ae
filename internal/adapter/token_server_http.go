// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
	"github.com/MKhiriev/go-sync-keeper/models"
)

type httpTokenServerAdapter struct {
	client  *utils.HTTPClient
	limiter *rate.Limiter
	logger  *logger.Logger
}

// NewHTTPTokenServerAdapter constructs a [TokenServerAdapter]. Exchanges are
// paced to adapterCfg.TokenServerRPS with a burst of one; the endpoint URL is
// supplied per call because it is discovered from the identity provider.
func NewHTTPTokenServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) TokenServerAdapter {
	rps := adapterCfg.TokenServerRPS
	if rps <= 0 {
		rps = config.DefaultTokenServerRPS
	}

	return &httpTokenServerAdapter{
		client:  utils.NewHTTPClient("", adapterCfg.RequestTimeout),
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  logger,
	}
}

// Exchange implements [TokenServerAdapter]. It sends
// GET <endpointURL> with "Authorization: Bearer <accessToken>" and
// "X-KeyID: <keyID>". The server clock from X-Timestamp is recorded on the
// returned token.
func (a *httpTokenServerAdapter) Exchange(ctx context.Context, endpointURL, accessToken, keyID string) (models.TokenServerToken, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return models.TokenServerToken{}, transportError("token exchange rate limit", err)
	}

	var token models.TokenServerToken
	resp, err := a.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetHeader("X-KeyID", keyID).
		SetHeader("Accept", "application/json").
		SetResult(&token).
		Get(endpointURL)
	if err != nil {
		return models.TokenServerToken{}, transportError("token exchange request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		a.logger.Warn().Err(err).Int("status", resp.StatusCode()).Msg("token exchange rejected")
		return models.TokenServerToken{}, err
	}

	if token.ID == "" || token.Key == "" || token.DurationInSeconds <= 0 {
		return models.TokenServerToken{}, fmt.Errorf("%w: incomplete token-server token", ErrInvalidResponse)
	}

	if ts := strings.TrimSpace(resp.Header().Get("X-Timestamp")); ts != "" {
		if f, err := strconv.ParseFloat(ts, 64); err == nil {
			token.RemoteTimestamp = int64(f)
		}
	}

	return token, nil
}
