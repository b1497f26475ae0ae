// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/store"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
	"github.com/MKhiriev/go-sync-keeper/models"
)

const (
	// AccountStateLabel is the keychain label holding the signed-in account.
	AccountStateLabel = "account.state"

	tokenServerPath = "/1.0/sync/1.5"

	// accessTokenLeeway is how long before expiry a cached access token is
	// considered stale.
	accessTokenLeeway = time.Minute
	// defaultAccessTokenTTL applies when neither expires_in nor a JWT exp is
	// available.
	defaultAccessTokenTTL = 5 * time.Minute
)

type clientConfiguration struct {
	TokenServerBaseURL string `json:"sync_tokenserver_base_url"`
}

type remoteDevice struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	IsCurrentDevice bool   `json:"isCurrentDevice"`
}

type commandsResponse struct {
	Index    int64                  `json:"index"`
	Last     bool                   `json:"last"`
	Messages []models.DeviceCommand `json:"messages"`
}

type httpIdentityProvider struct {
	client   *utils.HTTPClient
	oauth    oauth2.Config
	keychain store.Keychain

	tokenServerOverride string
	deviceName          string

	mu             sync.Mutex
	accessToken    *oauth2.Token
	tokenServerURL string

	// accountMu serializes read-modify-write cycles on the stored account.
	accountMu sync.Mutex

	logger *logger.Logger
}

// NewHTTPIdentityProvider constructs an [IdentityProvider] talking to the
// identity service at adapterCfg.IdentityAddress. Account state is read from
// and written to keychain under [AccountStateLabel].
//
// Returns an error if the identity address cannot be parsed as a URL.
func NewHTTPIdentityProvider(adapterCfg config.ClientAdapter, appCfg config.ClientApp, keychain store.Keychain, logger *logger.Logger) (IdentityProvider, error) {
	baseURL, err := utils.NormalizeBaseURL(adapterCfg.IdentityAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid identity address: %w", err)
	}

	return &httpIdentityProvider{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		oauth: oauth2.Config{
			ClientID: appCfg.ClientID,
			Endpoint: oauth2.Endpoint{
				TokenURL:  baseURL + "/v1/oauth/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		keychain:            keychain,
		tokenServerOverride: strings.TrimSpace(adapterCfg.TokenServerAddress),
		deviceName:          appCfg.DeviceName,
		logger:              logger,
	}, nil
}

// AccessToken implements [IdentityProvider]. Tokens are minted with the
// refresh-token grant and reused until a minute before they expire. A
// rotated refresh token is written back to the account state.
func (p *httpIdentityProvider) AccessToken(ctx context.Context, scope string) (models.AccessTokenInfo, error) {
	account, err := p.loadAccount(ctx)
	if err != nil {
		return models.AccessTokenInfo{}, err
	}
	if account.RefreshToken == "" {
		return models.AccessTokenInfo{}, fmt.Errorf("%w: no refresh token", ErrNoAccount)
	}

	token, err := p.currentToken(ctx, account)
	if err != nil {
		return models.AccessTokenInfo{}, err
	}

	info := models.AccessTokenInfo{Token: token.AccessToken, AccountUID: account.UID, ExpiresAt: token.Expiry}
	if key, ok := account.ScopedKeys[scope]; ok {
		info.Key = &key
	}
	return info, nil
}

func (p *httpIdentityProvider) currentToken(ctx context.Context, account *models.AccountState) (*oauth2.Token, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.accessToken != nil && time.Until(p.accessToken.Expiry) > accessTokenLeeway {
		return p.accessToken, nil
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client.GetClient())
	token, err := p.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: account.RefreshToken}).Token()
	if err != nil {
		p.logger.Err(err).Str("func", "*httpIdentityProvider.currentToken").Msg("refresh grant failed")
		return nil, mapOAuthError(err)
	}

	if token.Expiry.IsZero() {
		if exp, ok := utils.AccessTokenExpiry(token.AccessToken); ok {
			token.Expiry = exp
		} else {
			token.Expiry = time.Now().Add(defaultAccessTokenTTL)
		}
	}

	if token.RefreshToken != "" && token.RefreshToken != account.RefreshToken {
		err = p.updateAccount(ctx, func(stored *models.AccountState) bool {
			if stored.UID != account.UID {
				return false
			}
			stored.RefreshToken = token.RefreshToken
			return true
		})
		if err != nil {
			p.logger.Err(err).Str("func", "*httpIdentityProvider.currentToken").Msg("error saving rotated refresh token")
		}
	}

	p.accessToken = token
	return token, nil
}

// TokenServerEndpointURL implements [IdentityProvider]. A configured override
// wins; otherwise the URL is discovered once from the identity service's
// client configuration document.
func (p *httpIdentityProvider) TokenServerEndpointURL(ctx context.Context) (string, error) {
	if p.tokenServerOverride != "" {
		return p.tokenServerOverride, nil
	}

	p.mu.Lock()
	cached := p.tokenServerURL
	p.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	var cfg clientConfiguration
	resp, err := p.client.R().
		SetContext(ctx).
		SetResult(&cfg).
		Get("/.well-known/fxa-client-configuration")
	if err != nil {
		return "", transportError("client configuration request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	if cfg.TokenServerBaseURL == "" {
		return "", fmt.Errorf("%w: missing sync_tokenserver_base_url", ErrInvalidResponse)
	}

	endpoint := strings.TrimRight(cfg.TokenServerBaseURL, "/") + tokenServerPath

	p.mu.Lock()
	p.tokenServerURL = endpoint
	p.mu.Unlock()

	return endpoint, nil
}

// LocalDevice implements [IdentityProvider].
func (p *httpIdentityProvider) LocalDevice(ctx context.Context) (models.DeviceDescriptor, error) {
	token, err := p.AccessToken(ctx, ScopeOldSync)
	if err != nil {
		return models.DeviceDescriptor{}, err
	}

	var devices []remoteDevice
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(token.Token).
		SetResult(&devices).
		Get("/v1/account/devices")
	if err != nil {
		return models.DeviceDescriptor{}, transportError("devices request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DeviceDescriptor{}, err
	}

	for _, d := range devices {
		if !d.IsCurrentDevice {
			continue
		}
		if d.ID == "" {
			return models.DeviceDescriptor{}, fmt.Errorf("%w: current device without id", ErrInvalidResponse)
		}

		name := d.Name
		if name == "" {
			name = p.deviceName
		}
		return models.DeviceDescriptor{ID: d.ID, DisplayName: name, Kind: models.ParseDeviceType(d.Type)}, nil
	}

	return models.DeviceDescriptor{}, ErrNoLocalDevice
}

// HasSyncableAccount implements [IdentityProvider].
func (p *httpIdentityProvider) HasSyncableAccount(ctx context.Context) bool {
	account, err := p.loadAccount(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoAccount) {
			p.logger.Err(err).Str("func", "*httpIdentityProvider.HasSyncableAccount").Msg("error loading account")
		}
		return false
	}
	return account.IsSyncable()
}

// AccountUID implements [IdentityProvider].
func (p *httpIdentityProvider) AccountUID(ctx context.Context) (string, error) {
	account, err := p.loadAccount(ctx)
	if err != nil {
		return "", err
	}
	return account.UID, nil
}

// SaveAccount implements [IdentityProvider]. Cached access tokens belong to
// the previous account and are dropped.
func (p *httpIdentityProvider) SaveAccount(ctx context.Context, account models.AccountState) error {
	p.accountMu.Lock()
	err := p.saveAccount(ctx, account)
	p.accountMu.Unlock()
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.accessToken = nil
	p.mu.Unlock()
	return nil
}

func (p *httpIdentityProvider) saveAccount(ctx context.Context, account models.AccountState) error {
	blob, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("encode account state: %w", err)
	}
	if err = p.keychain.Set(ctx, AccountStateLabel, blob); err != nil {
		return fmt.Errorf("save account state: %w", err)
	}
	return nil
}

// Logout implements [IdentityProvider]. The local account state is removed
// even if the remote destroy call fails; both failures are joined.
func (p *httpIdentityProvider) Logout(ctx context.Context) error {
	var errs []error

	account, err := p.loadAccount(ctx)
	switch {
	case errors.Is(err, ErrNoAccount):
	case err != nil:
		errs = append(errs, err)
	default:
		resp, err := p.client.R().
			SetContext(ctx).
			SetBody(map[string]string{"refresh_token": account.RefreshToken, "client_id": p.oauth.ClientID}).
			Post("/v1/oauth/destroy")
		if err != nil {
			errs = append(errs, transportError("destroy token request", err))
		} else if err = mapHTTPError(resp); err != nil {
			errs = append(errs, err)
		}
	}

	p.accountMu.Lock()
	if err := p.keychain.Delete(ctx, AccountStateLabel); err != nil {
		errs = append(errs, fmt.Errorf("delete account state: %w", err))
	}
	p.accountMu.Unlock()

	p.mu.Lock()
	p.accessToken = nil
	p.mu.Unlock()

	return errors.Join(errs...)
}

// PollCommands implements [IdentityProvider]. The consumed index is stored
// with the account so the same commands are not returned twice.
func (p *httpIdentityProvider) PollCommands(ctx context.Context) ([]models.DeviceCommand, error) {
	// The access token may rotate the stored refresh token, so the account
	// is read after it.
	token, err := p.AccessToken(ctx, ScopeOldSync)
	if err != nil {
		return nil, err
	}
	account, err := p.loadAccount(ctx)
	if err != nil {
		return nil, err
	}

	var result commandsResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(token.Token).
		SetQueryParam("index", strconv.FormatInt(account.CommandIndex, 10)).
		SetResult(&result).
		Get("/v1/account/device/commands")
	if err != nil {
		return nil, transportError("device commands request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	if result.Index > account.CommandIndex {
		err = p.updateAccount(ctx, func(stored *models.AccountState) bool {
			if stored.UID != account.UID || result.Index <= stored.CommandIndex {
				return false
			}
			stored.CommandIndex = result.Index
			return true
		})
		if err != nil {
			return result.Messages, err
		}
	}

	return result.Messages, nil
}

// updateAccount reloads the stored account, applies fn and saves the result
// when fn reports a change.
func (p *httpIdentityProvider) updateAccount(ctx context.Context, fn func(*models.AccountState) bool) error {
	p.accountMu.Lock()
	defer p.accountMu.Unlock()

	account, err := p.loadAccount(ctx)
	if err != nil {
		return err
	}
	if !fn(account) {
		return nil
	}
	return p.saveAccount(ctx, *account)
}

func (p *httpIdentityProvider) loadAccount(ctx context.Context) (*models.AccountState, error) {
	blob, err := p.keychain.Get(ctx, AccountStateLabel)
	if errors.Is(err, store.ErrKeychainItemNotFound) {
		return nil, ErrNoAccount
	}
	if err != nil {
		return nil, fmt.Errorf("load account state: %w", err)
	}

	var account models.AccountState
	if err := json.Unmarshal(blob, &account); err != nil {
		return nil, fmt.Errorf("decode account state: %w", err)
	}
	return &account, nil
}
