// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/go-sync-keeper/internal/adapter"
	"github.com/MKhiriev/go-sync-keeper/internal/crypto"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/store"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
	"github.com/MKhiriev/go-sync-keeper/models"
)

// CredentialSkew is how long before expiry a cached credential stops being
// served.
const CredentialSkew = 5 * time.Minute

const (
	credentialStateVersion = 1

	prefAuthStateUniqueID = "account.syncAuthStateUniqueID"
	authStateLabelPrefix  = "syncAuthState."
)

// durableCredential is the keychain layout of a cached credential.
type durableCredential struct {
	Version   int                     `json:"version"`
	Token     models.TokenServerToken `json:"token"`
	ForKey    string                  `json:"forKey"`
	ExpiresAt int64                   `json:"expiresAt"`
	UID       string                  `json:"uid"`
}

type credentialCache struct {
	identity    adapter.IdentityProvider
	tokenServer adapter.TokenServerAdapter
	prefs       store.Prefs
	keychain    store.Keychain
	ids         *utils.UUIDGenerator
	logger      *logger.Logger

	group singleflight.Group

	mu         sync.Mutex
	cached     *models.CachedCredential
	loaded     bool
	generation uint64

	// storeMu orders durable writes against invalidation.
	storeMu sync.Mutex
}

// NewCredentialCache returns a CredentialCache that fetches through identity
// and tokenServer and keeps a durable copy in keychain.
func NewCredentialCache(
	identity adapter.IdentityProvider,
	tokenServer adapter.TokenServerAdapter,
	prefs store.Prefs,
	keychain store.Keychain,
	log *logger.Logger,
) CredentialCache {
	return &credentialCache{
		identity:    identity,
		tokenServer: tokenServer,
		prefs:       prefs,
		keychain:    keychain,
		ids:         utils.NewUUIDGenerator(),
		logger:      log,
	}
}

func (c *credentialCache) Credential(ctx context.Context, now time.Time, allowExpired bool) (models.CachedCredential, error) {
	if cred, ok := c.current(ctx); ok && c.ownedByCurrentAccount(ctx, cred) &&
		(allowExpired || !cred.IsExpired(now, CredentialSkew)) {
		return cred, nil
	}

	c.mu.Lock()
	gen := c.generation
	c.mu.Unlock()

	// Fetches are keyed by generation so a caller arriving after Invalidate
	// never joins a fetch that started before it.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(strconv.FormatUint(gen, 10), func() (any, error) {
		return c.fetch(fetchCtx, now, gen)
	})

	select {
	case <-ctx.Done():
		return models.CachedCredential{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return models.CachedCredential{}, res.Err
		}
		return res.Val.(models.CachedCredential), nil
	}
}

// ownedByCurrentAccount reports whether cred was fetched for the account that
// is signed in now.
func (c *credentialCache) ownedByCurrentAccount(ctx context.Context, cred models.CachedCredential) bool {
	uid, err := c.identity.AccountUID(ctx)
	if err != nil {
		c.logger.Debug().Err(err).Str("func", "credentialCache.ownedByCurrentAccount").Msg("no current account; cached credential not served")
		return false
	}
	if uid != cred.AccountUID {
		c.logger.Info().Str("func", "credentialCache.ownedByCurrentAccount").Msg("cached credential belongs to another account; refetching")
		return false
	}
	return true
}

func (c *credentialCache) Invalidate(ctx context.Context) {
	c.mu.Lock()
	c.generation++
	c.cached = nil
	c.loaded = true
	c.mu.Unlock()

	c.storeMu.Lock()
	defer c.storeMu.Unlock()

	label, ok, err := c.label(ctx, false)
	if err != nil || !ok {
		return
	}
	if err = c.keychain.Delete(ctx, label); err != nil {
		c.logger.Err(err).Str("func", "credentialCache.Invalidate").Msg("failed to delete durable credential")
	}
}

func (c *credentialCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	c.cached = nil
	c.loaded = true
	c.mu.Unlock()

	c.storeMu.Lock()
	defer c.storeMu.Unlock()

	label, ok, err := c.label(ctx, false)
	if err != nil {
		return fmt.Errorf("read auth state id: %w", err)
	}

	var errs []error
	if ok {
		if err = c.keychain.Delete(ctx, label); err != nil {
			errs = append(errs, fmt.Errorf("delete durable credential: %w", err))
		}
	}
	if err = c.prefs.Remove(ctx, prefAuthStateUniqueID); err != nil {
		errs = append(errs, fmt.Errorf("remove auth state id: %w", err))
	}

	return errors.Join(errs...)
}

// current returns the in-memory credential, loading the durable copy the
// first time it is asked for.
func (c *credentialCache) current(ctx context.Context) (models.CachedCredential, bool) {
	c.mu.Lock()
	if c.cached != nil {
		cred := *c.cached
		c.mu.Unlock()
		return cred, true
	}
	if c.loaded {
		c.mu.Unlock()
		return models.CachedCredential{}, false
	}
	gen := c.generation
	c.mu.Unlock()

	cred, ok := c.load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		return models.CachedCredential{}, false
	}
	c.loaded = true
	if ok {
		c.cached = &cred
	}
	return cred, ok
}

func (c *credentialCache) fetch(ctx context.Context, now time.Time, gen uint64) (models.CachedCredential, error) {
	token, err := c.identity.AccessToken(ctx, adapter.ScopeOldSync)
	if err != nil {
		return models.CachedCredential{}, fmt.Errorf("%w: %w", ErrAccessToken, err)
	}
	if token.Key == nil || token.Key.K == "" {
		return models.CachedCredential{}, ErrScopedKey
	}

	endpoint, err := c.identity.TokenServerEndpointURL(ctx)
	if err != nil {
		return models.CachedCredential{}, fmt.Errorf("%w: %w", ErrNoTokenServerURL, err)
	}

	key, err := crypto.DeriveSyncKey(token.Key.K)
	if err != nil {
		return models.CachedCredential{}, fmt.Errorf("%w: %w", ErrScopedKey, err)
	}

	serverToken, err := c.tokenServer.Exchange(ctx, endpoint, token.Token, token.Key.Kid)
	if err != nil {
		return models.CachedCredential{}, fmt.Errorf("%w: %w", ErrTokenExchange, err)
	}

	cred := models.CachedCredential{
		Token:      serverToken,
		DerivedKey: key,
		ExpiresAt:  now.Add(serverToken.Duration()),
		AccountUID: token.AccountUID,
	}

	c.mu.Lock()
	if c.generation != gen {
		c.mu.Unlock()
		c.logger.Debug().Str("func", "credentialCache.fetch").Msg("cache invalidated during fetch; result not cached")
		return cred, nil
	}
	c.cached = &cred
	c.loaded = true
	c.mu.Unlock()

	c.persist(ctx, cred, gen)
	return cred, nil
}

func (c *credentialCache) persist(ctx context.Context, cred models.CachedCredential, gen uint64) {
	c.storeMu.Lock()
	defer c.storeMu.Unlock()

	c.mu.Lock()
	stale := c.generation != gen
	c.mu.Unlock()
	if stale {
		return
	}

	label, _, err := c.label(ctx, true)
	if err != nil {
		c.logger.Err(err).Str("func", "credentialCache.persist").Msg("failed to resolve auth state id")
		return
	}

	blob, err := json.Marshal(durableCredential{
		Version:   credentialStateVersion,
		Token:     cred.Token,
		ForKey:    hex.EncodeToString(cred.DerivedKey),
		ExpiresAt: cred.ExpiresAt.UnixMilli(),
		UID:       cred.AccountUID,
	})
	if err != nil {
		c.logger.Err(err).Str("func", "credentialCache.persist").Msg("failed to encode credential")
		return
	}

	if err = c.keychain.Set(ctx, label, blob); err != nil {
		c.logger.Err(err).Str("func", "credentialCache.persist").Msg("failed to store credential")
	}
}

// load reads the durable copy. Anything unreadable counts as no cache.
func (c *credentialCache) load(ctx context.Context) (models.CachedCredential, bool) {
	label, ok, err := c.label(ctx, false)
	if err != nil {
		c.logger.Err(err).Str("func", "credentialCache.load").Msg("failed to read auth state id")
		return models.CachedCredential{}, false
	}
	if !ok {
		return models.CachedCredential{}, false
	}

	blob, err := c.keychain.Get(ctx, label)
	if errors.Is(err, store.ErrKeychainItemNotFound) {
		return models.CachedCredential{}, false
	}
	if err != nil {
		c.logger.Err(err).Str("func", "credentialCache.load").Msg("failed to read durable credential")
		return models.CachedCredential{}, false
	}

	var state durableCredential
	if err = json.Unmarshal(blob, &state); err != nil {
		c.logger.Warn().Err(err).Str("func", "credentialCache.load").Msg("discarding undecodable durable credential")
		return models.CachedCredential{}, false
	}
	if state.Version != credentialStateVersion {
		c.logger.Warn().Int("version", state.Version).Str("func", "credentialCache.load").Msg("discarding durable credential of unknown version")
		return models.CachedCredential{}, false
	}

	key, err := hex.DecodeString(state.ForKey)
	if err != nil {
		c.logger.Warn().Err(err).Str("func", "credentialCache.load").Msg("discarding durable credential with bad key")
		return models.CachedCredential{}, false
	}

	return models.CachedCredential{
		Token:      state.Token,
		DerivedKey: key,
		ExpiresAt:  time.UnixMilli(state.ExpiresAt),
		AccountUID: state.UID,
	}, true
}

// label returns the keychain label for this install. With create set a
// missing or malformed install id is generated and stored.
func (c *credentialCache) label(ctx context.Context, create bool) (string, bool, error) {
	id, ok, err := c.prefs.GetString(ctx, prefAuthStateUniqueID)
	if err != nil {
		return "", false, err
	}
	if !ok || !utils.IsUUID(id) {
		if !create {
			return "", false, nil
		}
		id = c.ids.Generate()
		if err = c.prefs.SetString(ctx, prefAuthStateUniqueID, id); err != nil {
			return "", false, err
		}
	}
	return authStateLabelPrefix + id, true, nil
}
