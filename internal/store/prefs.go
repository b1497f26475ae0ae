// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// prefBackend is the raw string storage behind [Prefs].
type prefBackend interface {
	get(ctx context.Context, key string) (string, bool, error)
	set(ctx context.Context, key, value string) error
	remove(ctx context.Context, keys ...string) error
}

// prefs adds typed accessors over a raw string [prefBackend]. Booleans are
// stored as "true"/"false", timestamps as Unix milliseconds.
type prefs struct {
	backend prefBackend
}

func (p *prefs) GetString(ctx context.Context, key string) (string, bool, error) {
	return p.backend.get(ctx, key)
}

func (p *prefs) SetString(ctx context.Context, key, value string) error {
	return p.backend.set(ctx, key, value)
}

func (p *prefs) GetBool(ctx context.Context, key string) (bool, bool, error) {
	raw, ok, err := p.backend.get(ctx, key)
	if err != nil || !ok {
		return false, ok, err
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false, fmt.Errorf("%w: %s=%q", ErrInvalidPrefValue, key, raw)
	}
	return v, true, nil
}

func (p *prefs) SetBool(ctx context.Context, key string, value bool) error {
	return p.backend.set(ctx, key, strconv.FormatBool(value))
}

func (p *prefs) GetTime(ctx context.Context, key string) (time.Time, bool, error) {
	raw, ok, err := p.backend.get(ctx, key)
	if err != nil || !ok {
		return time.Time{}, ok, err
	}

	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %s=%q", ErrInvalidPrefValue, key, raw)
	}
	return time.UnixMilli(ms), true, nil
}

func (p *prefs) SetTime(ctx context.Context, key string, value time.Time) error {
	return p.backend.set(ctx, key, strconv.FormatInt(value.UnixMilli(), 10))
}

func (p *prefs) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return p.backend.remove(ctx, keys...)
}
