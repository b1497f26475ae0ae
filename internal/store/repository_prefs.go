// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
)

// prefsRepository is the SQLite-backed raw storage for [Prefs]. It works on
// the "prefs" table.
type prefsRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPrefsRepository constructs a [Prefs] backed by the provided database
// connection and logger.
func NewPrefsRepository(db *DB, logger *logger.Logger) Prefs {
	logger.Debug().Msg("creating prefs repository")
	return &prefs{backend: &prefsRepository{db: db, logger: logger}}
}

func (r *prefsRepository) get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := selectPref(key)
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	err = r.db.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		r.logger.Err(err).Str("func", "*prefsRepository.get").Str("key", key).Msg("error reading pref")
		return "", false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return value, true, nil
}

func (r *prefsRepository) set(ctx context.Context, key, value string) error {
	query, args, err := upsertPref(key, value, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withRetry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		r.logger.Err(err).Str("func", "*prefsRepository.set").Str("key", key).Msg("error writing pref")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *prefsRepository) remove(ctx context.Context, keys ...string) error {
	query, args, err := deletePrefs(keys)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withRetry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		r.logger.Err(err).Str("func", "*prefsRepository.remove").Strs("keys", keys).Msg("error removing prefs")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
