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

// keychainRepository is the SQLite-backed implementation of [Keychain]. Blobs
// are stored as given; wrap it with [NewSealedKeychain] to encrypt them.
type keychainRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewKeychainRepository constructs a [Keychain] on the "keychain" table.
func NewKeychainRepository(db *DB, logger *logger.Logger) Keychain {
	logger.Debug().Msg("creating keychain repository")
	return &keychainRepository{db: db, logger: logger}
}

// Get implements [Keychain].
func (r *keychainRepository) Get(ctx context.Context, label string) ([]byte, error) {
	query, args, err := selectKeychainItem(label)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var blob []byte
	err = r.db.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&blob)
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrKeychainItemNotFound
	case err != nil:
		r.logger.Err(err).Str("func", "*keychainRepository.Get").Str("label", label).Msg("error reading keychain item")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return blob, nil
}

// Set implements [Keychain].
func (r *keychainRepository) Set(ctx context.Context, label string, blob []byte) error {
	query, args, err := upsertKeychainItem(label, blob, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withRetry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		r.logger.Err(err).Str("func", "*keychainRepository.Set").Str("label", label).Msg("error writing keychain item")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Delete implements [Keychain].
func (r *keychainRepository) Delete(ctx context.Context, label string) error {
	query, args, err := deleteKeychainItem(label)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withRetry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		r.logger.Err(err).Str("func", "*keychainRepository.Delete").Str("label", label).Msg("error deleting keychain item")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
