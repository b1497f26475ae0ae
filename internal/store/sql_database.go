// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/migrations"
)

// retryAttempts bounds how many times a statement is tried when the driver
// reports a transient error.
const retryAttempts = 3

// DB wraps the local *sql.DB together with the driver error classifier used
// to decide whether a failed statement can be retried.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// withRetry runs fn, retrying with a short linear backoff while the error is
// classified as [Retryable].
func (db *DB) withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= retryAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable {
			return err
		}

		db.logger.Warn().Err(err).Int("attempt", attempt).Msg("retrying statement")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 20 * time.Millisecond):
		}
	}
	return err
}
