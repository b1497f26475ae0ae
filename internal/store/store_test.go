// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
)

// newTestSQLite opens a migrated SQLite file under t.TempDir().
func newTestSQLite(t *testing.T) *DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "nested", "sync.db")
	db, err := NewConnectSQLite(context.Background(), config.ClientDB{DSN: dsn}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate())
	return db
}

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return &DB{DB: conn, logger: logger.Nop(), errorClassificator: NewSQLiteErrorClassifier()}, mock
}

