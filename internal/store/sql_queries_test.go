// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueries(t *testing.T) {
	q, args, err := selectPref("k")
	require.NoError(t, err)
	assert.Equal(t, "SELECT value FROM prefs WHERE pref_key = ?", q)
	assert.Equal(t, []any{"k"}, args)

	q, args, err = upsertPref("k", "v", 42)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO prefs (pref_key,value,updated_at) VALUES (?,?,?) "+
		"ON CONFLICT(pref_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at", q)
	assert.Equal(t, []any{"k", "v", int64(42)}, args)

	q, args, err = deletePrefs([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM prefs WHERE pref_key IN (?,?)", q)
	assert.Equal(t, []any{"a", "b"}, args)

	q, _, err = selectKeychainItem("l")
	require.NoError(t, err)
	assert.Equal(t, "SELECT data FROM keychain WHERE label = ?", q)

	q, _, err = deleteKeychainItem("l")
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM keychain WHERE label = ?", q)
}

func TestSQLiteErrorClassifier(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	assert.Equal(t, NonRetryable, c.Classify(nil))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("plain")))
	assert.Equal(t, Retryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.Equal(t, Retryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrLocked}))
	assert.Equal(t, NonRetryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint}))
}
