// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	prefsTable    = "prefs"
	keychainTable = "keychain"

	colPrefKey   = "pref_key"
	colValue     = "value"
	colLabel     = "label"
	colData      = "data"
	colUpdatedAt = "updated_at"
)

// builder produces SQLite-flavoured statements with ? placeholders.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func selectPref(key string) (string, []any, error) {
	return builder.Select(colValue).From(prefsTable).Where(sq.Eq{colPrefKey: key}).ToSql()
}

func upsertPref(key, value string, now int64) (string, []any, error) {
	return builder.Insert(prefsTable).
		Columns(colPrefKey, colValue, colUpdatedAt).
		Values(key, value, now).
		Suffix("ON CONFLICT(" + colPrefKey + ") DO UPDATE SET " + colValue + " = excluded." + colValue + ", " + colUpdatedAt + " = excluded." + colUpdatedAt).
		ToSql()
}

func deletePrefs(keys []string) (string, []any, error) {
	return builder.Delete(prefsTable).Where(sq.Eq{colPrefKey: keys}).ToSql()
}

func selectKeychainItem(label string) (string, []any, error) {
	return builder.Select(colData).From(keychainTable).Where(sq.Eq{colLabel: label}).ToSql()
}

func upsertKeychainItem(label string, data []byte, now int64) (string, []any, error) {
	return builder.Insert(keychainTable).
		Columns(colLabel, colData, colUpdatedAt).
		Values(label, data, now).
		Suffix("ON CONFLICT(" + colLabel + ") DO UPDATE SET " + colData + " = excluded." + colData + ", " + colUpdatedAt + " = excluded." + colUpdatedAt).
		ToSql()
}

func deleteKeychainItem(label string) (string, []any, error) {
	return builder.Delete(keychainTable).Where(sq.Eq{colLabel: label}).ToSql()
}
