// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-keeper/models"
)

const oldSyncScope = "https://identity.mozilla.com/apps/oldsync"

func validAccount() models.AccountState {
	return models.AccountState{
		UID:          "uid-1",
		Email:        "user@example.com",
		Verified:     true,
		RefreshToken: "refresh",
		ScopedKeys: map[string]models.ScopedKey{
			oldSyncScope: {Kid: "1-kid", K: "c3luYy1rZXk", Kty: "oct", Scope: oldSyncScope},
		},
	}
}

func TestAccountValidator_Valid(t *testing.T) {
	v := NewAccountValidator()
	ctx := context.Background()

	account := validAccount()
	require.NoError(t, v.Validate(ctx, account))
	require.NoError(t, v.Validate(ctx, &account))

	unverified := models.AccountState{UID: "uid-2"}
	assert.NoError(t, v.Validate(ctx, unverified), "an unverified account needs no refresh token yet")
}

func TestAccountValidator_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(a *models.AccountState)
		wantErr error
	}{
		{name: "blank uid", mutate: func(a *models.AccountState) { a.UID = "  " }, wantErr: ErrInvalidUID},
		{name: "bad email", mutate: func(a *models.AccountState) { a.Email = "nobody" }, wantErr: ErrInvalidEmail},
		{name: "verified without refresh token", mutate: func(a *models.AccountState) { a.RefreshToken = "" }, wantErr: ErrMissingRefreshToken},
		{name: "negative command index", mutate: func(a *models.AccountState) { a.CommandIndex = -1 }, wantErr: ErrInvalidCommandIndex},
		{
			name: "key without kid",
			mutate: func(a *models.AccountState) {
				a.ScopedKeys[oldSyncScope] = models.ScopedKey{K: "c3luYy1rZXk"}
			},
			wantErr: ErrInvalidScopedKey,
		},
		{
			name: "key for another scope",
			mutate: func(a *models.AccountState) {
				a.ScopedKeys[oldSyncScope] = models.ScopedKey{Kid: "1", K: "c3luYy1rZXk", Scope: "profile"}
			},
			wantErr: ErrInvalidScopedKey,
		},
		{
			name: "key not base64url",
			mutate: func(a *models.AccountState) {
				a.ScopedKeys[oldSyncScope] = models.ScopedKey{Kid: "1", K: "not base64!"}
			},
			wantErr: ErrInvalidScopedKey,
		},
	}

	v := NewAccountValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := validAccount()
			tt.mutate(&account)
			assert.ErrorIs(t, v.Validate(context.Background(), account), tt.wantErr)
		})
	}
}

func TestAccountValidator_Fields(t *testing.T) {
	v := NewAccountValidator()
	ctx := context.Background()

	account := models.AccountState{UID: "", Email: "user@example.com"}
	assert.NoError(t, v.Validate(ctx, account, FieldEmail))
	assert.ErrorIs(t, v.Validate(ctx, account, FieldEmail, FieldUID), ErrInvalidUID)
	assert.ErrorIs(t, v.Validate(ctx, account, "password"), ErrUnknownField)
}

func TestAccountValidator_Engine(t *testing.T) {
	v := NewAccountValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.EngineTabs))
	assert.NoError(t, v.Validate(ctx, models.EnginePasswords, FieldEngine))
	assert.ErrorIs(t, v.Validate(ctx, models.EngineName("clients")), ErrInvalidEngine)
	assert.ErrorIs(t, v.Validate(ctx, models.EngineTabs, FieldUID), ErrUnknownField)
}

func TestAccountValidator_UnsupportedType(t *testing.T) {
	v := NewAccountValidator()
	ctx := context.Background()

	assert.ErrorIs(t, v.Validate(ctx, "tabs"), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(ctx, (*models.AccountState)(nil)), ErrUnsupportedType)
}
