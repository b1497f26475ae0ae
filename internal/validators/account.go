// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-sync-keeper/models"
)

const (
	FieldUID          = "uid"
	FieldEmail        = "email"
	FieldRefreshToken = "refresh_token"
	FieldScopedKeys   = "scoped_keys"
	FieldCommandIndex = "command_index"
	FieldEngine       = "engine"
)

type AccountValidator struct{}

func NewAccountValidator() Validator {
	return &AccountValidator{}
}

func (v *AccountValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.AccountState:
		return v.validateAccount(ctx, value, fields...)
	case *models.AccountState:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateAccount(ctx, *value, fields...)

	case models.EngineName:
		return v.validateEngine(value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *AccountValidator) validateAccount(_ context.Context, account models.AccountState, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUID, FieldEmail, FieldRefreshToken, FieldScopedKeys, FieldCommandIndex}
	}

	for _, f := range fields {
		switch f {
		case FieldUID:
			if strings.TrimSpace(account.UID) == "" {
				return ErrInvalidUID
			}
		case FieldEmail:
			if account.Email != "" && !strings.Contains(account.Email, "@") {
				return ErrInvalidEmail
			}
		case FieldRefreshToken:
			if account.Verified && account.RefreshToken == "" {
				return ErrMissingRefreshToken
			}
		case FieldScopedKeys:
			for scope, key := range account.ScopedKeys {
				if err := validateScopedKey(scope, key); err != nil {
					return fmt.Errorf("scope %q: %w", scope, err)
				}
			}
		case FieldCommandIndex:
			if account.CommandIndex < 0 {
				return ErrInvalidCommandIndex
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateScopedKey requires a key id and base64url key material, and a
// scope field that matches the map key when present.
func validateScopedKey(scope string, key models.ScopedKey) error {
	if key.Kid == "" || key.K == "" {
		return ErrInvalidScopedKey
	}
	if key.Scope != "" && key.Scope != scope {
		return ErrInvalidScopedKey
	}
	if _, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(key.K, "=")); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScopedKey, err)
	}
	return nil
}

func (v *AccountValidator) validateEngine(engine models.EngineName, fields ...string) error {
	for _, f := range fields {
		if f != FieldEngine {
			return ErrUnknownField
		}
	}
	if !models.IsTogglable(engine) {
		return fmt.Errorf("%w: %s", ErrInvalidEngine, engine)
	}
	return nil
}
