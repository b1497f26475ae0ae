// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrInvalidKeyMaterial is returned when scoped key material is empty or
	// not valid base64url.
	ErrInvalidKeyMaterial = errors.New("invalid scoped key material")
	// ErrUnseal is returned when a sealed blob cannot be opened.
	ErrUnseal = errors.New("cannot unseal blob")
	// ErrEmptySecret is returned when a sealer is built without a secret.
	ErrEmptySecret = errors.New("empty sealing secret")
)
