// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUID          = errors.New("invalid account uid")
	ErrInvalidEmail        = errors.New("invalid account email")
	ErrMissingRefreshToken = errors.New("verified account without refresh token")
	ErrInvalidScopedKey    = errors.New("invalid scoped key")
	ErrInvalidCommandIndex = errors.New("invalid command index")
	ErrInvalidEngine       = errors.New("invalid engine")
)
