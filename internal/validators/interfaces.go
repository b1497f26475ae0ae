// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks values handed to the sync client from outside,
// such as account state passed over by the host, before they reach the
// service layer.
//
// A [Validator] validates every known field of a value by default, or only
// the named fields when some are given.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {
	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
