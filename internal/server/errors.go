// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// ErrNoServersAreCreated is returned by [NewServer] when no listen address
// is configured.
var ErrNoServersAreCreated = errors.New("no servers are created")
