// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the control API transport: startup, shutdown on
// context cancellation and the shutdown grace period.
package server
