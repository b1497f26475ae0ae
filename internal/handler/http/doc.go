// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the local control API of the sync client.
//
// A host UI process uses it to trigger syncs, forward lifecycle and account
// events, toggle engines and read the display state. Request tracing, access
// logging and bearer authentication are handled here before calls reach the
// sync orchestrator. Responses carry display states only; internal errors are
// logged, never returned.
package http
