// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sync client runtime.
//
// It wires local storage, remote adapters, the sync orchestrator and the
// control API into a single process lifecycle that runs until the process
// is signalled.
package client
