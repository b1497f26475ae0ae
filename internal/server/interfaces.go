// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server is the lifecycle contract of the control API transport.
type Server interface {
	// Run serves requests until ctx is cancelled, then shuts down
	// gracefully. It returns early with an error if the listener fails.
	Run(ctx context.Context) error

	// Shutdown stops the server; in-flight requests get [ShutdownTimeout]
	// to finish.
	Shutdown()
}
