// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

// Sealer protects small secrets at rest. It knows nothing about the network,
// the database or accounts; it only encrypts and authenticates blobs.
//
// Blob layout produced by Seal and expected by Open: nonce || ciphertext.
type Sealer interface {
	// Seal encrypts plaintext with AES-256-GCM under the sealer's key.
	Seal(plaintext []byte) ([]byte, error)

	// Open authenticates and decrypts a blob produced by Seal. It returns
	// ErrUnseal if the blob is truncated, tampered with or sealed under a
	// different key.
	Open(blob []byte) ([]byte, error)
}
