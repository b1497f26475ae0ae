// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sync-keeper/internal/crypto"
)

// sealedKeychain encrypts every blob with a [crypto.Sealer] before handing
// it to the underlying [Keychain].
type sealedKeychain struct {
	inner  Keychain
	sealer crypto.Sealer
}

// NewSealedKeychain wraps inner so that blobs are sealed at rest. A blob that
// fails to open is reported as an error wrapping [crypto.ErrUnseal].
func NewSealedKeychain(inner Keychain, sealer crypto.Sealer) Keychain {
	return &sealedKeychain{inner: inner, sealer: sealer}
}

func (k *sealedKeychain) Get(ctx context.Context, label string) ([]byte, error) {
	sealed, err := k.inner.Get(ctx, label)
	if err != nil {
		return nil, err
	}

	plain, err := k.sealer.Open(sealed)
	if err != nil {
		return nil, fmt.Errorf("open keychain item %q: %w", label, err)
	}
	return plain, nil
}

func (k *sealedKeychain) Set(ctx context.Context, label string, blob []byte) error {
	sealed, err := k.sealer.Seal(blob)
	if err != nil {
		return fmt.Errorf("seal keychain item %q: %w", label, err)
	}
	return k.inner.Set(ctx, label, sealed)
}

func (k *sealedKeychain) Delete(ctx context.Context, label string) error {
	return k.inner.Delete(ctx, label)
}
