// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

// sealingKeyLen is the AES-256 key size in bytes.
const sealingKeyLen = 32

// gcmSealer is the private implementation of [Sealer].
type gcmSealer struct {
	aead cipher.AEAD
}

// NewSealer derives a 256-bit sealing key from secret with HKDF-SHA256, using
// info to separate keys for different purposes, and returns a [Sealer]
// backed by AES-256-GCM.
func NewSealer(secret []byte, info string) (Sealer, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	key := make([]byte, sealingKeyLen)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("derive sealing key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &gcmSealer{aead: gcm}, nil
}

// Seal implements [Sealer]. A random nonce is prepended to the ciphertext.
func (s *gcmSealer) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open implements [Sealer].
func (s *gcmSealer) Open(blob []byte) ([]byte, error) {
	nonceSize := s.aead.NonceSize()
	if len(blob) < nonceSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrUnseal)
	}

	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnseal, err)
	}

	return plaintext, nil
}

// DeriveSyncKey decodes the base64url scoped key material k into the raw
// sync key bytes. Padding is tolerated.
func DeriveSyncKey(k string) ([]byte, error) {
	k = strings.TrimRight(k, "=")
	if k == "" {
		return nil, ErrInvalidKeyMaterial
	}

	key, err := base64.RawURLEncoding.DecodeString(k)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyMaterial, err)
	}

	return key, nil
}
