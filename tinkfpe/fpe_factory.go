// Package tinkfpe provides Tink integration for FE1 Format-Preserving Encryption.
// This file contains the factory functions for creating FPE primitives from Tink keyset handles.
package tinkfpe

import (
	"fmt"
	"io"

	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
	"github.com/google/tink/go/mac"
	"github.com/vdparikh/fe1"
)

// New creates a new FPE primitive from a keyset handle holding FE1 keys.
// This is the main entry point for users following Tink's pattern.
//
// Example:
//
//	handle, err := keyset.NewHandle(tinkfpe.KeyTemplate())
//	if err != nil {
//	    return err
//	}
//	primitive, err := tinkfpe.New(handle)
//	if err != nil {
//	    return err
//	}
//	token, err := primitive.Tokenize("123-45-6789", []byte("customer.ssn"))
func New(handle *keyset.Handle) (fe1.FPE, error) {
	if handle == nil {
		return nil, fmt.Errorf("keyset handle cannot be nil")
	}
	if _, err := Register(); err != nil {
		return nil, fmt.Errorf("failed to register key manager: %w", err)
	}

	primitives, err := handle.Primitives()
	if err != nil {
		return nil, fmt.Errorf("failed to get primitives from handle: %w", err)
	}

	primary := primitives.Primary
	if primary == nil {
		return nil, fmt.Errorf("no primary key found in keyset")
	}

	c, ok := primary.Primitive.(*fe1.Cipher)
	if !ok {
		return nil, fmt.Errorf("primary key %d is not an FE1 key", primary.KeyID)
	}
	return c, nil
}

// NewFromMAC creates an FPE primitive whose round function is the Tink MAC
// primitive of handle, e.g. a keyset made from mac.HMACSHA256Tag256KeyTemplate().
// Keys with a non-RAW output prefix are fine but produce tokens that differ
// from the raw-key functions of package fe1.
func NewFromMAC(handle *keyset.Handle) (fe1.FPE, error) {
	if handle == nil {
		return nil, fmt.Errorf("keyset handle cannot be nil")
	}
	m, err := mac.New(handle)
	if err != nil {
		return nil, fmt.Errorf("failed to create MAC primitive: %w", err)
	}
	return fe1.NewCipherWithMAC(m)
}

// WriteKeyset writes handle as a cleartext JSON keyset.
// WARNING: In production, use encrypted keysets with handle.Write() and an AEAD.
func WriteKeyset(handle *keyset.Handle, w io.Writer) error {
	return insecurecleartextkeyset.Write(handle, keyset.NewJSONWriter(w))
}

// ReadKeyset reads a cleartext JSON keyset written by WriteKeyset.
func ReadKeyset(r io.Reader) (*keyset.Handle, error) {
	return insecurecleartextkeyset.Read(keyset.NewJSONReader(r))
}
