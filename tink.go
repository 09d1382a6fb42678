// Package fe1 implements FE1 format-preserving encryption over integer ranges.
// This file defines the FPE interface for Tink integration.
// For Tink integration, see the tinkfpe package.

package fe1

import "math/big"

// FPE is a Tink-compatible interface for integer-range Format-Preserving Encryption.
// This follows Tink's primitive pattern, similar to tink.DeterministicAEAD.
// FPE is deterministic: same value + modulus + tweak + key = same ciphertext.
type FPE interface {
	// Encrypt maps plaintext in [0, modulus) to a ciphertext in [0, modulus).
	Encrypt(modulus, plaintext *big.Int, tweak []byte) (*big.Int, error)

	// Decrypt is the inverse of Encrypt for the same modulus and tweak.
	Decrypt(modulus, ciphertext *big.Int, tweak []byte) (*big.Int, error)

	// Tokenize encrypts the digits of s in place, keeping separators.
	Tokenize(s string, tweak []byte) (string, error)

	// Detokenize is the inverse of Tokenize.
	Detokenize(tokenized string, tweak []byte) (string, error)
}

var _ FPE = (*Cipher)(nil)
