package fe1

import "github.com/vdparikh/fe1/subtle"

var (
	// ErrInvalidModulus is returned when the modulus is below 1 or encodes to
	// more than MaxModulusBytes bytes.
	ErrInvalidModulus = subtle.ErrInvalidModulus

	// ErrOutOfRange is returned when a plaintext or ciphertext does not lie in [0, modulus).
	ErrOutOfRange = subtle.ErrOutOfRange

	// ErrFactorization signals an internal bug in modulus factorization; it is
	// unreachable for any valid modulus.
	ErrFactorization = subtle.ErrFactorization

	// ErrInvalidKey is returned when a key is unusable for the selected MAC.
	ErrInvalidKey = subtle.ErrInvalidKey
)

// MaxModulusBytes is the largest supported modulus size: 128 bits.
const MaxModulusBytes = subtle.MaxModulusBytes
