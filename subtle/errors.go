package subtle

import "errors"

var (
	// ErrInvalidModulus is returned when the modulus is below 1 or its minimal
	// unsigned encoding exceeds MaxModulusBytes.
	ErrInvalidModulus = errors.New("fe1: invalid modulus")

	// ErrOutOfRange is returned when a plaintext or ciphertext is not in [0, modulus).
	ErrOutOfRange = errors.New("fe1: value out of range")

	// ErrFactorization signals an internal invariant failure while factoring the
	// modulus. It cannot happen for a modulus >= 1.
	ErrFactorization = errors.New("fe1: could not factor modulus")

	// ErrInvalidKey is returned when a key cannot initialize the requested MAC.
	ErrInvalidKey = errors.New("fe1: invalid key")
)
