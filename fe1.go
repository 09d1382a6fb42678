// Package fe1 implements Format-Preserving Encryption (FPE) over an arbitrary
// integer range [0, n) using the FE1 scheme of Bellare, Ristenpart, Rogaway
// and Stegers ("Format-Preserving Encryption", https://eprint.iacr.org/2009/251).
//
// FE1 is a 3-round unbalanced Feistel network over a balanced factorization
// n = a*b, with a round function built from a keyed MAC (HMAC-SHA256 by
// default). Encrypting a value in [0, n) yields another value in [0, n), so a
// 9-digit number stays a 9-digit number.
//
// The package includes both the plain functions and a Tink-compatible
// primitive (see tink.go and the tinkfpe package).
//
// Example usage:
//
//	key := []byte("your-secret-key")
//	tweak := []byte("tenant-1234|customer.ssn")
//	modulus := big.NewInt(1_000_000_000)
//
//	ct, err := fe1.Encrypt(modulus, big.NewInt(123456789), key, tweak)
//	if err != nil {
//		log.Fatal(err)
//	}
//	// ct is another integer in [0, 1000000000)
//
//	pt, err := fe1.Decrypt(modulus, ct, key, tweak)
//	if err != nil {
//		log.Fatal(err)
//	}
//	// pt is 123456789
//
// FE1 provides no authentication: decrypting with the wrong key or tweak
// returns some other in-range value rather than an error.
package fe1

import (
	"fmt"
	"math"
	"math/big"

	"github.com/vdparikh/fe1/subtle"
)

// Encrypt maps plaintext in [0, modulus) to a ciphertext in [0, modulus)
// under key and tweak, using HMAC-SHA256 as the round function.
//
// The modulus must be at least 1 and at most 128 bits wide. The tweak is a
// public, non-secret value; changing it selects an unrelated permutation.
func Encrypt(modulus, plaintext *big.Int, key, tweak []byte) (*big.Int, error) {
	return subtle.Encrypt(HMACSHA256(key), modulus, plaintext, tweak)
}

// Decrypt is the inverse of Encrypt for the same modulus, key and tweak.
func Decrypt(modulus, ciphertext *big.Int, key, tweak []byte) (*big.Int, error) {
	return subtle.Decrypt(HMACSHA256(key), modulus, ciphertext, tweak)
}

// Cipher is FE1 bound to one round-function MAC. It holds no per-call state
// and is safe for concurrent use by multiple goroutines.
type Cipher struct {
	mac MAC
}

// NewCipher creates a Cipher keyed with HMAC-SHA256. The key must not be empty.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: key must not be empty", ErrInvalidKey)
	}
	return &Cipher{mac: HMACSHA256(key)}, nil
}

// NewCipherWithMAC creates a Cipher around a caller-supplied MAC, such as
// BLAKE2bMAC or a Tink MAC primitive.
func NewCipherWithMAC(mac MAC) (*Cipher, error) {
	if mac == nil {
		return nil, fmt.Errorf("%w: nil MAC", ErrInvalidKey)
	}
	return &Cipher{mac: mac}, nil
}

// Encrypt maps plaintext in [0, modulus) to a ciphertext in [0, modulus).
func (c *Cipher) Encrypt(modulus, plaintext *big.Int, tweak []byte) (*big.Int, error) {
	return subtle.Encrypt(c.mac, modulus, plaintext, tweak)
}

// Decrypt is the inverse of Encrypt.
func (c *Cipher) Decrypt(modulus, ciphertext *big.Int, tweak []byte) (*big.Int, error) {
	return subtle.Decrypt(c.mac, modulus, ciphertext, tweak)
}

// EncryptUint64 is Encrypt for moduli and values that fit in a uint64.
func (c *Cipher) EncryptUint64(modulus, plaintext uint64, tweak []byte) (uint64, error) {
	out, err := c.Encrypt(new(big.Int).SetUint64(modulus), new(big.Int).SetUint64(plaintext), tweak)
	if err != nil {
		return 0, err
	}
	return toUint64(out)
}

// DecryptUint64 is Decrypt for moduli and values that fit in a uint64.
func (c *Cipher) DecryptUint64(modulus, ciphertext uint64, tweak []byte) (uint64, error) {
	out, err := c.Decrypt(new(big.Int).SetUint64(modulus), new(big.Int).SetUint64(ciphertext), tweak)
	if err != nil {
		return 0, err
	}
	return toUint64(out)
}

func toUint64(x *big.Int) (uint64, error) {
	if !x.IsUint64() {
		// Unreachable: results are below a modulus that itself fits in a uint64.
		return 0, fmt.Errorf("%w: %v exceeds %d", ErrOutOfRange, x, uint64(math.MaxUint64))
	}
	return x.Uint64(), nil
}

// maxDigits is the longest digit run whose modulus 10^k fits in MaxModulusBytes.
const maxDigits = 38

// Tokenize encrypts the decimal digits of s while keeping every other
// character (hyphens, spaces, dots) in place. The k digits are read as an
// integer in [0, 10^k) and encrypted with modulus 10^k, so leading zeros are
// preserved and the token has the same shape as the input.
//
// Returns the tokenized value, e.g. "123-45-6789" -> "209-72-6925".
func (c *Cipher) Tokenize(s string, tweak []byte) (string, error) {
	// Step 1: Separate format characters from digits
	formatMask, digits := SeparateFormatAndData(s)

	// Step 2: Map the digits onto Z_(10^k)
	modulus, value, err := digitsToInt(digits)
	if err != nil {
		return "", fmt.Errorf("failed to tokenize: %w", err)
	}

	// Step 3: Encrypt
	enc, err := c.Encrypt(modulus, value, tweak)
	if err != nil {
		return "", fmt.Errorf("failed to tokenize: %w", err)
	}

	// Step 4: Back to k digits, then reinsert the format characters
	return ReconstructWithFormat(intToDigits(enc, len(digits)), formatMask, s), nil
}

// Detokenize reverses Tokenize for the same key and tweak.
func (c *Cipher) Detokenize(tokenized string, tweak []byte) (string, error) {
	formatMask, digits := SeparateFormatAndData(tokenized)

	modulus, value, err := digitsToInt(digits)
	if err != nil {
		return "", fmt.Errorf("failed to detokenize: %w", err)
	}

	dec, err := c.Decrypt(modulus, value, tweak)
	if err != nil {
		return "", fmt.Errorf("failed to detokenize: %w", err)
	}

	return ReconstructWithFormat(intToDigits(dec, len(digits)), formatMask, tokenized), nil
}
