package subtle

import (
	"fmt"
	"math/big"
)

// MaxModulusBytes caps the modulus at 128 bits. FPE targets short identifiers
// such as SSNs and card numbers.
const MaxModulusBytes = 128 / 8

// MAC computes a keyed digest of data. Implementations must not share digest
// state between calls, so a single MAC may be used from many goroutines.
// tink.MAC satisfies this interface.
type MAC interface {
	ComputeMAC(data []byte) ([]byte, error)
}

// RoundFunction is the keyed pseudorandom function mixed into each Feistel
// round. It is bound to one (key, modulus, tweak) triple and is read-only
// after construction.
type RoundFunction struct {
	mac MAC
	tag []byte
}

// NewRoundFunction derives the per-context tag MAC(len(n)|n|len(tweak)|tweak).
func NewRoundFunction(mac MAC, n *big.Int, tweak []byte) (*RoundFunction, error) {
	if mac == nil {
		return nil, fmt.Errorf("%w: nil MAC", ErrInvalidKey)
	}
	if err := checkModulus(n); err != nil {
		return nil, err
	}

	nBytes := intBytes(n)
	msg := make([]byte, 0, 2+len(nBytes)+len(tweak))
	msg = appendEncoded(msg, nBytes)
	msg = appendEncoded(msg, tweak)

	tag, err := mac.ComputeMAC(msg)
	if err != nil {
		return nil, fmt.Errorf("compute context tag: %w", err)
	}
	return &RoundFunction{mac: mac, tag: tag}, nil
}

// F evaluates round function number round on r and returns the digest as a
// non-negative integer.
func (f *RoundFunction) F(round int, r *big.Int) (*big.Int, error) {
	rBytes := intBytes(r)
	msg := make([]byte, 0, len(f.tag)+2+len(rBytes))
	msg = append(msg, f.tag...)
	msg = append(msg, byte(round))
	msg = appendEncoded(msg, rBytes)

	digest, err := f.mac.ComputeMAC(msg)
	if err != nil {
		return nil, fmt.Errorf("round %d: %w", round, err)
	}
	return new(big.Int).SetBytes(digest), nil
}

// checkModulus rejects moduli below 1 or wider than MaxModulusBytes.
func checkModulus(n *big.Int) error {
	if n == nil || n.Sign() < 1 {
		return fmt.Errorf("%w: modulus must be at least 1, got %v", ErrInvalidModulus, n)
	}
	if l := len(n.Bytes()); l > MaxModulusBytes {
		return fmt.Errorf("%w: modulus is %d bytes (maximum %d)", ErrInvalidModulus, l, MaxModulusBytes)
	}
	return nil
}
