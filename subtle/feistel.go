package subtle

import (
	"fmt"
	"math/big"
)

// Rounds is the number of Feistel rounds. The minimum safe count for FE1 is
// 2 + log_a(b), which is at most 3 since Factor always returns a >= b.
const Rounds = 3

// feistel holds the per-call state: the factor pair of the modulus and the
// round function for this (key, modulus, tweak).
type feistel struct {
	n, a, b *big.Int
	f       *RoundFunction
}

func newFeistel(mac MAC, n *big.Int, tweak []byte) (*feistel, error) {
	// Validate before Factor so that oversized moduli never reach the prime scan.
	f, err := NewRoundFunction(mac, n, tweak)
	if err != nil {
		return nil, err
	}
	a, b, err := Factor(n)
	if err != nil {
		return nil, err
	}
	if a.Cmp(b) < 0 {
		return nil, fmt.Errorf("%w: a < b", ErrFactorization)
	}
	return &feistel{n: n, a: a, b: b, f: f}, nil
}

func (c *feistel) checkRange(x *big.Int) error {
	if x == nil || x.Sign() < 0 || x.Cmp(c.n) >= 0 {
		return fmt.Errorf("%w: %v not in [0, %v)", ErrOutOfRange, x, c.n)
	}
	return nil
}

// Encrypt applies the FE1 permutation of Z_n selected by mac and tweak to x.
// x must lie in [0, n). The result is a new integer in [0, n); x is not modified.
func Encrypt(mac MAC, n, x *big.Int, tweak []byte) (*big.Int, error) {
	c, err := newFeistel(mac, n, tweak)
	if err != nil {
		return nil, err
	}
	if err := c.checkRange(x); err != nil {
		return nil, err
	}

	X := new(big.Int).Set(x)
	var L, R big.Int
	for i := 0; i < Rounds; i++ {
		L.QuoRem(X, c.b, &R)

		fr, err := c.f.F(i, &R)
		if err != nil {
			return nil, err
		}
		W := fr.Add(fr, &L)
		W.Mod(W, c.a)

		X.Mul(c.a, &R)
		X.Add(X, W)
	}
	return X, nil
}

// Decrypt inverts Encrypt for the same mac, n and tweak. A wrong key or tweak
// is not detected: the result is some other value in [0, n).
func Decrypt(mac MAC, n, x *big.Int, tweak []byte) (*big.Int, error) {
	c, err := newFeistel(mac, n, tweak)
	if err != nil {
		return nil, err
	}
	if err := c.checkRange(x); err != nil {
		return nil, err
	}

	X := new(big.Int).Set(x)
	var W, R big.Int
	for i := Rounds - 1; i >= 0; i-- {
		R.QuoRem(X, c.a, &W)

		fr, err := c.f.F(i, &R)
		if err != nil {
			return nil, err
		}
		// Mod is Euclidean, so L lands in [0, a).
		L := fr.Sub(&W, fr)
		L.Mod(L, c.a)

		X.Mul(c.b, L)
		X.Add(X, &R)
	}
	return X, nil
}
