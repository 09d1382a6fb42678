package subtle

import (
	"fmt"
	"math/big"
)

var bigOne = big.NewInt(1)

// Factor splits n into a and b with a*b == n and a >= b, as close together as
// the small prime factors of n allow. Typical moduli are powers of ten, which
// factor completely.
//
// The prime scan stops as soon as both sides exceed 1 and whatever is left of
// n is folded into the smaller side. For n = 1000 this yields (250, 4). Three
// Feistel rounds stay sufficient because the safe round count is
// 2 + log_a(b) and a >= b always holds.
func Factor(n *big.Int) (a, b *big.Int, err error) {
	if n == nil || n.Sign() < 1 {
		return nil, nil, fmt.Errorf("%w: factor %v", ErrInvalidModulus, n)
	}

	rem := new(big.Int).Set(n)
	z := lowZeroBits(rem)
	a = new(big.Int).Lsh(bigOne, z/2)
	b = new(big.Int).Lsh(bigOne, z-z/2)
	rem.Rsh(rem, z)

	// a <= b holds from here until the final sort.
	var (
		p    big.Int
		q, m big.Int
	)
	for _, prime := range smallPrimes() {
		p.SetInt64(prime)
		for {
			q.QuoRem(rem, &p, &m)
			if m.Sign() != 0 {
				break
			}
			a.Mul(a, &p)
			if a.Cmp(b) > 0 {
				a, b = b, a
			}
			rem.Set(&q)
		}
		if a.Cmp(bigOne) > 0 && b.Cmp(bigOne) > 0 {
			break
		}
	}

	if a.Cmp(b) > 0 {
		a, b = b, a
	}
	a.Mul(a, rem)
	if a.Cmp(b) < 0 {
		a, b = b, a
	}

	if a.Cmp(bigOne) < 0 || b.Cmp(bigOne) < 0 {
		return nil, nil, fmt.Errorf("%w: %v", ErrFactorization, n)
	}
	return a, b, nil
}
