// Package subtle provides low-level cryptographic primitives for Format-Preserving Encryption.
package subtle

import (
	"math/big"
	"sync"
)

// maxPrime bounds the trial-division scan in Factor.
const maxPrime = 65535

var (
	primesOnce sync.Once
	primes     []int64
)

// smallPrimes returns every prime up to maxPrime followed by the first prime
// past it. The table is built once and never modified.
func smallPrimes() []int64 {
	primesOnce.Do(func() {
		// 65537 is the first prime above maxPrime.
		const limit = 65537
		composite := make([]bool, limit+1)
		for i := 2; i*i <= limit; i++ {
			if composite[i] {
				continue
			}
			for j := i * i; j <= limit; j += i {
				composite[j] = true
			}
		}
		for i := 2; i <= limit; i++ {
			if !composite[i] {
				primes = append(primes, int64(i))
			}
		}
	})
	return primes
}

// lowZeroBits returns the number of trailing zero bits of n, or 0 if n <= 0.
func lowZeroBits(n *big.Int) uint {
	if n.Sign() <= 0 {
		return 0
	}
	return n.TrailingZeroBits()
}

// intBytes returns the minimal two's-complement big-endian encoding of a
// non-negative integer: zero encodes as a single 0x00 byte and a leading 0x00
// is added when the top bit of the magnitude is set.
func intBytes(x *big.Int) []byte {
	mag := x.Bytes()
	if len(mag) == 0 || mag[0]&0x80 != 0 {
		out := make([]byte, len(mag)+1)
		copy(out[1:], mag)
		return out
	}
	return mag
}

// appendEncoded appends a one-byte length followed by b.
func appendEncoded(dst, b []byte) []byte {
	dst = append(dst, byte(len(b)))
	return append(dst, b...)
}
