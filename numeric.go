package fe1

import (
	"fmt"
	"math/big"
	"strings"
)

var bigTen = big.NewInt(10)

// digitsToInt reads a run of decimal digits as a value in [0, 10^k) and
// returns the modulus 10^k alongside it.
func digitsToInt(digits string) (modulus, value *big.Int, err error) {
	k := len(digits)
	if k == 0 {
		return nil, nil, fmt.Errorf("%w: no digits to encrypt", ErrInvalidModulus)
	}
	if k > maxDigits {
		return nil, nil, fmt.Errorf("%w: %d digits (maximum %d)", ErrInvalidModulus, k, maxDigits)
	}

	value, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, nil, fmt.Errorf("invalid digit string %q", digits)
	}
	modulus = new(big.Int).Exp(bigTen, big.NewInt(int64(k)), nil)
	return modulus, value, nil
}

// intToDigits renders v in base 10, left-padded with zeros to length digits.
func intToDigits(v *big.Int, length int) string {
	s := v.Text(10)
	if len(s) >= length {
		return s
	}
	return strings.Repeat("0", length-len(s)) + s
}
