package fe1

// SeparateFormatAndData separates format characters (hyphens, dots, spaces, etc.) from digits.
// Returns a format mask (true = format char, false = digit) and the digits only.
func SeparateFormatAndData(s string) ([]bool, string) {
	formatMask := make([]bool, len(s))
	digits := make([]byte, 0, len(s))

	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			digits = append(digits, s[i])
		} else {
			formatMask[i] = true
		}
	}

	return formatMask, string(digits)
}

// ReconstructWithFormat reinserts format characters from original at their positions.
func ReconstructWithFormat(digits string, formatMask []bool, original string) string {
	result := make([]byte, len(formatMask))
	dataIdx := 0

	for i := 0; i < len(formatMask); i++ {
		if formatMask[i] {
			result[i] = original[i]
			continue
		}
		if dataIdx < len(digits) {
			result[i] = digits[dataIdx]
			dataIdx++
		} else {
			result[i] = '0'
		}
	}

	return string(result)
}
