package fe1

import (
	"errors"
	"strings"
	"testing"
)

func newTestCipher(t *testing.T) *Cipher {
	t.Helper()
	c, err := NewCipher([]byte("Here is my secret key!"))
	if err != nil {
		t.Fatalf("Failed to create cipher: %v", err)
	}
	return c
}

func TestTokenizeSSN(t *testing.T) {
	c := newTestCipher(t)
	tweak := []byte("customer.ssn")
	plaintext := "123-45-6789"

	tokenized, err := c.Tokenize(plaintext, tweak)
	if err != nil {
		t.Fatalf("Failed to tokenize: %v", err)
	}
	if tokenized != "209-72-6925" {
		t.Errorf("Tokenize(%q) = %q, want %q", plaintext, tokenized, "209-72-6925")
	}

	detokenized, err := c.Detokenize(tokenized, tweak)
	if err != nil {
		t.Fatalf("Failed to detokenize: %v", err)
	}
	if detokenized != plaintext {
		t.Errorf("Decryption failed: expected %s, got %s", plaintext, detokenized)
	}
}

func TestTokenizePreservesFormat(t *testing.T) {
	c := newTestCipher(t)
	tweak := []byte("format")

	testCases := []string{
		"0",
		"0000000000",
		"4532-1234-5678-9010",
		"555 123 4567",
		"1985.07.14",
		"(555) 123-4567",
		"00000000000000000000000000000000000001", // 38 digits
	}
	for _, plaintext := range testCases {
		t.Run(plaintext, func(t *testing.T) {
			tokenized, err := c.Tokenize(plaintext, tweak)
			if err != nil {
				t.Fatalf("Failed to tokenize: %v", err)
			}
			if len(tokenized) != len(plaintext) {
				t.Fatalf("Format not preserved: %q -> %q", plaintext, tokenized)
			}
			for i := 0; i < len(plaintext); i++ {
				isDigit := plaintext[i] >= '0' && plaintext[i] <= '9'
				if isDigit != (tokenized[i] >= '0' && tokenized[i] <= '9') {
					t.Fatalf("character class changed at %d: %q -> %q", i, plaintext, tokenized)
				}
				if !isDigit && plaintext[i] != tokenized[i] {
					t.Fatalf("separator changed at %d: %q -> %q", i, plaintext, tokenized)
				}
			}

			detokenized, err := c.Detokenize(tokenized, tweak)
			if err != nil {
				t.Fatalf("Failed to detokenize: %v", err)
			}
			if detokenized != plaintext {
				t.Errorf("Round-trip failed: %q -> %q -> %q", plaintext, tokenized, detokenized)
			}
		})
	}
}

func TestTokenizeInvalid(t *testing.T) {
	c := newTestCipher(t)
	for _, s := range []string{"", "no digits here", strings.Repeat("9", 39)} {
		if _, err := c.Tokenize(s, nil); !errors.Is(err, ErrInvalidModulus) {
			t.Errorf("Tokenize(%q) error = %v, want ErrInvalidModulus", s, err)
		}
		if _, err := c.Detokenize(s, nil); !errors.Is(err, ErrInvalidModulus) {
			t.Errorf("Detokenize(%q) error = %v, want ErrInvalidModulus", s, err)
		}
	}
}

func TestSeparateAndReconstruct(t *testing.T) {
	mask, digits := SeparateFormatAndData("12-3a4")
	if digits != "1234" {
		t.Errorf("digits = %q, want %q", digits, "1234")
	}
	want := []bool{false, false, true, false, true, false}
	for i := range want {
		if mask[i] != want[i] {
			t.Errorf("mask[%d] = %v, want %v", i, mask[i], want[i])
		}
	}
	if got := ReconstructWithFormat("9876", mask, "12-3a4"); got != "98-7a6" {
		t.Errorf("ReconstructWithFormat = %q, want %q", got, "98-7a6")
	}
}

func TestIntToDigitsPads(t *testing.T) {
	_, v, err := digitsToInt("007")
	if err != nil {
		t.Fatalf("digitsToInt failed: %v", err)
	}
	if v.Int64() != 7 {
		t.Errorf("digitsToInt(007) = %v, want 7", v)
	}
	if got := intToDigits(v, 3); got != "007" {
		t.Errorf("intToDigits = %q, want %q", got, "007")
	}
}
