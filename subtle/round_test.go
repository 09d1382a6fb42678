package subtle

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math/big"
	"sync"
	"testing"
)

// recordingMAC is HMAC-SHA256 that remembers every message it was asked to sign.
type recordingMAC struct {
	key []byte

	mu   sync.Mutex
	msgs [][]byte
}

func (m *recordingMAC) ComputeMAC(data []byte) ([]byte, error) {
	m.mu.Lock()
	m.msgs = append(m.msgs, append([]byte(nil), data...))
	m.mu.Unlock()

	h := hmac.New(sha256.New, m.key)
	h.Write(data)
	return h.Sum(nil), nil
}

type failingMAC struct{ err error }

func (m failingMAC) ComputeMAC([]byte) ([]byte, error) { return nil, m.err }

var (
	testKey   = []byte("Here is my secret key!")
	testTweak = []byte("tweak")
)

func TestRoundFunctionContextTag(t *testing.T) {
	mac := &recordingMAC{key: testKey}
	f, err := NewRoundFunction(mac, big.NewInt(100), testTweak)
	if err != nil {
		t.Fatalf("NewRoundFunction failed: %v", err)
	}

	// len(n) | n | len(tweak) | tweak
	wantMsg, _ := hex.DecodeString("016405747765616b")
	if len(mac.msgs) != 1 || !bytes.Equal(mac.msgs[0], wantMsg) {
		t.Fatalf("context message = %x, want %x", mac.msgs, wantMsg)
	}

	wantTag := "f2439c679846bc51625526bacb3d7a06582bc15ee5ab427c4409aeeba3f342ed"
	if got := hex.EncodeToString(f.tag); got != wantTag {
		t.Errorf("tag = %s, want %s", got, wantTag)
	}
}

func TestRoundFunctionHighBitModulus(t *testing.T) {
	mac := &recordingMAC{key: testKey}
	if _, err := NewRoundFunction(mac, big.NewInt(128), testTweak); err != nil {
		t.Fatalf("NewRoundFunction failed: %v", err)
	}
	// 128 encodes with a leading zero byte.
	wantMsg, _ := hex.DecodeString("02008005747765616b")
	if !bytes.Equal(mac.msgs[0], wantMsg) {
		t.Errorf("context message = %x, want %x", mac.msgs[0], wantMsg)
	}
}

func TestRoundFunctionF(t *testing.T) {
	f, err := NewRoundFunction(&recordingMAC{key: testKey}, big.NewInt(100), testTweak)
	if err != nil {
		t.Fatalf("NewRoundFunction failed: %v", err)
	}

	tests := []struct {
		round int
		r     int64
		want  string
	}{
		{0, 0, "53492140556968380758481235832864935762817523407912536616816092803554644265582"},
		{2, 49, "98249154438830171730583421066956987440572822166351437288122798524765524432333"},
	}
	for _, tt := range tests {
		got, err := f.F(tt.round, big.NewInt(tt.r))
		if err != nil {
			t.Fatalf("F(%d, %d) failed: %v", tt.round, tt.r, err)
		}
		if got.String() != tt.want {
			t.Errorf("F(%d, %d) = %v, want %s", tt.round, tt.r, got, tt.want)
		}
		if got.Sign() < 0 {
			t.Errorf("F(%d, %d) is negative", tt.round, tt.r)
		}

		// Same inputs, same output.
		again, _ := f.F(tt.round, big.NewInt(tt.r))
		if again.Cmp(got) != 0 {
			t.Errorf("F(%d, %d) not deterministic: %v then %v", tt.round, tt.r, got, again)
		}
	}
}

func TestRoundFunctionRoundsDiffer(t *testing.T) {
	f, err := NewRoundFunction(&recordingMAC{key: testKey}, big.NewInt(1000), testTweak)
	if err != nil {
		t.Fatalf("NewRoundFunction failed: %v", err)
	}
	r := big.NewInt(3)
	seen := make(map[string]int)
	for round := 0; round < Rounds; round++ {
		v, err := f.F(round, r)
		if err != nil {
			t.Fatalf("F(%d) failed: %v", round, err)
		}
		if prev, ok := seen[v.String()]; ok {
			t.Errorf("rounds %d and %d produced the same output", prev, round)
		}
		seen[v.String()] = round
	}
}

func TestRoundFunctionModulusLimits(t *testing.T) {
	maxN := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	if _, err := NewRoundFunction(&recordingMAC{key: testKey}, maxN, testTweak); err != nil {
		t.Errorf("2^128-1 should be accepted: %v", err)
	}

	tooBig := new(big.Int).Lsh(big.NewInt(1), 128)
	for _, n := range []*big.Int{tooBig, big.NewInt(0), big.NewInt(-1), nil} {
		_, err := NewRoundFunction(&recordingMAC{key: testKey}, n, testTweak)
		if !errors.Is(err, ErrInvalidModulus) {
			t.Errorf("NewRoundFunction(%v) error = %v, want ErrInvalidModulus", n, err)
		}
	}
}

func TestRoundFunctionMACError(t *testing.T) {
	boom := errors.New("boom")
	if _, err := NewRoundFunction(failingMAC{boom}, big.NewInt(10), nil); !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
	if _, err := NewRoundFunction(nil, big.NewInt(10), nil); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("nil MAC error = %v, want ErrInvalidKey", err)
	}
}
