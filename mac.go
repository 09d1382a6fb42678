package fe1

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"

	"github.com/vdparikh/fe1/subtle"
	"golang.org/x/crypto/blake2b"
)

// MAC is the keyed primitive behind the round function. Each ComputeMAC call
// must use its own digest state. Tink MAC primitives satisfy it.
type MAC = subtle.MAC

type hmacSHA256 struct {
	key []byte
}

// HMACSHA256 returns the default round-function MAC. Any key length is accepted.
func HMACSHA256(key []byte) MAC {
	k := make([]byte, len(key))
	copy(k, key)
	return &hmacSHA256{key: k}
}

func (h *hmacSHA256) ComputeMAC(data []byte) ([]byte, error) {
	m := hmac.New(sha256.New, h.key)
	m.Write(data)
	return m.Sum(nil), nil
}

type blake2bMAC struct {
	key []byte
}

// BLAKE2bMAC returns a keyed BLAKE2b-256 MAC. The key may be at most 64 bytes.
// Ciphertexts produced with it differ from those of HMACSHA256.
func BLAKE2bMAC(key []byte) (MAC, error) {
	if len(key) > blake2b.Size {
		return nil, fmt.Errorf("%w: BLAKE2b key is %d bytes (maximum %d)", ErrInvalidKey, len(key), blake2b.Size)
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &blake2bMAC{key: k}, nil
}

func (b *blake2bMAC) ComputeMAC(data []byte) ([]byte, error) {
	h, err := blake2b.New256(b.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	h.Write(data)
	return h.Sum(nil), nil
}
