package tinkfpe

import (
	"sync"

	"github.com/google/tink/go/core/registry"
)

var registerMu sync.Mutex

// Register adds the FE1 KeyManager to Tink's registry. It is safe to call more
// than once; later calls return the key manager already registered.
func Register() (registry.KeyManager, error) {
	registerMu.Lock()
	defer registerMu.Unlock()

	// Already registered, return it (key managers are stateless)
	if km, err := registry.GetKeyManager(FE1KeyTypeURL); err == nil {
		return km, nil
	}

	keyManager := NewKeyManager()
	if err := registry.RegisterKeyManager(keyManager); err != nil {
		return nil, err
	}
	return keyManager, nil
}
