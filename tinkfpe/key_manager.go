// Package tinkfpe provides Tink integration for FE1 Format-Preserving Encryption.
// This file contains the KeyManager implementation that registers FE1 with Tink's registry.
package tinkfpe

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/google/tink/go/core/registry"
	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
	commonpb "github.com/google/tink/go/proto/common_go_proto"
	hmacpb "github.com/google/tink/go/proto/hmac_go_proto"
	tinkpb "github.com/google/tink/go/proto/tink_go_proto"
	"github.com/vdparikh/fe1"
	"google.golang.org/protobuf/proto"
)

const (
	// FE1KeyTypeURL is the type URL for FE1 keys in Tink's registry.
	FE1KeyTypeURL = "type.googleapis.com/google.crypto.tink.Fe1HmacKey"

	keyVersion = 0

	// MinKeySize is the smallest accepted HMAC key, matching Tink's HMAC keys.
	MinKeySize = 16

	// DefaultKeySize is the key size of KeyTemplate.
	DefaultKeySize = 32

	// digestSize is the HMAC-SHA256 output size recorded in key params.
	digestSize = 32
)

// KeyManager implements registry.KeyManager for FE1 keys.
// Keys are serialized as Tink HmacKey protos; the primitive is a *fe1.Cipher
// whose round function is HMAC-SHA256 under the key value.
type KeyManager struct {
	typeURL string
}

// NewKeyManager creates a new FE1 key manager.
func NewKeyManager() *KeyManager {
	return &KeyManager{
		typeURL: FE1KeyTypeURL,
	}
}

// Primitive creates an FE1 primitive from the given serialized HmacKey.
func (km *KeyManager) Primitive(serializedKey []byte) (interface{}, error) {
	if len(serializedKey) == 0 {
		return nil, fmt.Errorf("tinkfpe: empty key")
	}
	key := new(hmacpb.HmacKey)
	if err := proto.Unmarshal(serializedKey, key); err != nil {
		return nil, fmt.Errorf("tinkfpe: invalid key: %w", err)
	}
	if err := validateKey(key); err != nil {
		return nil, err
	}

	c, err := fe1.NewCipher(key.KeyValue)
	if err != nil {
		return nil, fmt.Errorf("tinkfpe: failed to create cipher: %w", err)
	}
	return c, nil
}

// NewKey generates a new key according to the given serialized HmacKeyFormat.
// An empty format selects a DefaultKeySize key.
func (km *KeyManager) NewKey(serializedKeyFormat []byte) (proto.Message, error) {
	format := &hmacpb.HmacKeyFormat{
		Params:  defaultParams(),
		KeySize: DefaultKeySize,
	}
	if len(serializedKeyFormat) > 0 {
		format = new(hmacpb.HmacKeyFormat)
		if err := proto.Unmarshal(serializedKeyFormat, format); err != nil {
			return nil, fmt.Errorf("tinkfpe: invalid key format: %w", err)
		}
	}
	if err := validateParams(format.Params, format.KeySize); err != nil {
		return nil, err
	}

	value := make([]byte, format.KeySize)
	if _, err := rand.Read(value); err != nil {
		return nil, fmt.Errorf("tinkfpe: failed to generate random key: %w", err)
	}
	return &hmacpb.HmacKey{
		Version:  keyVersion,
		Params:   format.Params,
		KeyValue: value,
	}, nil
}

// NewKeyData creates a new KeyData from the given serialized key format.
func (km *KeyManager) NewKeyData(serializedKeyFormat []byte) (*tinkpb.KeyData, error) {
	key, err := km.NewKey(serializedKeyFormat)
	if err != nil {
		return nil, err
	}
	serialized, err := proto.Marshal(key)
	if err != nil {
		return nil, fmt.Errorf("tinkfpe: failed to serialize key: %w", err)
	}
	return &tinkpb.KeyData{
		TypeUrl:         km.typeURL,
		Value:           serialized,
		KeyMaterialType: tinkpb.KeyData_SYMMETRIC,
	}, nil
}

// DoesSupport returns true if this KeyManager supports the given key type URL.
func (km *KeyManager) DoesSupport(typeURL string) bool {
	return typeURL == km.typeURL
}

// TypeURL returns the type URL of the keys managed by this KeyManager.
func (km *KeyManager) TypeURL() string {
	return km.typeURL
}

// Verify that KeyManager implements registry.KeyManager
var _ registry.KeyManager = (*KeyManager)(nil)

func defaultParams() *hmacpb.HmacParams {
	return &hmacpb.HmacParams{
		Hash:    commonpb.HashType_SHA256,
		TagSize: digestSize,
	}
}

func validateKey(key *hmacpb.HmacKey) error {
	if key.Version != keyVersion {
		return fmt.Errorf("tinkfpe: unsupported key version %d", key.Version)
	}
	return validateParams(key.Params, uint32(len(key.KeyValue)))
}

func validateParams(params *hmacpb.HmacParams, keySize uint32) error {
	if params == nil {
		return fmt.Errorf("tinkfpe: missing key params")
	}
	if params.Hash != commonpb.HashType_SHA256 {
		return fmt.Errorf("tinkfpe: unsupported hash %s (must be SHA256)", params.Hash)
	}
	if params.TagSize != digestSize {
		return fmt.Errorf("tinkfpe: invalid tag size %d (must be %d)", params.TagSize, digestSize)
	}
	if keySize < MinKeySize {
		return fmt.Errorf("%w: key too short: %d bytes (minimum %d)", fe1.ErrInvalidKey, keySize, MinKeySize)
	}
	return nil
}

// KeyTemplate creates a key template for FE1 keys.
// This allows users to generate keys with a single line:
//
//	handle, err := keyset.NewHandle(tinkfpe.KeyTemplate())
//
// The template generates 32-byte HMAC-SHA256 keys with RAW output prefix, so
// tokens equal those of fe1.Encrypt under the same raw key.
func KeyTemplate() *tinkpb.KeyTemplate {
	t, err := KeyTemplateWithSize(DefaultKeySize)
	if err != nil {
		// DefaultKeySize is always valid.
		panic(err)
	}
	return t
}

// KeyTemplateWithSize creates a key template for FE1 keys of keySize bytes.
func KeyTemplateWithSize(keySize uint32) (*tinkpb.KeyTemplate, error) {
	format := &hmacpb.HmacKeyFormat{
		Params:  defaultParams(),
		KeySize: keySize,
	}
	if err := validateParams(format.Params, keySize); err != nil {
		return nil, err
	}
	serialized, err := proto.Marshal(format)
	if err != nil {
		return nil, fmt.Errorf("tinkfpe: failed to serialize key format: %w", err)
	}
	return &tinkpb.KeyTemplate{
		TypeUrl:          FE1KeyTypeURL,
		Value:            serialized,
		OutputPrefixType: tinkpb.OutputPrefixType_RAW,
	}, nil
}

// NewKeysetHandleFromKey creates a keyset handle from a raw key (e.g., from an HSM).
// This is useful when you have a key from a custom HSM or key management system
// that isn't a standard Tink KMS client.
//
// The key must be at least MinKeySize bytes.
//
// Note: This creates an unencrypted keyset. In production, consider encrypting
// the keyset before storing it using keyset.Write() with an AEAD.
func NewKeysetHandleFromKey(key []byte) (*keyset.Handle, error) {
	hk := &hmacpb.HmacKey{
		Version:  keyVersion,
		Params:   defaultParams(),
		KeyValue: key,
	}
	if err := validateKey(hk); err != nil {
		return nil, err
	}
	serialized, err := proto.Marshal(hk)
	if err != nil {
		return nil, fmt.Errorf("tinkfpe: failed to serialize key: %w", err)
	}

	// Generate a unique, non-zero key ID
	var keyID uint32
	for keyID == 0 {
		var idBytes [4]byte
		if _, err := rand.Read(idBytes[:]); err != nil {
			return nil, fmt.Errorf("tinkfpe: failed to generate key ID: %w", err)
		}
		keyID = binary.BigEndian.Uint32(idBytes[:])
	}

	ks := &tinkpb.Keyset{
		PrimaryKeyId: keyID,
		Key: []*tinkpb.Keyset_Key{{
			KeyData: &tinkpb.KeyData{
				TypeUrl:         FE1KeyTypeURL,
				Value:           serialized,
				KeyMaterialType: tinkpb.KeyData_SYMMETRIC,
			},
			KeyId:            keyID,
			Status:           tinkpb.KeyStatusType_ENABLED,
			OutputPrefixType: tinkpb.OutputPrefixType_RAW,
		}},
	}

	return insecurecleartextkeyset.Read(&keyset.MemReaderWriter{Keyset: ks})
}
