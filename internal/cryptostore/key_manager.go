package cryptostore

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
)

var ErrKeyFileCorrupt = errors.New("key file does not contain a valid 32-byte key")

// KeyManager owns the single AES-256 key used to encrypt every record in
// the store. Per spec §4.2, key material is either ephemeral (in-memory
// store) or persisted alongside the database file.
type KeyManager struct {
	key []byte
}

// NewEphemeralKeyManager generates a fresh in-memory key, used for stores
// that do not need to survive process restarts (e.g. a single `arena`
// session).
func NewEphemeralKeyManager() (*KeyManager, error) {
	key, err := GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generate ephemeral key: %w", err)
	}
	return &KeyManager{key: key}, nil
}

// LoadOrCreateKeyManager reads the key at keyPath, generating and
// persisting a new one if the file does not exist yet.
func LoadOrCreateKeyManager(keyPath string) (*KeyManager, error) {
	data, err := os.ReadFile(keyPath)
	if err == nil {
		key, decodeErr := base64.StdEncoding.DecodeString(string(data))
		if decodeErr != nil || len(key) != 32 {
			return nil, ErrKeyFileCorrupt
		}
		return &KeyManager{key: key}, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	key, err := GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(key)
	if err := os.WriteFile(keyPath, []byte(encoded), 0o600); err != nil {
		return nil, fmt.Errorf("persist key file: %w", err)
	}

	return &KeyManager{key: key}, nil
}

// Encrypt encrypts plaintext with this store's key.
func (km *KeyManager) Encrypt(plaintext []byte) (string, error) {
	return Encrypt(plaintext, km.key)
}

// Decrypt decrypts ciphertext with this store's key.
func (km *KeyManager) Decrypt(ciphertext string) ([]byte, error) {
	return Decrypt(ciphertext, km.key)
}
