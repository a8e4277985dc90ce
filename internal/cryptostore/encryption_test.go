package cryptostore

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	plaintext := []byte(`{"decision":"block","confidence":0.9}`)

	ciphertext, err := Encrypt(plaintext, key)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	got, err := Decrypt(ciphertext, key)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}

	if !bytes.Equal(got, plaintext) {
		t.Errorf("decrypted = %q, want %q", got, plaintext)
	}
}

func TestEncryptUsesRandomNonce(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	plaintext := []byte("same plaintext every time")

	c1, err := Encrypt(plaintext, key)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	c2, err := Encrypt(plaintext, key)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	if c1 == c2 {
		t.Error("two encryptions of the same plaintext produced identical ciphertext")
	}

	p1, err := Decrypt(c1, key)
	if err != nil {
		t.Fatalf("Decrypt c1: %v", err)
	}
	p2, err := Decrypt(c2, key)
	if err != nil {
		t.Fatalf("Decrypt c2: %v", err)
	}
	if !bytes.Equal(p1, p2) || !bytes.Equal(p1, plaintext) {
		t.Error("ciphertexts decrypted to different or wrong plaintext")
	}
}

func TestDecryptInvalidKeySize(t *testing.T) {
	if _, err := Encrypt([]byte("x"), []byte("short")); !errors.Is(err, ErrInvalidKeySize) {
		t.Errorf("expected ErrInvalidKeySize, got %v", err)
	}
}
