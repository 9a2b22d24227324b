// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"errors"
	"fmt"
	"hash"
	"os"
	"sort"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/tidwall/gjson"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/term"
)

const (
	// KeyProviderPrefix marks the meta entry holding PBKDF2 parameters.
	KeyProviderPrefix = "key_provider.pbkdf2."
	// DefaultIterations is the PBKDF2 work factor used by Seal.
	DefaultIterations = 200000
	keyLength         = 32
	saltLength        = 16
	providerName      = "jcheck"
)

var (
	// ErrNoPassphrase is returned when a sealed document is loaded without a
	// passphrase and no terminal to prompt on.
	ErrNoPassphrase = errors.New("sealed document needs a passphrase")
	// ErrNoKeyProvider is returned when a sealed document has no pbkdf2 meta.
	ErrNoKeyProvider = errors.New("sealed document has no pbkdf2 key provider")
)

type sealedDoc struct {
	Meta          map[string]string `json:"meta"`
	EncryptedData string            `json:"encrypted_data"`
}

type keyProvider struct {
	Salt       string `json:"salt"`
	Iterations int    `json:"iterations"`
	HashFunc   string `json:"hash_function"`
	KeyLength  int    `json:"key_length"`
}

// IsSealed reports whether data is a JSON object carrying encrypted_data.
func IsSealed(data []byte) bool {
	if !gjson.ValidBytes(data) {
		return false
	}
	r := gjson.ParseBytes(data)
	return r.IsObject() && r.Get("encrypted_data").Type == gjson.String
}

// Unseal decrypts a sealed document with passphrase.
func Unseal(data []byte, passphrase string) ([]byte, error) {
	var doc sealedDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse sealed document: %w", err)
	}

	raw, err := findProvider(doc.Meta)
	if err != nil {
		return nil, err
	}
	kpJSON, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode key provider: %w", err)
	}
	var kp keyProvider
	if err := json.Unmarshal(kpJSON, &kp); err != nil {
		return nil, fmt.Errorf("failed to parse key provider: %w", err)
	}

	salt, err := base64.StdEncoding.DecodeString(kp.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	hf, err := hashFunc(kp.HashFunc)
	if err != nil {
		return nil, err
	}
	if kp.Iterations <= 0 {
		return nil, fmt.Errorf("invalid iteration count %d", kp.Iterations)
	}

	key := pbkdf2.Key([]byte(passphrase), salt, kp.Iterations, kp.KeyLength, hf)
	return open(doc.EncryptedData, key)
}

// Seal encrypts doc with a key derived from passphrase. The result can be
// loaded like any other document when the passphrase is supplied.
func Seal(doc []byte, passphrase string, iterations int) ([]byte, error) {
	if passphrase == "" {
		return nil, ErrNoPassphrase
	}
	if iterations <= 0 {
		iterations = DefaultIterations
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	key := pbkdf2.Key([]byte(passphrase), salt, iterations, keyLength, sha512.New)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	ciphertext := gcm.Seal(nonce, nonce, doc, nil)

	kpJSON, err := json.Marshal(keyProvider{
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Iterations: iterations,
		HashFunc:   "sha512",
		KeyLength:  keyLength,
	})
	if err != nil {
		return nil, err
	}

	return json.Marshal(sealedDoc{
		Meta:          map[string]string{KeyProviderPrefix + providerName: base64.StdEncoding.EncodeToString(kpJSON)},
		EncryptedData: base64.StdEncoding.EncodeToString(ciphertext),
	})
}

// GetPassphrase prompts on the terminal without echoing input.
func GetPassphrase() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", ErrNoPassphrase
	}

	fmt.Fprint(os.Stderr, "Enter passphrase: ")
	defer fmt.Fprintln(os.Stderr)

	pass, err := term.ReadPassword(fd)
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	return string(pass), nil
}

// findProvider returns the first pbkdf2 key provider in name order.
func findProvider(meta map[string]string) (string, error) {
	names := make([]string, 0, len(meta))
	for name := range meta {
		if strings.HasPrefix(name, KeyProviderPrefix) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", ErrNoKeyProvider
	}
	sort.Strings(names)
	return meta[names[0]], nil
}

func hashFunc(name string) (func() hash.Hash, error) {
	switch strings.ToLower(name) {
	case "", "sha512":
		return sha512.New, nil
	case "sha256":
		return sha256.New, nil
	}
	return nil, fmt.Errorf("unsupported hash function %q", name)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// open splits the nonce prefix off the ciphertext and decrypts the rest.
func open(encrypted string, key []byte) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	n := gcm.NonceSize()
	if len(ciphertext) < n {
		return nil, fmt.Errorf("ciphertext too short: expected at least %d bytes, got %d", n, len(ciphertext))
	}

	plaintext, err := gcm.Open(nil, ciphertext[:n], ciphertext[n:], nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plaintext, nil
}
