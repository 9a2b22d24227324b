// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package source

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/pbkdf2"
)

// sealedFixture builds a sealed document by hand with a fixed salt, a zero
// nonce and the given provider name and hash.
func sealedFixture(t *testing.T, plaintext []byte, passphrase, provider, hashName string) []byte {
	t.Helper()

	salt := []byte("test-salt-12345")
	iterations := 1000
	key := pbkdf2.Key([]byte(passphrase), salt, iterations, 32, sha256.New)

	block, err := aes.NewCipher(key)
	require.NoError(t, err)
	gcm, err := cipher.NewGCM(block)
	require.NoError(t, err)
	nonce := make([]byte, gcm.NonceSize())
	ciphertext := gcm.Seal(nonce, nonce, plaintext, nil)

	kp, err := json.Marshal(map[string]any{
		"salt":          base64.StdEncoding.EncodeToString(salt),
		"iterations":    iterations,
		"hash_function": hashName,
		"key_length":    32,
	})
	require.NoError(t, err)

	doc, err := json.Marshal(map[string]any{
		"meta":           map[string]any{KeyProviderPrefix + provider: base64.StdEncoding.EncodeToString(kp)},
		"encrypted_data": base64.StdEncoding.EncodeToString(ciphertext),
	})
	require.NoError(t, err)
	return doc
}

func TestUnseal(t *testing.T) {
	plaintext := []byte(`{"resources":[]}`)
	doc := sealedFixture(t, plaintext, "s3cret", "mykey", "sha256")
	require.True(t, IsSealed(doc))

	got, err := Unseal(doc, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)

	_, err = Unseal(doc, "wrong")
	assert.ErrorContains(t, err, "failed to decrypt")
}

func TestUnseal_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{name: "not json", doc: `nope`, want: "failed to parse sealed document"},
		{name: "no provider", doc: `{"meta":{},"encrypted_data":"AA=="}`, want: "no pbkdf2 key provider"},
		{name: "provider not base64", doc: `{"meta":{"key_provider.pbkdf2.k":"!!"},"encrypted_data":"AA=="}`, want: "failed to decode key provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unseal([]byte(tt.doc), "x")
			assert.ErrorContains(t, err, tt.want)
		})
	}

	t.Run("unsupported hash", func(t *testing.T) {
		doc := sealedFixture(t, []byte(`{}`), "x", "k", "md5")
		_, err := Unseal(doc, "x")
		assert.ErrorContains(t, err, "unsupported hash function")
	})
}

func TestSeal_RoundTrip(t *testing.T) {
	plaintext := []byte(`{"a":[1,2,3]}`)

	sealed, err := Seal(plaintext, "pw", 1000)
	require.NoError(t, err)
	assert.True(t, IsSealed(sealed))
	assert.NotContains(t, string(sealed), `"a"`)

	again, err := Seal(plaintext, "pw", 1000)
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "salt and nonce are random")

	got, err := Unseal(sealed, "pw")
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)

	_, err = Seal(plaintext, "", 1000)
	assert.ErrorIs(t, err, ErrNoPassphrase)
}

func TestIsSealed(t *testing.T) {
	assert.False(t, IsSealed([]byte(`{"a":1}`)))
	assert.False(t, IsSealed([]byte(`{"encrypted_data":1}`)))
	assert.False(t, IsSealed([]byte(`["encrypted_data"]`)))
	assert.False(t, IsSealed([]byte(`{`)))
	assert.True(t, IsSealed([]byte(`{"encrypted_data":"x"}`)))
}

func TestFindProvider(t *testing.T) {
	got, err := findProvider(map[string]string{
		"other":                   "x",
		KeyProviderPrefix + "b": "second",
		KeyProviderPrefix + "a": "first",
	})
	require.NoError(t, err)
	assert.Equal(t, "first", got)
}
