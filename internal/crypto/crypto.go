// Package crypto implements the reflections vault: journal text is
// encrypted client-side with AES-256-GCM under a symmetric key that is
// itself protected by a PBKDF2-stretched master password.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltLength       = 16     // 128-bit salt
	KeyLength        = 32     // AES-256
	NonceLength      = 12     // GCM nonce
	PBKDF2Iterations = 310000 // OWASP 2025 recommendation
)

// GenerateRandomBytes generates cryptographically secure random bytes
func GenerateRandomBytes(length int) ([]byte, error) {
	bytes := make([]byte, length)
	_, err := rand.Read(bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return bytes, nil
}

// GenerateSalt generates a 16-byte (128-bit) salt
func GenerateSalt() ([]byte, error) {
	return GenerateRandomBytes(SaltLength)
}

// GenerateNonce generates a 12-byte nonce for AES-GCM
func GenerateNonce() ([]byte, error) {
	return GenerateRandomBytes(NonceLength)
}

// DeriveKey derives a 256-bit key from password using PBKDF2-SHA256
func DeriveKey(password string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(password), salt, iterations, KeyLength, sha256.New)
}

// DeriveKeyWithDefaults derives a key using default PBKDF2 iterations
func DeriveKeyWithDefaults(password string, salt []byte) []byte {
	return DeriveKey(password, salt, PBKDF2Iterations)
}

// Encrypt encrypts plaintext using AES-256-GCM.
// Returns ciphertext and nonce.
func Encrypt(plaintext string, key []byte) (ciphertext, nonce []byte, err error) {
	if len(key) != KeyLength {
		return nil, nil, fmt.Errorf("invalid key length: expected %d, got %d", KeyLength, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce, err = GenerateNonce()
	if err != nil {
		return nil, nil, err
	}

	ciphertext = gcm.Seal(nil, nonce, []byte(plaintext), nil)
	return ciphertext, nonce, nil
}

// Decrypt decrypts ciphertext using AES-256-GCM
func Decrypt(ciphertext, nonce, key []byte) (string, error) {
	if len(key) != KeyLength {
		return "", fmt.Errorf("invalid key length: expected %d, got %d", KeyLength, len(key))
	}

	if len(nonce) != NonceLength {
		return "", fmt.Errorf("invalid nonce length: expected %d, got %d", NonceLength, len(nonce))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to create GCM: %w", err)
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("decryption failed: %w", err)
	}

	return string(plaintext), nil
}

// EncryptToBase64 encrypts plaintext and returns base64-encoded ciphertext and nonce
func EncryptToBase64(plaintext string, key []byte) (ciphertextB64, nonceB64 string, err error) {
	ciphertext, nonce, err := Encrypt(plaintext, key)
	if err != nil {
		return "", "", err
	}
	return base64.StdEncoding.EncodeToString(ciphertext),
		base64.StdEncoding.EncodeToString(nonce), nil
}

// DecryptFromBase64 decrypts base64-encoded ciphertext
func DecryptFromBase64(ciphertextB64, nonceB64 string, key []byte) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(ciphertextB64)
	if err != nil {
		return "", fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	nonce, err := base64.StdEncoding.DecodeString(nonceB64)
	if err != nil {
		return "", fmt.Errorf("failed to decode nonce: %w", err)
	}

	return Decrypt(ciphertext, nonce, key)
}

// BytesToBase64 converts bytes to base64 string
func BytesToBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Base64ToBytes converts base64 string to bytes
func Base64ToBytes(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}

// EncryptSymmetricKey encrypts the vault's symmetric key with the stretched master key
func EncryptSymmetricKey(symmetricKey, stretchedMasterKey []byte) (encryptedKey, nonce []byte, err error) {
	return Encrypt(string(symmetricKey), stretchedMasterKey)
}

// DecryptSymmetricKey decrypts the protected symmetric key with the stretched master key
func DecryptSymmetricKey(encryptedKey, nonce, stretchedMasterKey []byte) ([]byte, error) {
	decrypted, err := Decrypt(encryptedKey, nonce, stretchedMasterKey)
	if err != nil {
		return nil, err
	}
	return []byte(decrypted), nil
}

// ComputeContentHash computes a SHA-256 hash of normalized reflection text
// for duplicate detection. It runs on the plaintext, before encryption, so
// the same entry encrypted twice still hashes identically.
func ComputeContentHash(content string) string {
	normalized := normalizeForHash(content)
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:])
}

// normalizeForHash lowercases, collapses whitespace runs and trims, so
// formatting-only edits don't change the hash.
func normalizeForHash(content string) string {
	normalized := strings.ToLower(content)
	whitespaceRegex := regexp.MustCompile(`\s+`)
	normalized = whitespaceRegex.ReplaceAllString(normalized, " ")
	return strings.TrimSpace(normalized)
}
