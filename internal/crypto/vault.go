package crypto

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// VaultState represents the current state of the reflections vault
type VaultState struct {
	IsUnlocked   bool
	SymmetricKey []byte
	Salt         []byte
	Iterations   int
}

// VaultConfig stores encryption configuration (persisted to disk)
type VaultConfig struct {
	EncryptionEnabled     bool   `json:"encryption_enabled"`
	EncryptedSymmetricKey string `json:"encrypted_symmetric_key"` // base64
	KeyNonce              string `json:"key_nonce"`               // base64
	Salt                  string `json:"salt"`                    // base64
	KDFIterations         int    `json:"kdf_iterations"`
	KDFAlgorithm          string `json:"kdf_algorithm"`
}

var (
	currentVault *VaultState
	vaultMutex   sync.RWMutex
)

// IsVaultUnlocked returns whether the vault is currently unlocked
func IsVaultUnlocked() bool {
	vaultMutex.RLock()
	defer vaultMutex.RUnlock()
	return currentVault != nil && currentVault.IsUnlocked
}

// GetSymmetricKey returns the current symmetric key if vault is unlocked
func GetSymmetricKey() ([]byte, error) {
	vaultMutex.RLock()
	defer vaultMutex.RUnlock()

	if currentVault == nil || !currentVault.IsUnlocked {
		return nil, fmt.Errorf("vault is locked - run 'lifedeck unlock' first")
	}

	if currentVault.SymmetricKey == nil {
		return nil, fmt.Errorf("symmetric key not available")
	}

	// Return a copy to prevent external modification
	keyCopy := make([]byte, len(currentVault.SymmetricKey))
	copy(keyCopy, currentVault.SymmetricKey)
	return keyCopy, nil
}

// SetupVault initializes encryption for this install: it generates a
// fresh symmetric key, wraps it under the PBKDF2-stretched master
// password, persists the wrapped key, and leaves the vault unlocked.
func SetupVault(masterPassword string) error {
	vaultMutex.Lock()
	defer vaultMutex.Unlock()

	salt, err := GenerateSalt()
	if err != nil {
		return err
	}
	symmetricKey, err := GenerateRandomBytes(KeyLength)
	if err != nil {
		return err
	}

	stretchedMasterKey := DeriveKey(masterPassword, salt, PBKDF2Iterations)
	encryptedKey, nonce, err := EncryptSymmetricKey(symmetricKey, stretchedMasterKey)
	if err != nil {
		return fmt.Errorf("failed to wrap symmetric key: %w", err)
	}

	config := &VaultConfig{
		EncryptionEnabled:     true,
		EncryptedSymmetricKey: BytesToBase64(encryptedKey),
		KeyNonce:              BytesToBase64(nonce),
		Salt:                  BytesToBase64(salt),
		KDFIterations:         PBKDF2Iterations,
		KDFAlgorithm:          "PBKDF2-SHA256",
	}
	if err := SaveVaultConfig(config); err != nil {
		return err
	}

	currentVault = &VaultState{
		IsUnlocked:   true,
		SymmetricKey: symmetricKey,
		Salt:         salt,
		Iterations:   PBKDF2Iterations,
	}

	for i := range stretchedMasterKey {
		stretchedMasterKey[i] = 0
	}
	return nil
}

// UnlockVault decrypts the symmetric key with the master password
func UnlockVault(masterPassword string, config *VaultConfig) error {
	vaultMutex.Lock()
	defer vaultMutex.Unlock()

	if !config.EncryptionEnabled {
		return fmt.Errorf("encryption is not enabled; run 'lifedeck vault setup' first")
	}

	// Decode base64 values
	salt, err := Base64ToBytes(config.Salt)
	if err != nil {
		return fmt.Errorf("invalid salt: %w", err)
	}

	encryptedKey, err := Base64ToBytes(config.EncryptedSymmetricKey)
	if err != nil {
		return fmt.Errorf("invalid encrypted key: %w", err)
	}

	nonce, err := Base64ToBytes(config.KeyNonce)
	if err != nil {
		return fmt.Errorf("invalid nonce: %w", err)
	}

	iterations := config.KDFIterations
	if iterations == 0 {
		iterations = PBKDF2Iterations
	}

	// Derive the stretched master key from password
	stretchedMasterKey := DeriveKey(masterPassword, salt, iterations)

	// Decrypt the symmetric key
	symmetricKey, err := DecryptSymmetricKey(encryptedKey, nonce, stretchedMasterKey)
	if err != nil {
		return fmt.Errorf("invalid master password")
	}

	// Store in vault state
	currentVault = &VaultState{
		IsUnlocked:   true,
		SymmetricKey: symmetricKey,
		Salt:         salt,
		Iterations:   iterations,
	}

	// Zero out the stretched master key
	for i := range stretchedMasterKey {
		stretchedMasterKey[i] = 0
	}

	return nil
}

// LockVault clears the symmetric key from memory
func LockVault() {
	vaultMutex.Lock()
	defer vaultMutex.Unlock()

	if currentVault != nil {
		// Securely zero out the symmetric key
		if currentVault.SymmetricKey != nil {
			for i := range currentVault.SymmetricKey {
				currentVault.SymmetricKey[i] = 0
			}
		}
		currentVault = nil
	}
}

// RestoreSession rehydrates the vault from a reflection key cached by a
// previous 'lifedeck vault unlock', so each CLI invocation does not have
// to re-prompt for the master password. Returns whether the vault ended
// up unlocked.
func RestoreSession() bool {
	if IsVaultUnlocked() {
		return true
	}
	key, err := RetrieveSymmetricKey()
	if err != nil {
		return false
	}

	vaultMutex.Lock()
	defer vaultMutex.Unlock()
	currentVault = &VaultState{
		IsUnlocked:   true,
		SymmetricKey: key,
	}
	return true
}

// GetVaultConfigPath returns the path to the vault config file
func GetVaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".lifedeck", "vault.json"), nil
}

// LoadVaultConfig loads the vault configuration from disk
func LoadVaultConfig() (*VaultConfig, error) {
	path, err := GetVaultConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No vault config means encryption not set up
			return &VaultConfig{EncryptionEnabled: false}, nil
		}
		return nil, fmt.Errorf("failed to read vault config: %w", err)
	}

	var config VaultConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse vault config: %w", err)
	}

	return &config, nil
}

// SaveVaultConfig saves the vault configuration to disk
func SaveVaultConfig(config *VaultConfig) error {
	path, err := GetVaultConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal vault config: %w", err)
	}

	// Write with restrictive permissions (owner read/write only)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write vault config: %w", err)
	}

	return nil
}

// EncryptContent encrypts a reflection if the vault is unlocked; a locked
// vault passes the text through so journaling still works without
// encryption set up.
func EncryptContent(content string) (encrypted, nonce string, isEncrypted bool, err error) {
	key, err := GetSymmetricKey()
	if err != nil {
		// Vault locked - return unencrypted
		return content, "", false, nil
	}

	encrypted, nonce, err = EncryptToBase64(content, key)
	if err != nil {
		return "", "", false, fmt.Errorf("encryption failed: %w", err)
	}

	return encrypted, nonce, true, nil
}

// DecryptContent decrypts a reflection if it was stored encrypted and the
// vault is unlocked.
func DecryptContent(encryptedContent, nonce string, isEncrypted bool) (string, error) {
	if !isEncrypted {
		return encryptedContent, nil
	}

	key, err := GetSymmetricKey()
	if err != nil {
		return "[Encrypted - Unlock vault to view]", nil
	}

	plaintext, err := DecryptFromBase64(encryptedContent, nonce, key)
	if err != nil {
		return "[Decryption failed]", nil
	}

	return plaintext, nil
}

// FramePrefix marks vault-encrypted note content. The Note wire model has
// no nonce column, so the nonce travels inside the content string itself:
// enc:v1:<nonce>:<ciphertext>.
const FramePrefix = "enc:v1:"

// FrameContent packs ciphertext and nonce into the self-framing string
// stored as the note's content.
func FrameContent(encrypted, nonce string) string {
	return FramePrefix + nonce + ":" + encrypted
}

// IsFramed reports whether note content carries the encryption frame.
func IsFramed(content string) bool {
	return strings.HasPrefix(content, FramePrefix)
}

// RevealContent unpacks framed content and decrypts it. Unframed content
// passes through untouched; framed content behind a locked vault comes
// back as the standard placeholder.
func RevealContent(content string) (string, error) {
	if !IsFramed(content) {
		return content, nil
	}
	rest := strings.TrimPrefix(content, FramePrefix)
	nonce, ciphertext, found := strings.Cut(rest, ":")
	if !found {
		return "", fmt.Errorf("malformed encrypted content")
	}
	return DecryptContent(ciphertext, nonce, true)
}
