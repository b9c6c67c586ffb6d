package crypto

import (
	"strings"
	"testing"
)

// unlockTestVault builds a throwaway vault config, unlocks it, and returns
// the raw symmetric key. Callers that want a locked vault lock it
// themselves.
func unlockTestVault(t *testing.T, masterPassword string) []byte {
	t.Helper()

	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt() error = %v", err)
	}
	symmetricKey, err := GenerateRandomBytes(KeyLength)
	if err != nil {
		t.Fatalf("GenerateRandomBytes() error = %v", err)
	}
	stretchedMasterKey := DeriveKey(masterPassword, salt, PBKDF2Iterations)
	encryptedKey, nonce, err := EncryptSymmetricKey(symmetricKey, stretchedMasterKey)
	if err != nil {
		t.Fatalf("EncryptSymmetricKey() error = %v", err)
	}

	config := &VaultConfig{
		EncryptionEnabled:     true,
		EncryptedSymmetricKey: BytesToBase64(encryptedKey),
		KeyNonce:              BytesToBase64(nonce),
		Salt:                  BytesToBase64(salt),
		KDFIterations:         PBKDF2Iterations,
		KDFAlgorithm:          "PBKDF2-SHA256",
	}
	if err := UnlockVault(masterPassword, config); err != nil {
		t.Fatalf("UnlockVault() error = %v", err)
	}
	return symmetricKey
}

func TestIsVaultUnlocked_Initially(t *testing.T) {
	LockVault()

	if IsVaultUnlocked() {
		t.Error("Vault should be locked initially")
	}
}

func TestUnlockVault_Success(t *testing.T) {
	LockVault()

	symmetricKey := unlockTestVault(t, "journal-master-password")
	defer LockVault()

	if !IsVaultUnlocked() {
		t.Error("Vault should be unlocked after UnlockVault()")
	}

	key, err := GetSymmetricKey()
	if err != nil {
		t.Fatalf("GetSymmetricKey() error = %v", err)
	}
	if string(key) != string(symmetricKey) {
		t.Error("GetSymmetricKey() returned wrong key")
	}
}

func TestUnlockVault_WrongPassword(t *testing.T) {
	LockVault()

	masterPassword := "correct-password"
	salt, _ := GenerateSalt()
	symmetricKey, _ := GenerateRandomBytes(KeyLength)
	stretchedMasterKey := DeriveKey(masterPassword, salt, PBKDF2Iterations)
	encryptedKey, nonce, _ := EncryptSymmetricKey(symmetricKey, stretchedMasterKey)

	config := &VaultConfig{
		EncryptionEnabled:     true,
		EncryptedSymmetricKey: BytesToBase64(encryptedKey),
		KeyNonce:              BytesToBase64(nonce),
		Salt:                  BytesToBase64(salt),
		KDFIterations:         PBKDF2Iterations,
	}

	if err := UnlockVault("wrong-password", config); err == nil {
		t.Error("UnlockVault() should fail with wrong password")
	}
	if IsVaultUnlocked() {
		t.Error("Vault should remain locked after failed unlock")
	}
}

func TestUnlockVault_EncryptionDisabled(t *testing.T) {
	LockVault()

	config := &VaultConfig{EncryptionEnabled: false}
	if err := UnlockVault("any-password", config); err == nil {
		t.Error("UnlockVault() should fail when encryption is disabled")
	}
}

func TestLockVault(t *testing.T) {
	unlockTestVault(t, "journal-master-password")
	if !IsVaultUnlocked() {
		t.Fatal("Vault should be unlocked before LockVault() test")
	}

	LockVault()

	if IsVaultUnlocked() {
		t.Error("Vault should be locked after LockVault()")
	}
	if _, err := GetSymmetricKey(); err == nil {
		t.Error("GetSymmetricKey() should fail after LockVault()")
	}
}

func TestGetSymmetricKey_Locked(t *testing.T) {
	LockVault()

	if _, err := GetSymmetricKey(); err == nil {
		t.Error("GetSymmetricKey() should fail when vault is locked")
	}
}

func TestEncryptContent_VaultUnlocked(t *testing.T) {
	unlockTestVault(t, "journal-master-password")
	defer LockVault()

	reflection := "Today I finally told them how I felt."
	encrypted, contentNonce, isEncrypted, err := EncryptContent(reflection)
	if err != nil {
		t.Fatalf("EncryptContent() error = %v", err)
	}
	if !isEncrypted {
		t.Error("Reflection should be encrypted while the vault is unlocked")
	}
	if encrypted == reflection {
		t.Error("Ciphertext should differ from the reflection text")
	}
	if contentNonce == "" {
		t.Error("Nonce should not be empty")
	}
}

func TestEncryptContent_VaultLocked(t *testing.T) {
	LockVault()

	reflection := "Written while the vault is locked"
	encrypted, nonce, isEncrypted, err := EncryptContent(reflection)
	if err != nil {
		t.Fatalf("EncryptContent() error = %v", err)
	}
	if isEncrypted {
		t.Error("A locked vault must not claim the reflection is encrypted")
	}
	if encrypted != reflection {
		t.Errorf("Locked-vault passthrough = %q, want %q", encrypted, reflection)
	}
	if nonce != "" {
		t.Error("Nonce should be empty when not encrypted")
	}
}

func TestDecryptContent_RoundTrip(t *testing.T) {
	unlockTestVault(t, "journal-master-password")
	defer LockVault()

	reflection := "A reflection no one else should read."
	encrypted, contentNonce, _, _ := EncryptContent(reflection)

	decrypted, err := DecryptContent(encrypted, contentNonce, true)
	if err != nil {
		t.Fatalf("DecryptContent() error = %v", err)
	}
	if decrypted != reflection {
		t.Errorf("Decrypted reflection = %q, want %q", decrypted, reflection)
	}
}

func TestDecryptContent_NotEncrypted(t *testing.T) {
	content := "Plain journal text"
	decrypted, err := DecryptContent(content, "", false)
	if err != nil {
		t.Fatalf("DecryptContent() error = %v", err)
	}
	if decrypted != content {
		t.Errorf("DecryptContent() = %q, want %q", decrypted, content)
	}
}

func TestDecryptContent_VaultLocked(t *testing.T) {
	unlockTestVault(t, "journal-master-password")
	encrypted, contentNonce, _, _ := EncryptContent("Secret reflection")

	LockVault()

	decrypted, err := DecryptContent(encrypted, contentNonce, true)
	if err != nil {
		t.Fatalf("DecryptContent() unexpected error = %v", err)
	}
	if decrypted != "[Encrypted - Unlock vault to view]" {
		t.Errorf("DecryptContent() should return placeholder when locked, got %q", decrypted)
	}
}

// Framed content is what actually lands in a note's content column:
// enc:v1:<nonce>:<ciphertext>, self-describing because the wire model has
// no nonce field.
func TestFrameContentRoundTrip(t *testing.T) {
	unlockTestVault(t, "journal-master-password")
	defer LockVault()

	reflection := "The framed version of a private thought."
	encrypted, nonce, isEncrypted, err := EncryptContent(reflection)
	if err != nil || !isEncrypted {
		t.Fatalf("EncryptContent() = (%v, %v)", isEncrypted, err)
	}

	framed := FrameContent(encrypted, nonce)
	if !strings.HasPrefix(framed, FramePrefix) {
		t.Fatalf("framed content %q missing %q prefix", framed, FramePrefix)
	}
	if !IsFramed(framed) {
		t.Error("IsFramed() should recognize framed content")
	}

	revealed, err := RevealContent(framed)
	if err != nil {
		t.Fatalf("RevealContent() error = %v", err)
	}
	if revealed != reflection {
		t.Errorf("RevealContent() = %q, want %q", revealed, reflection)
	}
}

func TestRevealContent_UnframedPassthrough(t *testing.T) {
	content := "An ordinary note body"
	if IsFramed(content) {
		t.Error("IsFramed() should reject plain content")
	}
	revealed, err := RevealContent(content)
	if err != nil {
		t.Fatalf("RevealContent() error = %v", err)
	}
	if revealed != content {
		t.Errorf("RevealContent() = %q, want passthrough", revealed)
	}
}

func TestRevealContent_MalformedFrame(t *testing.T) {
	if _, err := RevealContent(FramePrefix + "nonce-without-ciphertext"); err == nil {
		t.Error("RevealContent() should reject a frame without a ciphertext segment")
	}
}

func TestRevealContent_VaultLocked(t *testing.T) {
	unlockTestVault(t, "journal-master-password")
	encrypted, nonce, _, _ := EncryptContent("Locked away")
	framed := FrameContent(encrypted, nonce)

	LockVault()

	revealed, err := RevealContent(framed)
	if err != nil {
		t.Fatalf("RevealContent() error = %v", err)
	}
	if revealed != "[Encrypted - Unlock vault to view]" {
		t.Errorf("RevealContent() = %q, want locked-vault placeholder", revealed)
	}
}

func TestVaultConfig_Serialization(t *testing.T) {
	config := &VaultConfig{
		EncryptionEnabled:     true,
		EncryptedSymmetricKey: "base64-encrypted-key",
		KeyNonce:              "base64-nonce",
		Salt:                  "base64-salt",
		KDFIterations:         310000,
		KDFAlgorithm:          "PBKDF2-SHA256",
	}

	if !config.EncryptionEnabled {
		t.Error("EncryptionEnabled should be true")
	}
	if config.KDFIterations != 310000 {
		t.Errorf("KDFIterations = %d, want 310000", config.KDFIterations)
	}
}
