package crypto

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/zalando/go-keyring"
)

// The unlocked reflection key is cached in the OS keyring so that every
// 'lifedeck note view' does not have to re-prompt for the master password.
// Headless machines fall back to a 0600 file under ~/.lifedeck.
const (
	reflectionKeyService = "lifedeck-reflections"
	reflectionKeyAccount = "reflection-key"
	reflectionKeyFile    = ".reflection.key"
)

var (
	keyringCheck sync.Once
	keyringOK    bool
)

// keyringAvailable tests the system keyring once per process with a
// throwaway entry. D-Bus-less servers and CI boxes fail the check and use
// the file fallback.
func keyringAvailable() bool {
	keyringCheck.Do(func() {
		const canaryAccount = "availability-check"
		if err := keyring.Set(reflectionKeyService, canaryAccount, "ok"); err != nil {
			return
		}
		_ = keyring.Delete(reflectionKeyService, canaryAccount)
		keyringOK = true
	})
	return keyringOK
}

func fallbackKeyPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".lifedeck", reflectionKeyFile), nil
}

// StoreSymmetricKey caches the unlocked reflection key for later CLI
// invocations.
func StoreSymmetricKey(key []byte) error {
	encoded := base64.StdEncoding.EncodeToString(key)

	if keyringAvailable() {
		if err := keyring.Set(reflectionKeyService, reflectionKeyAccount, encoded); err != nil {
			return fmt.Errorf("failed to cache reflection key in keyring: %w", err)
		}
		return nil
	}

	path, err := fallbackKeyPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(encoded), 0600); err != nil {
		return fmt.Errorf("failed to write reflection key file: %w", err)
	}
	return nil
}

// RetrieveSymmetricKey loads a previously cached reflection key.
func RetrieveSymmetricKey() ([]byte, error) {
	var encoded string

	if keyringAvailable() {
		stored, err := keyring.Get(reflectionKeyService, reflectionKeyAccount)
		if err != nil {
			return nil, fmt.Errorf("no cached reflection key: %w", err)
		}
		encoded = stored
	} else {
		path, err := fallbackKeyPath()
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("no cached reflection key: %w", err)
		}
		encoded = string(data)
	}

	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("cached reflection key is corrupt: %w", err)
	}
	return key, nil
}

// DeleteSymmetricKey purges the cached reflection key from both the
// keyring and the fallback file, whichever exists.
func DeleteSymmetricKey() error {
	var keyringErr error
	if keyringAvailable() {
		keyringErr = keyring.Delete(reflectionKeyService, reflectionKeyAccount)
	}

	var fileErr error
	if path, err := fallbackKeyPath(); err == nil {
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			fileErr = rmErr
		}
	} else {
		fileErr = err
	}

	if keyringErr != nil && fileErr != nil {
		return fmt.Errorf("failed to purge cached reflection key")
	}
	return nil
}

// HasStoredKey reports whether a cached reflection key exists.
func HasStoredKey() bool {
	if keyringAvailable() {
		if _, err := keyring.Get(reflectionKeyService, reflectionKeyAccount); err == nil {
			return true
		}
	}
	path, err := fallbackKeyPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// GetStorageMode names where the reflection key is cached, for
// 'lifedeck vault status'.
func GetStorageMode() string {
	if keyringAvailable() {
		return "system keyring"
	}
	return "file (~/.lifedeck/" + reflectionKeyFile + ", keyring unavailable)"
}
