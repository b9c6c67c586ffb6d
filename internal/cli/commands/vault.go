package commands

import (
	"fmt"
	"os"
	"syscall"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/kutbudev/lifedeck-cli/internal/crypto"
)

// NewVaultCommand creates the vault command for reflection encryption.
func NewVaultCommand() *cli.Command {
	return &cli.Command{
		Name:  "vault",
		Usage: "Manage the encryption vault for reflections",
		Subcommands: []*cli.Command{
			{
				Name:  "setup",
				Usage: "Create the vault with a master password",
				Action: func(c *cli.Context) error {
					return handleVaultSetup()
				},
			},
			{
				Name:  "unlock",
				Usage: "Unlock the vault for this machine",
				Action: func(c *cli.Context) error {
					return handleVaultUnlock()
				},
			},
			{
				Name:  "lock",
				Usage: "Lock the vault and wipe the cached key",
				Action: func(c *cli.Context) error {
					crypto.LockVault()
					if err := crypto.DeleteSymmetricKey(); err != nil {
						fmt.Fprintf(os.Stderr, "⚠️  Could not purge cached key: %v\n", err)
					}
					fmt.Println("🔒 Vault locked.")
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "Show vault state",
				Action: func(c *cli.Context) error {
					return handleVaultStatus()
				},
			},
		},
	}
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("could not read password: %w", err)
	}
	return string(password), nil
}

func handleVaultSetup() error {
	if _, err := crypto.LoadVaultConfig(); err == nil {
		return fmt.Errorf("vault already exists; use 'lifedeck vault unlock'")
	}

	password, err := readPassword("Choose a master password: ")
	if err != nil {
		return err
	}
	if len(password) < 8 {
		return fmt.Errorf("master password must be at least 8 characters")
	}
	confirm, err := readPassword("Repeat it: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	if err := crypto.SetupVault(password); err != nil {
		return fmt.Errorf("vault setup failed: %w", err)
	}
	cacheVaultKey()

	fmt.Println("🔐 Vault created and unlocked.")
	fmt.Println("New REFLECTION notes will be encrypted before they leave this machine.")
	return nil
}

func handleVaultUnlock() error {
	vaultConfig, err := crypto.LoadVaultConfig()
	if err != nil {
		return fmt.Errorf("no vault found; run 'lifedeck vault setup' first")
	}
	if crypto.RestoreSession() {
		fmt.Println("🔓 Vault is already unlocked.")
		return nil
	}

	password, err := readPassword("Master password: ")
	if err != nil {
		return err
	}

	if err := crypto.UnlockVault(password, vaultConfig); err != nil {
		fmt.Fprintln(os.Stderr, "❌ Unlock failed.")
		return err
	}
	cacheVaultKey()

	fmt.Println("🔓 Vault unlocked.")
	return nil
}

// cacheVaultKey persists the reflection key so subsequent invocations stay
// unlocked until 'lifedeck vault lock'.
func cacheVaultKey() {
	key, err := crypto.GetSymmetricKey()
	if err != nil {
		return
	}
	if err := crypto.StoreSymmetricKey(key); err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Could not cache key (%v); vault will lock when this process exits.\n", err)
	}
}

func handleVaultStatus() error {
	if _, err := crypto.LoadVaultConfig(); err != nil {
		fmt.Println("Vault: not set up (run 'lifedeck vault setup')")
		return nil
	}
	if crypto.RestoreSession() {
		fmt.Println("Vault: 🔓 unlocked")
	} else {
		fmt.Println("Vault: 🔒 locked")
	}
	fmt.Printf("Key storage: %s\n", crypto.GetStorageMode())
	return nil
}
