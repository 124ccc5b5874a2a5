package cmd

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new vault encryption key",
	Long: `Generates a random 32-byte AES key and prints it hex-encoded.
Set it as VAULT_ENCRYPTION_KEY on the server. Rotating the key makes
existing ciphertexts unreadable, so store it safely.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return fmt.Errorf("generate key: %w", err)
		}

		color.Green("VAULT_ENCRYPTION_KEY=%s", hex.EncodeToString(key))
		color.Yellow("Keep this key out of source control.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd)
}
