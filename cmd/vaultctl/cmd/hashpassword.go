package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Hash the operator password for server configuration",
	Long: `Prompts for the operator password (no echo) and prints a bcrypt
hash to set as OPERATOR_PASSWORD_HASH on the server.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprint(os.Stderr, "Password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}

		fmt.Fprint(os.Stderr, "Repeat password: ")
		repeat, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}

		if string(password) != string(repeat) {
			return fmt.Errorf("passwords do not match")
		}
		if len(password) == 0 {
			return fmt.Errorf("password must not be empty")
		}

		hash, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		color.Green("OPERATOR_PASSWORD_HASH=%s", string(hash))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd)
}
