package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vaultctl",
	Short: "Passvault operator tooling",
	Long: `vaultctl prepares the secret material a Passvault server needs:
the vault encryption key, the operator password hash and, for
operational use, pre-issued bearer tokens.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
