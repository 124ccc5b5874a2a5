package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"

	"passvault/internal/domain/token"
)

var tokenSubject string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for operational use",
	Long: `Issues a bearer token signed with TOKEN_SECRET from the
environment, valid for 24 hours. Useful for scripting against the API
without going through /api/login.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		viper.AutomaticEnv()
		secret := viper.GetString("token_secret")
		if secret == "" {
			return fmt.Errorf("TOKEN_SECRET must be set")
		}

		service := token.NewService([]byte(secret), slog.Default())
		raw, err := service.Issue(tokenSubject)
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}

		color.Green("%s", raw)
		color.Yellow("Expires %s", time.Now().Add(token.TTL).Format(time.RFC3339))
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "admin", "token subject")
	rootCmd.AddCommand(tokenCmd)
}
