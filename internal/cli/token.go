package cli

import (
	"fmt"
	"time"

	"github.com/SscSPs/closing_tracker/internal/middleware"
	"github.com/spf13/cobra"
)

func (c *CLI) newTokenCmd() *cobra.Command {
	var (
		ttl   time.Duration
		admin bool
	)

	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Mint a bearer token for the API",
		Long: `Signs a token with JWT_SECRET and JWT_ISSUER. Useful for service
accounts and local testing; production users get tokens from the
marketplace auth service.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := middleware.IssueToken(middleware.AuthConfig{
				JWTSecret: c.cfg.JWTSecret,
				Issuer:    c.cfg.JWTIssuer,
			}, args[0], admin, ttl)
			if err != nil {
				return usageError{err}
			}
			fmt.Fprintln(c.out, token)
			return nil
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	cmd.Flags().BoolVar(&admin, "admin", false, "grant administrator access")
	return cmd
}
