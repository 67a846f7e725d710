package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vaultpass/passgen-go/internal/crypto"
)

func (a *app) newTokenCommand() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
		scope   string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed token for the audit API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.opts.Config.JWTSecret == "" {
				return errors.New("JWT_SECRET is not set")
			}
			if ttl <= 0 {
				ttl = a.opts.Config.JWTExpiry
			}

			token, err := crypto.GenerateToken(subject, scope, a.opts.Config.JWTSecret, ttl)
			if err != nil {
				return fmt.Errorf("signing token: %w", err)
			}
			a.logger.Debug("token issued", "subject", subject, "scope", scope, "ttl", ttl)

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Token subject (required)")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (defaults to JWT_EXPIRY)")
	cmd.Flags().StringVar(&scope, "scope", crypto.ScopeAuditRead, "Space separated scopes")
	cmd.MarkFlagRequired("subject")

	return cmd
}
