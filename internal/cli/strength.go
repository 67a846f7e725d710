package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vaultpass/passgen-go/internal/model"
	"github.com/vaultpass/passgen-go/internal/service"
)

func (a *app) newStrengthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "strength <password|->",
		Short: "Estimate the strength of a password",
		Long:  "Estimate the strength of a password. Pass - to read it from stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password := args[0]
			if password == "-" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("reading password from stdin: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			svc := service.NewStrengthService(a.opts.Config.MinEntropyBits)
			resp, err := svc.Analyze(model.StrengthRequest{Password: password})
			if err != nil {
				return err
			}

			verdict := "fails"
			if resp.MeetsPolicy {
				verdict = "meets"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Score:        %d/100 (%s)\n", resp.Score, resp.Strength)
			fmt.Fprintf(out, "Entropy:      %.1f bits\n", resp.EntropyBits)
			fmt.Fprintf(out, "zxcvbn:       %d/4, crack time %s\n", resp.ZxcvbnScore, resp.CrackTimeDisplay)
			fmt.Fprintf(out, "Policy:       %s %.0f bits (%.1f bits estimated)\n", verdict, resp.MinEntropyBits, resp.PolicyEntropy)
			return nil
		},
	}
}
