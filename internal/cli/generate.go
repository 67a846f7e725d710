package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
	"github.com/vaultpass/passgen-go/internal/service"
)

type generateFlags struct {
	length           int
	count            int
	entropyLevel     int
	noUpper          bool
	noLower          bool
	noNumbers        bool
	noSymbols        bool
	excludeSimilar   bool
	excludeAmbiguous bool
	strength         bool
	out              string
}

func (a *app) newGenerateCommand() *cobra.Command {
	var f generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one or more passwords",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd.Context(), cmd.OutOrStdout(), f)
		},
	}

	cmd.Flags().IntVarP(&f.length, "length", "l", service.DefaultLength, "Password length")
	cmd.Flags().IntVarP(&f.count, "count", "c", service.DefaultCount, "Number of passwords to generate")
	cmd.Flags().IntVar(&f.entropyLevel, "entropy-level", service.DefaultEntropyLevel, "Advisory entropy level (0-100)")
	cmd.Flags().BoolVar(&f.noUpper, "no-upper", false, "Exclude uppercase letters")
	cmd.Flags().BoolVar(&f.noLower, "no-lower", false, "Exclude lowercase letters")
	cmd.Flags().BoolVar(&f.noNumbers, "no-numbers", false, "Exclude digits")
	cmd.Flags().BoolVar(&f.noSymbols, "no-symbols", false, "Exclude symbols")
	cmd.Flags().BoolVar(&f.excludeSimilar, "exclude-similar", false, "Exclude look-alike characters (il1Lo0O)")
	cmd.Flags().BoolVar(&f.excludeAmbiguous, "exclude-ambiguous", false, "Exclude ambiguous symbols such as brackets and quotes")
	cmd.Flags().BoolVar(&f.strength, "strength", false, "Print score, label and entropy after each password")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Write passwords to a file instead of stdout")

	return cmd
}

func (a *app) runGenerate(ctx context.Context, stdout io.Writer, f generateFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	req := model.GenerateRequest{
		Length:           &f.length,
		Uppercase:        boolPtr(!f.noUpper),
		Lowercase:        boolPtr(!f.noLower),
		Numbers:          boolPtr(!f.noNumbers),
		Symbols:          boolPtr(!f.noSymbols),
		ExcludeSimilar:   boolPtr(f.excludeSimilar),
		ExcludeAmbiguous: boolPtr(f.excludeAmbiguous),
		EntropyLevel:     &f.entropyLevel,
		Count:            &f.count,
	}

	gen := crypto.NewGenerator(a.opts.Rand)
	pool, guaranteed := gen.Pool(service.ConfigFromRequest(req))
	a.logger.Debug("character pool", "size", len([]rune(pool)), "guaranteed", guaranteed)

	limits := service.Limits{MaxLength: a.opts.Config.MaxLength, MaxCount: a.opts.Config.MaxCount}
	svc := service.NewGeneratorService(gen, nil, limits, nil)

	resp, err := svc.Generate(ctx, req)
	if err != nil {
		return err
	}

	if f.out == "" {
		return writePasswords(stdout, resp.Passwords, f.strength, nil)
	}

	file, err := os.OpenFile(f.out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("opening output file: %w", err)
	}
	defer file.Close()

	bar := progressbar.NewOptions(len(resp.Passwords),
		progressbar.OptionSetWriter(a.opts.Err),
		progressbar.OptionSetDescription("writing passwords"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	if err := writePasswords(file, resp.Passwords, f.strength, bar); err != nil {
		return err
	}
	bar.Finish()

	a.logger.Info("passwords written", "file", f.out, "count", len(resp.Passwords))
	return file.Close()
}

func writePasswords(w io.Writer, passwords []model.GeneratedPassword, withStrength bool, bar *progressbar.ProgressBar) error {
	bw := bufio.NewWriter(w)
	for _, p := range passwords {
		var err error
		if withStrength {
			_, err = fmt.Fprintf(bw, "%s\t%d\t%s\t%.1f bits\n", p.Password, p.Score, p.Strength, p.EntropyBits)
		} else {
			_, err = fmt.Fprintln(bw, p.Password)
		}
		if err != nil {
			return fmt.Errorf("writing password: %w", err)
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	return bw.Flush()
}

func boolPtr(b bool) *bool {
	return &b
}
