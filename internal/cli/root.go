package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vaultpass/passgen-go/internal/config"
)

const version = "1.0.0"

// Options configures the command tree. Zero values select stdin, stdout,
// stderr and crypto/rand.
type Options struct {
	In     io.Reader
	Out    io.Writer
	Err    io.Writer
	Rand   io.Reader
	Config config.Config
}

type app struct {
	opts    Options
	verbose bool
	logger  *slog.Logger
}

// NewRootCommand builds the passgen command tree.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}

	a := &app{opts: opts}

	rootCmd := &cobra.Command{
		Use:   "passgen",
		Short: "Generate random passwords and estimate their strength",
		Long: `passgen v` + version + `
Generates passwords from uppercase, lowercase, digit and symbol classes
using a cryptographically secure random source, and scores passwords on a
0-100 scale (Weak, Fair, Good, Strong).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(opts.Err, &slog.HandlerOptions{Level: level}))
		},
	}
	rootCmd.SetIn(opts.In)
	rootCmd.SetOut(opts.Out)
	rootCmd.SetErr(opts.Err)
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(
		a.newGenerateCommand(),
		a.newStrengthCommand(),
		a.newTokenCommand(),
	)

	return rootCmd
}
