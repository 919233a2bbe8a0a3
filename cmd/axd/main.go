// Package main provides the axd CLI entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/matsen/axd/internal/config"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(exitCodeFor(err))
	}
}

var rootCmd = &cobra.Command{
	Use:   "axd",
	Short: "Daily arXiv digest",
	Long: `axd fetches the new submissions of your arXiv categories, filters them
against category and keyword blacklists, drops duplicates and replacements,
and shows what is left. Selected papers can be downloaded, and the digest can
be mailed to you once a day.

Run 'axd setup' once to choose categories. Running 'axd' without a command
is the same as 'axd run'.
All commands output JSON by default; use --human for terminal output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runDigest,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
	addRunFlags(rootCmd)
}

// mustLoadConfig loads the settings file, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load(config.Path())
	if err != nil {
		if errors.Is(err, config.ErrNotConfigured) {
			exitWithError(ExitConfigError, "%v\n\nRun 'axd setup' to choose your categories.", err)
		}
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}
