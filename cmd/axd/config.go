package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matsen/axd/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Usage:
  axd config                                  # Show all config
  axd config style                            # Get specific value
  axd config keyword-blacklist "qcd; lattice" # Set a list (';'-separated)
  axd config source rss                       # Read listings from RSS

Keys:
  style               Filename template, e.g. "($arxivid) $title - $authors.pdf"
  colored             Colored terminal output (y/n)
  category-whitelist  Categories to fetch, in display order
  category-blacklist  Category substrings that reject a paper
  keyword-blacklist   Lowercase title/abstract substrings that reject a paper
  download-dir        Root of the dated digest and download directories
  download-tool       wget or curl
  name-max            Longest filename in bytes before falling back to <id>.pdf
  bar-width           Width of the statistics bar
  source              html or rss
  on-fetch-error      halt or skip
  email-to            Address receiving the daily digest (empty disables mail)
  email-from          Sender address (defaults to email-to)
  smtp-host           SMTP server (default smtp.gmail.com)
  smtp-port           SMTP port (default 587)
  smtp-username       SMTP login (defaults to email-from)`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	path := config.Path()
	cfg, err := config.Load(path)
	if err != nil {
		if !errors.Is(err, config.ErrNotConfigured) || len(args) < 2 {
			exitWithError(ExitConfigError, "loading config: %v", err)
		}
		cfg = config.Default()
	}

	// No args: show all config
	if len(args) == 0 {
		values := make(map[string]string, len(config.Keys))
		for _, k := range config.Keys {
			v, _ := cfg.Get(k)
			values[k] = v
			if humanOutput {
				fmt.Printf("%-20s %s\n", k+":", v)
			}
		}
		if !humanOutput {
			outputJSON(values)
		}
		return nil
	}

	key := normalizeKey(args[0])

	// One arg: get specific value
	if len(args) == 1 {
		v, err := cfg.Get(key)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if humanOutput {
			fmt.Println(v)
		} else {
			outputJSON(map[string]string{key: v})
		}
		return nil
	}

	// Two args: set value
	value := args[1]
	if err := cfg.Set(key, value); err != nil {
		if errors.Is(err, config.ErrInvalidConfig) {
			exitWithError(ExitConfigError, "%v", err)
		}
		exitWithError(ExitError, "%v", err)
	}

	if err := cfg.Save(path); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s to %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{
			Status: "updated",
			Key:    key,
			Value:  value,
		})
	}
	return nil
}

// normalizeKey converts key formats (bar-width, bar_width, BAR_WIDTH) to consistent format
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}
