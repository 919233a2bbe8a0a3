package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matsen/axd/internal/config"
	"github.com/matsen/axd/internal/listing"
	"github.com/matsen/axd/internal/paper"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(setupCmd)
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Choose categories, blacklists and file naming interactively",
	Long: `Walk through the settings and write them to the config file.

Categories are chosen by their index in the catalog fetched from arxiv.org:
  2 12 5 ; 1 20
subscribes to categories 2, 12 and 5 and blacklists 1 and 20.
Keywords are separated by ';', e.g. "heisenberg; gravitational waves".`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

// ErrSetupAborted is returned when input ends before setup is complete.
var ErrSetupAborted = errors.New("setup aborted")

func runSetup(cmd *cobra.Command, args []string) error {
	cats, err := listing.NewClient().Catalog(cmd.Context())
	if err != nil {
		exitWithError(ExitDataError, "fetching category catalog: %v", err)
	}

	base, err := config.Load(config.Path())
	if err != nil {
		if !errors.Is(err, config.ErrNotConfigured) {
			warnf("ignoring existing config: %v", err)
		}
		base = config.Default()
	}

	cfg, err := questionnaire(bufio.NewReader(os.Stdin), os.Stderr, cats, base)
	if err != nil {
		if errors.Is(err, ErrSetupAborted) {
			exitWithError(ExitError, "%v", err)
		}
		return err
	}

	path := config.Path()
	if err := cfg.Save(path); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Configuration saved to %s\n", path)
		return nil
	}
	return outputJSON(StatusResponse{Status: "saved", Path: path})
}

// questionnaire asks for every setting, repeating a question until its
// answer is valid. Prompts go to out.
func questionnaire(in *bufio.Reader, out io.Writer, cats []listing.Category, cfg *config.Config) (*config.Config, error) {
	ask := func(question string) (string, error) {
		fmt.Fprintf(out, "\n%s\n> ", wrapText(question, TextWrapWidth, ""))
		line, err := in.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", ErrSetupAborted
		}
		return strings.TrimSpace(line), nil
	}

	// Style
	for {
		answer, err := ask(fmt.Sprintf("Filename style for downloaded papers (attributes: %s). Press enter to keep %q.",
			strings.Join(paper.Attributes, ", "), cfg.Style))
		if err != nil {
			return nil, err
		}
		if answer == "" {
			break
		}
		if err := config.ValidateStyle(answer); err != nil {
			fmt.Fprintf(out, "%v. Try again.\n", err)
			continue
		}
		cfg.Style = answer
		break
	}

	// Colors
	for {
		answer, err := ask("Use colored output? (y/n)")
		if err != nil {
			return nil, err
		}
		colored, err := config.ParseYesNo(answer)
		if err != nil {
			fmt.Fprintf(out, "%v. Try again.\n", err)
			continue
		}
		cfg.Colored = colored
		break
	}

	// Categories
	ids := make([]string, len(cats))
	for i, c := range cats {
		ids[i] = c.ID
	}
	fmt.Fprint(out, "\n"+formatCatalog(cats))
	for {
		answer, err := ask("Categories to follow, then ';' and categories to blacklist (e.g. 2 12 5 ; 1 20):")
		if err != nil {
			return nil, err
		}
		white, black, err := config.ParseCategoryChoice(answer, ids)
		if err == nil && len(white) == 0 {
			err = fmt.Errorf("%w: choose at least one category", config.ErrInvalidConfig)
		}
		if err != nil {
			fmt.Fprintf(out, "%v. Try again.\n", err)
			continue
		}
		cfg.CategoryWhitelist, cfg.CategoryBlacklist = white, black
		break
	}

	// Keywords
	for {
		answer, err := ask("Lowercase keywords to blacklist, separated by ';' (enter for none):")
		if err != nil {
			return nil, err
		}
		kws, err := config.ParseKeywords(answer)
		if err != nil {
			fmt.Fprintf(out, "%v. Try again.\n", err)
			continue
		}
		cfg.KeywordBlacklist = kws
		break
	}

	// Email
	for {
		answer, err := ask(fmt.Sprintf("Address to mail the daily digest to (enter for none). The SMTP password is read from %s.", config.PasswordEnv))
		if err != nil {
			return nil, err
		}
		if answer != "" && !strings.Contains(answer, "@") {
			fmt.Fprintf(out, "%q is not an email address. Try again.\n", answer)
			continue
		}
		cfg.Email = config.Email{To: answer}
		break
	}

	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// formatCatalog lists the categories with their selection indices.
func formatCatalog(cats []listing.Category) string {
	var sb strings.Builder
	group := ""
	for i, c := range cats {
		if c.Group != group {
			group = c.Group
			sb.WriteString(group + "\n")
		}
		fmt.Fprintf(&sb, "%5d  %-20s %s\n", i, c.ID, truncateString(c.Name, CategoryNameMaxLen))
	}
	return sb.String()
}
