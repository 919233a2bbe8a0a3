package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/matsen/axd/internal/ansi"
	"github.com/matsen/axd/internal/config"
	"github.com/matsen/axd/internal/digest"
	"github.com/matsen/axd/internal/download"
	"github.com/matsen/axd/internal/filter"
	"github.com/matsen/axd/internal/history"
	"github.com/matsen/axd/internal/listing"
	"github.com/matsen/axd/internal/paper"
	"github.com/matsen/axd/internal/selection"
	"github.com/matsen/axd/internal/stats"
	"github.com/spf13/cobra"
)

var (
	runKeepGoing bool
	runSource    string
	runNoEmail   bool
	runDownload  string
	runNoPrompt  bool
)

func init() {
	addRunFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, filter and show today's new papers",
	Long: `Fetch the new listings of every whitelisted category, filter them and show
the accepted papers with their selection index.

The digest is written to <download_dir>/<date>/digest-<date>.txt. The first run
of a day creates that directory and mails the digest if email.to is set; later
runs on the same day do not send mail again.

Papers are downloaded into <download_dir>/<date>/Papers. Choose them with
--download "0 3 14", or answer the prompt shown in --human mode on a terminal.

Environment Variables:
  AXD_SMTP_PASSWORD  SMTP password for the digest mail (may be set in .env)`,
	Args: cobra.NoArgs,
	RunE: runDigest,
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&runKeepGoing, "keep-going", false, "Skip categories that fail to fetch instead of stopping")
	cmd.Flags().StringVar(&runSource, "source", "", "Listing source: html or rss (overrides config)")
	cmd.Flags().BoolVar(&runNoEmail, "no-email", false, "Do not send the digest mail")
	cmd.Flags().StringVar(&runDownload, "download", "", "Space-separated indices of papers to download")
	cmd.Flags().BoolVar(&runNoPrompt, "no-prompt", false, "Do not ask which papers to download")
}

func runDigest(cmd *cobra.Command, args []string) error {
	// Load .env file if present (for AXD_SMTP_PASSWORD)
	_ = godotenv.Load()

	cfg := mustLoadConfig()
	if runSource != "" {
		cfg.Source = runSource
		if err := cfg.Validate(); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
	}
	if len(cfg.CategoryWhitelist) == 0 {
		warnf("no categories configured; run 'axd setup' or 'axd config category-whitelist'")
	}

	// Parse the selection flag before fetching so a typo fails fast.
	// The range is checked once the listing is known.
	if _, err := selection.Parse(runDownload, int(^uint(0)>>1)); err != nil {
		exitWithError(ExitSelectionError, "%v", err)
	}

	ctx := cmd.Context()
	policy := cfg.Policy()
	if runKeepGoing {
		policy = filter.SkipOnError
	}

	src := newSource(cfg.Source, listing.NewClient())
	res, err := filter.Run(ctx, cfg.CategoryWhitelist, cfg.Blacklist(), src, policy)
	if err != nil {
		var catErr *filter.CategoryError
		if errors.As(err, &catErr) {
			if res != nil && len(res.Papers) > 0 {
				warnf("%d papers from earlier categories were fetched before the failure", len(res.Papers))
			}
			exitWithError(ExitDataError, "%v\n\nUse --keep-going to skip failing categories.", err)
		}
		return err
	}
	for _, f := range res.Failures {
		warnf("could not fetch %s: %v", f.Category, f.Err)
	}

	now := time.Now()
	pal := ansi.NewPalette(cfg.Colored && humanOutput && ansi.IsTerminal(os.Stdout))

	root := cfg.DownloadRoot()
	dayDir, firstRun, err := digest.ClaimDay(root, now)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	d := &digest.Digest{
		Date:              now,
		Categories:        cfg.CategoryWhitelist,
		CategoryBlacklist: cfg.CategoryBlacklist,
		KeywordBlacklist:  cfg.KeywordBlacklist,
		ConfigPath:        config.Path(),
		Papers:            res.Papers,
		Counters:          res.Counters,
		Failures:          res.Failures,
	}
	digestPath, err := d.WriteFile(dayDir)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		printListing(res, cfg.BarWidth, pal)
	}

	emailed := false
	if firstRun && !runNoEmail && cfg.Email.To != "" {
		if err := sendDigest(ctx, cfg, d); err != nil {
			warnf("digest mail not sent: %v", err)
		} else {
			emailed = true
		}
	}

	indices, err := chooseDownloads(res.Papers, pal)
	if err != nil {
		exitWithError(ExitSelectionError, "%v", err)
	}
	var downloads []download.Result
	if len(indices) > 0 {
		chosen := make([]paper.Paper, len(indices))
		for i, idx := range indices {
			chosen[i] = res.Papers[idx]
		}
		dl := download.New(cfg.DownloadTool, dayDir, cfg.Style, cfg.NameMax)
		downloads, err = dl.Download(ctx, chosen)
		for _, r := range downloads {
			if r.Fallback {
				warnf("the filename style gives a name longer than %d bytes for %s; saved as %s.pdf", cfg.NameMax, r.Paper.ID, r.Paper.ID)
			}
			if humanOutput {
				fmt.Println(r.String())
			}
		}
		if err != nil {
			warnf("downloads stopped: %v", err)
		}
	}

	record := history.NewRun(now, cfg.Source, cfg.CategoryWhitelist, res)
	record.Emailed = emailed
	for _, r := range downloads {
		if r.Err == nil {
			record.Downloaded++
		}
	}
	if err := history.Append(history.LogPath(root), record); err != nil {
		warnf("recording run: %v", err)
	}

	if humanOutput {
		fmt.Printf("\nDigest written to %s\n", digestPath)
		if emailed {
			fmt.Printf("Digest mailed to %s\n", cfg.Email.To)
		}
		return nil
	}
	return outputJSON(RunResponse{
		Date:       now.Format(digest.DateLayout),
		Papers:     res.Papers,
		Counters:   res.Counters,
		Total:      len(res.Papers) + res.Counters.Rejected(),
		Failures:   failureResponses(res.Failures),
		DigestPath: digestPath,
		Emailed:    emailed,
		Downloads:  downloads,
	})
}

// newSource returns the listing source named in the configuration.
func newSource(name string, client *listing.Client) filter.Source {
	if name == config.SourceRSS {
		return listing.NewRSSSource(client)
	}
	return listing.NewHTMLSource(client)
}

// printListing prints the accepted papers followed by the statistics bar.
func printListing(res *filter.Result, barWidth int, pal ansi.Palette) {
	if len(res.Papers) == 0 {
		if len(res.Failures) > 0 {
			fmt.Println("\nNo papers could be shown: every fetched category was empty or failed.")
		} else {
			fmt.Println("\nNo new papers today.")
		}
	}
	fmt.Print(digest.FormatPapers(res.Papers, pal))

	terminal := ansi.Width(os.Stdout)
	width := stats.FitWidth(barWidth, terminal)
	bar := stats.New(res.Counters, len(res.Papers), width)
	if line := bar.Render(pal); line != "" {
		fmt.Println()
		fmt.Println(stats.Legend(pal))
		fmt.Println(centerPad(width, terminal) + line)
	}
}

// sendDigest mails the day's digest.
func sendDigest(ctx context.Context, cfg *config.Config, d *digest.Digest) error {
	sender := &digest.SMTPSender{
		Host:     cfg.Email.SMTPHost,
		Port:     cfg.Email.SMTPPort,
		Username: cfg.Email.Username,
		Password: os.Getenv(config.PasswordEnv),
	}
	return sender.Send(ctx, digest.Message{
		From:    cfg.Email.From,
		To:      cfg.Email.To,
		Subject: digest.Subject(d.Date),
		Body:    d.Text(),
		Date:    d.Date,
	})
}

// chooseDownloads returns the indices to download, from --download or,
// in human mode on a terminal, from an interactive prompt.
func chooseDownloads(papers []paper.Paper, pal ansi.Palette) ([]int, error) {
	if runDownload != "" {
		return selection.Parse(runDownload, len(papers))
	}
	if len(papers) == 0 || runNoPrompt || !humanOutput || !ansi.IsTerminal(os.Stdin) {
		return nil, nil
	}
	return promptDownloads(bufio.NewReader(os.Stdin), os.Stdout, len(papers), pal)
}

// promptDownloads asks until the answer is a valid selection. An empty
// answer or end of input selects nothing.
func promptDownloads(in *bufio.Reader, out io.Writer, n int, pal ansi.Palette) ([]int, error) {
	question := pal.Wrap("Which papers would you like to download (e.g. 0 3 14 ...):", pal.Bold, pal.Underline)
	for {
		fmt.Fprintf(out, "\n%s ", question)
		line, err := in.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("reading selection: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			fmt.Fprintln(out, "Nothing will be downloaded.")
			return nil, nil
		}

		indices, perr := selection.Parse(line, n)
		if perr == nil {
			return indices, nil
		}
		if err == io.EOF {
			return nil, perr
		}
		fmt.Fprintf(out, "%v. Try again.\n", perr)
	}
}
