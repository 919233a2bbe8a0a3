package download

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/matsen/axd/internal/paper"
)

// PapersDir is the subdirectory of the day's directory that receives PDFs.
const PapersDir = "Papers"

// UserAgent is sent with every PDF request.
const UserAgent = "Mozilla/5.0"

// Runner runs an external command to completion.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands with os/exec, passing their output through.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Run implements Runner.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd.Run()
}

// Result describes the download of one paper.
type Result struct {
	Paper    paper.Paper `json:"paper"`
	Path     string      `json:"path"`
	Size     int64       `json:"size"`
	Pages    int         `json:"pages,omitempty"`
	Fallback bool        `json:"fallback,omitempty"` // named <id>.pdf because the styled name was too long
	Err      error       `json:"-"`
	Error    string      `json:"error,omitempty"`
}

// Downloader fetches PDFs one at a time with an external tool.
type Downloader struct {
	Tool    string // wget or curl
	Dir     string // the day's directory; files go to Dir/Papers
	Style   string
	NameMax int

	runner Runner
	verify func(path string) (int, error)
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithRunner sets the command runner.
func WithRunner(r Runner) Option {
	return func(d *Downloader) {
		d.runner = r
	}
}

// WithVerifier replaces the PDF check run after each download.
func WithVerifier(v func(path string) (int, error)) Option {
	return func(d *Downloader) {
		d.verify = v
	}
}

// New creates a Downloader writing into dir/Papers.
func New(tool, dir, style string, nameMax int, opts ...Option) *Downloader {
	d := &Downloader{
		Tool:    tool,
		Dir:     dir,
		Style:   style,
		NameMax: nameMax,
		runner:  ExecRunner{Stdout: os.Stderr, Stderr: os.Stderr},
		verify:  Verify,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Args returns the command line that downloads url to path.
func Args(tool, url, path string) ([]string, error) {
	switch filepath.Base(tool) {
	case "wget":
		return []string{"--quiet", "--show-progress", "--header", "User-Agent: " + UserAgent,
			"--output-document", path, url}, nil
	case "curl":
		return []string{"--silent", "--show-error", "--location", "--fail",
			"--user-agent", UserAgent, "--output", path, url}, nil
	}
	return nil, fmt.Errorf("unsupported download tool: %s", tool)
}

// Download fetches papers sequentially. A failed download is recorded in its
// Result and the remaining papers are still attempted; nothing is retried.
// The returned error is non-nil only when downloading cannot start or ctx is
// cancelled.
func (d *Downloader) Download(ctx context.Context, papers []paper.Paper) ([]Result, error) {
	if len(papers) == 0 {
		return nil, nil
	}
	if _, err := Args(d.Tool, "", ""); err != nil {
		return nil, err
	}

	dir := filepath.Join(d.Dir, PapersDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating papers directory: %w", err)
	}

	results := make([]Result, 0, len(papers))
	for _, p := range papers {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, d.fetch(ctx, dir, p))
	}
	return results, nil
}

func (d *Downloader) fetch(ctx context.Context, dir string, p paper.Paper) Result {
	name, fallback := Filename(d.Style, p, d.NameMax)
	res := Result{
		Paper:    p,
		Path:     filepath.Join(dir, name),
		Fallback: fallback,
	}

	args, _ := Args(d.Tool, p.URL, res.Path)
	if err := d.runner.Run(ctx, d.Tool, args...); err != nil {
		return res.fail(fmt.Errorf("%s %s: %w", d.Tool, p.ID, err))
	}

	info, err := os.Stat(res.Path)
	if err != nil {
		return res.fail(fmt.Errorf("checking download of %s: %w", p.ID, err))
	}
	res.Size = info.Size()

	pages, err := d.verify(res.Path)
	if err != nil {
		return res.fail(err)
	}
	res.Pages = pages
	return res
}

func (r Result) fail(err error) Result {
	r.Err = err
	r.Error = err.Error()
	return r
}

// String summarizes the result for the terminal.
func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: failed: %v", r.Paper.ID, r.Err)
	}
	return fmt.Sprintf("%s -> %s (%s, %d pages)", r.Paper.ID, r.Path, humanize.Bytes(uint64(r.Size)), r.Pages)
}
