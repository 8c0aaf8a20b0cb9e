package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/fwojciec/crmfill"
	crmhttp "github.com/fwojciec/crmfill/http"
	"github.com/fwojciec/crmfill/rod"
	crmslog "github.com/fwojciec/crmfill/slog"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// EnvFile is loaded into the environment before flags are parsed.
	// A missing file is ignored. Empty disables loading.
	EnvFile string

	// Directory replaces the HTTP directory client for end-to-end testing.
	Directory crmfill.DirectoryService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		EnvFile: ".env",
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if m.EnvFile != "" {
		// Variables already set in the environment win.
		_ = godotenv.Load(m.EnvFile)
	}

	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("crmfill"),
		kong.Description("Search the CRM directory and populate forms from its contacts"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'crmfill --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger = newLogger(stderr, cli.Verbose)

	deps.Config, err = LoadConfig(cli.Config)
	if err != nil {
		return err
	}

	// Wire command-specific dependencies based on command
	if cmd == "search" || cmd == "fill" || cmd == "browse" {
		directory := m.Directory
		if directory == nil {
			if cli.URL == "" {
				fmt.Fprintln(stderr, "Hint: set CRMFILL_URL or pass --url")
				return crmfill.Errorf(crmfill.EINVALID, "CRM bridge URL not set")
			}
			opts := []crmhttp.Option{
				crmhttp.WithToken(cli.Token),
				crmhttp.WithTimeout(cli.Timeout),
			}
			if cli.RateLimit > 0 {
				opts = append(opts, crmhttp.WithRateLimit(cli.RateLimit, 1))
			}
			directory = crmhttp.NewDirectoryClient(cli.URL, opts...)
		}
		deps.Directory = crmslog.NewLoggingDirectory(directory, deps.Logger)
	}

	if cmd == "browse" {
		browser, err := rod.NewBrowser(rod.WithHeadless(!cli.Browse.Show))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer browser.Close()
		deps.Browser = browser
	}

	return kongCtx.Run(deps)
}

// newLogger returns a slog logger writing human-readable lines to w.
// Warnings and errors are shown by default; verbose adds debug output.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		Level:           level,
	})
	return slog.New(handler)
}
