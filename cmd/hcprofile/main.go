package main

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/hcprofile"
	"github.com/fwojciec/hcprofile/extract"
	"github.com/fwojciec/hcprofile/fs"
	"github.com/fwojciec/hcprofile/gemini"
	"github.com/fwojciec/hcprofile/goquery"
	"github.com/fwojciec/hcprofile/htmltomarkdown"
	hchttp "github.com/fwojciec/hcprofile/http"
	"github.com/fwojciec/hcprofile/openai"
	"github.com/fwojciec/hcprofile/readability"
	"github.com/fwojciec/hcprofile/rod"
	"github.com/fwojciec/hcprofile/scrape"
	hcslog "github.com/fwojciec/hcprofile/slog"
	"github.com/fwojciec/hcprofile/sqlite"
	"github.com/fwojciec/hcprofile/trafilatura"
	"github.com/fwojciec/hcprofile/viper"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Session database path used by the serve command. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher owns the browser or HTTP client and is closed with the program.
	Fetcher hcprofile.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var err error
	if m.Fetcher != nil {
		err = m.Fetcher.Close()
	}
	if m.DB != nil {
		if e := m.DB.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("hcprofile"),
		kong.Description("Extract healthcare professional profiles from web pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'hcprofile --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	var level slog.Level
	if err := level.UnmarshalText([]byte(cli.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cli.LogLevel, err)
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	defer m.Close()

	fetcher, err := newFetcher(cli)
	if err != nil {
		if cli.Fetcher == "browser" {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
		}
		return fmt.Errorf("failed to start fetcher: %w", err)
	}
	m.Fetcher = fetcher

	deps.Scraper = hcslog.NewLoggingScraper(&scrape.Scraper{
		Fetcher:     hcslog.NewLoggingFetcher(m.Fetcher, logger),
		Extractor:   newExtractor(cli),
		Converter:   newConverter(cli),
		RateLimiter: scrape.NewDomainLimiter(cli.RateLimit),
		Concurrency: cli.Concurrency,
		RetryDelays: scrape.RetryDelays(cli.Retries),
		Logger:      logger,
	}, logger)

	svc := extract.NewService(viper.NewSecretStore(cli.Secrets), newProvider(cli, logger))
	svc.MaxChars = cli.MaxChars
	deps.ProfileExtractor = hcslog.NewLoggingProfileExtractor(svc, logger)

	deps.NewWriter = func(dir string) hcprofile.DocumentWriter {
		return fs.NewWriter(dir)
	}

	if cmd == "serve" {
		path := cmp.Or(cli.Serve.DB, m.DBPath)
		if path != ":memory:" {
			_ = os.MkdirAll(filepath.Dir(path), 0755)
		}

		m.DB = sqlite.NewDB(path)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set HCPROFILE_DB or --db to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", path, err)
		}

		sessions := sqlite.NewSessionService(m.DB)
		deps.Sessions = sessions
		deps.PruneSessions = sessions.DeleteSessionsBefore
	}

	return kongCtx.Run(deps)
}

// newFetcher returns the page fetcher selected by --fetcher.
func newFetcher(cli *CLI) (hcprofile.Fetcher, error) {
	if cli.Fetcher == "browser" {
		f, err := rod.NewFetcher(
			rod.WithFetchTimeout(max(cli.Timeout, rod.DefaultFetchTimeout)),
			rod.WithManagerOptions(rod.WithMaxPages(cli.MaxPages)),
		)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return hchttp.NewFetcher(hchttp.WithTimeout(cli.Timeout)), nil
}

// newExtractor returns the content extractor selected by --extractor.
// Main-content extractors fall back to the whole page when they find nothing.
func newExtractor(cli *CLI) hcprofile.Extractor {
	page := goquery.NewPageExtractor()
	switch cli.Extractor {
	case "trafilatura":
		return &trafilatura.Extractor{Fallback: page}
	case "readability":
		return &readability.Extractor{Fallback: page}
	default:
		return page
	}
}

// newConverter returns the text converter selected by --converter.
func newConverter(cli *CLI) hcprofile.Converter {
	if cli.Converter == "markdown" {
		return htmltomarkdown.NewConverter()
	}
	return goquery.NewTextConverter()
}

// newProvider returns the language model backend selected by --provider.
// Clients are created per extraction since the API key may change.
func newProvider(cli *CLI, logger *slog.Logger) extract.Provider {
	if cli.Provider == "gemini" {
		model := cmp.Or(cli.Model, gemini.DefaultModel)
		return extract.Provider{
			Name:       "Gemini",
			SecretName: gemini.SecretName,
			NewCompleter: func(ctx context.Context, apiKey string) (hcprofile.Completer, error) {
				client, err := gemini.NewClient(ctx, apiKey, cli.BaseURL)
				if err != nil {
					return nil, err
				}
				return hcslog.NewLoggingCompleter(gemini.NewCompleter(client, model), model, logger), nil
			},
		}
	}

	model := cmp.Or(cli.Model, openai.DefaultModel)
	return extract.Provider{
		Name:       "OpenAI",
		SecretName: openai.SecretName,
		NewCompleter: func(_ context.Context, apiKey string) (hcprofile.Completer, error) {
			client := openai.NewClient(apiKey, cli.BaseURL)
			return hcslog.NewLoggingCompleter(openai.NewCompleter(client, model), model, logger), nil
		},
	}
}

func defaultDBPath() string {
	if path := os.Getenv("HCPROFILE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "hcprofile.db"
	}
	return filepath.Join(home, ".hcprofile", "sessions.db")
}
