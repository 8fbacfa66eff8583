package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/webext"
	"github.com/fwojciec/webext/fs"
	"github.com/fwojciec/webext/goquery"
	"github.com/fwojciec/webext/harvest"
	"github.com/fwojciec/webext/htmltomarkdown"
	webexthttp "github.com/fwojciec/webext/http"
	"github.com/fwojciec/webext/jennifer"
	webextslog "github.com/fwojciec/webext/slog"
	"github.com/fwojciec/webext/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher used by index, parse and harvest. When nil, Run builds an
	// HTTP fetcher behind the page cache.
	Fetcher webext.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
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
		kong.Name("webext"),
		kong.Description("Extract typed schemas from browser extension API reference pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{"index_url": DefaultIndexURL},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'webext --help' to see available commands")
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

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	if needsDB(cmd, cli) {
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set WEBEXT_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		defer m.Close()
		deps.Namespaces = webextslog.NewLoggingNamespaceService(sqlite.NewNamespaceService(m.DB), logger)
	}

	switch cmd {
	case "index", "parse", "harvest":
		fetcher, err := m.fetcher(cli)
		if err != nil {
			return err
		}
		defer fetcher.Close()

		var opts []goquery.Option
		if cli.Markdown {
			opts = append(opts, goquery.WithConverter(htmltomarkdown.NewConverter()))
		}

		deps.Harvester = &harvest.Harvester{
			Index:       goquery.NewIndexParser(),
			Fetcher:     webextslog.NewLoggingFetcher(fetcher, logger),
			Parser:      webextslog.NewLoggingParser(goquery.NewParser(opts...), logger),
			RateLimiter: harvest.NewDomainLimiter(cli.Rate),
			RetryLog: func(format string, args ...any) {
				logger.Warn(fmt.Sprintf(format, args...))
			},
		}
		if deps.Namespaces != nil {
			deps.Harvester.Writer = deps.Namespaces
		}
	case "generate":
		deps.Generator = jennifer.NewGenerator(cli.Generate.Package)
	}

	return kongCtx.Run(deps)
}

// needsDB reports whether cmd reads or writes the namespace database. index
// never does, parse only with --save and harvest unless writing to --out.
func needsDB(cmd string, cli *CLI) bool {
	switch cmd {
	case "index":
		return false
	case "parse":
		return cli.Parse.Save
	case "harvest":
		return cli.Harvest.Out == ""
	}
	return true
}

// fetcher returns the configured fetcher, or HTTP behind the page cache.
func (m *Main) fetcher(cli *CLI) (webext.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}
	f := webexthttp.NewFetcher(webexthttp.WithTimeout(cli.Timeout))
	if cli.NoCache {
		return f, nil
	}
	cache, err := fs.NewCache(cli.CacheDir, f)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache at %q: %w", cli.CacheDir, err)
	}
	return cache, nil
}
