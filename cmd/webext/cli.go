package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/webext"
	"github.com/fwojciec/webext/harvest"
)

// DefaultIndexURL is the API index listing every stable namespace.
const DefaultIndexURL = "https://developer.chrome.com/extensions/api_index"

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Namespaces webext.NamespaceService
	Harvester  *harvest.Harvester
	Generator  webext.BindingGenerator
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB       string        `name:"db" env:"WEBEXT_DB" default:"webext.db" help:"SQLite database path"`
	CacheDir string        `name:"cache-dir" env:"WEBEXT_CACHE_DIR" default:"cache" help:"Directory for cached pages"`
	NoCache  bool          `help:"Always fetch pages over the network"`
	Timeout  time.Duration `env:"WEBEXT_TIMEOUT" default:"10s" help:"Fetch timeout per page"`
	Rate     float64       `default:"1" help:"Requests per second per domain"`
	Markdown bool          `help:"Render field descriptions as Markdown"`
	Verbose  bool          `short:"v" help:"Enable debug logging"`

	Index    IndexCmd    `cmd:"" help:"List the reference pages of the API index"`
	Parse    ParseCmd    `cmd:"" help:"Extract the schema of a single reference page"`
	Harvest  HarvestCmd  `cmd:"" help:"Extract and store every page of the API index"`
	List     ListCmd     `cmd:"" help:"List stored namespaces"`
	Show     ShowCmd     `cmd:"" help:"Print a stored namespace"`
	Generate GenerateCmd `cmd:"" help:"Generate Go bindings for a stored namespace"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a stored namespace"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	URL     string   `name:"url" env:"WEBEXT_INDEX_URL" default:"${index_url}" help:"API index page"`
	Include []string `short:"i" help:"Keep namespaces matching regex (repeatable)"`
	Exclude []string `short:"x" help:"Drop namespaces matching regex (repeatable)"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	URL    string `arg:"" help:"Reference page URL"`
	Name   string `help:"Namespace name (default: last path segment of the URL)"`
	Format string `short:"o" enum:"json,yaml" default:"json" help:"Output format (json, yaml)"`
	Save   bool   `help:"Store the result in the database"`
}

// HarvestCmd is the "harvest" subcommand.
type HarvestCmd struct {
	URL         string   `name:"url" env:"WEBEXT_INDEX_URL" default:"${index_url}" help:"API index page"`
	Include     []string `short:"i" help:"Keep namespaces matching regex (repeatable)"`
	Exclude     []string `short:"x" help:"Drop namespaces matching regex (repeatable)"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent page limit"`
	Out         string   `help:"Write namespace JSON files to this directory instead of the database"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Name   string `arg:"" help:"Namespace name"`
	Format string `short:"o" enum:"json,yaml" default:"json" help:"Output format (json, yaml)"`
}

// GenerateCmd is the "generate" subcommand.
type GenerateCmd struct {
	Name    string `arg:"" help:"Namespace name"`
	Package string `short:"p" help:"Package name (default: lowercased namespace name)"`
	Output  string `type:"path" help:"Write to file instead of stdout"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Namespace name"`
	Force bool   `help:"Confirm deletion"`
}
