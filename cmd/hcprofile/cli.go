package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/hcprofile"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx              context.Context
	Stdout           io.Writer
	Stderr           io.Writer
	Logger           *slog.Logger
	Scraper          hcprofile.Scraper
	ProfileExtractor hcprofile.ProfileExtractor
	Sessions         hcprofile.SessionService

	// PruneSessions removes sessions last updated before the given time.
	PruneSessions func(ctx context.Context, before time.Time) (int, error)

	// NewWriter returns a DocumentWriter rooted at dir.
	NewWriter func(dir string) hcprofile.DocumentWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Fetcher     string        `default:"http" enum:"http,browser" env:"HCPROFILE_FETCHER" help:"Page fetcher: http or browser (headless Chrome)"`
	Extractor   string        `default:"page" enum:"page,trafilatura,readability" env:"HCPROFILE_EXTRACTOR" help:"Content extractor: page, trafilatura or readability"`
	Converter   string        `default:"text" enum:"text,markdown" env:"HCPROFILE_CONVERTER" help:"Content format: text or markdown"`
	Provider    string        `default:"openai" enum:"openai,gemini" env:"HCPROFILE_PROVIDER" help:"Language model provider: openai or gemini"`
	Model       string        `env:"HCPROFILE_MODEL" help:"Model name (defaults to the provider's default)"`
	BaseURL     string        `name:"base-url" env:"HCPROFILE_BASE_URL" help:"Override the provider API endpoint"`
	Secrets     string        `default:".hcprofile/secrets.toml" env:"HCPROFILE_SECRETS" type:"path" help:"Secrets file holding API keys"`
	Timeout     time.Duration `short:"t" default:"10s" help:"Per-page fetch timeout"`
	Concurrency int           `short:"c" default:"3" help:"Concurrent fetch limit"`
	Retries     int           `default:"2" help:"Fetch retries per URL (0 disables)"`
	MaxPages    int64         `name:"browser-max-pages" default:"50" help:"Pages served by one browser process before it is replaced"`
	RateLimit   float64       `name:"rate-limit" default:"2" help:"Requests per second per domain"`
	MaxChars    int           `name:"max-chars" default:"35000" help:"Characters of raw content sent to the model"`
	LogLevel    string        `name:"log-level" default:"warn" enum:"debug,info,warn,error" env:"HCPROFILE_LOG_LEVEL" help:"Log level"`

	Serve   ServeCmd   `cmd:"" help:"Run the web UI"`
	Scrape  ScrapeCmd  `cmd:"" help:"Scrape URLs and print the raw content summary"`
	Extract ExtractCmd `cmd:"" help:"Scrape URLs and extract a professional profile"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr       string        `default:":8501" env:"HCPROFILE_ADDR" help:"Listen address"`
	DB         string        `type:"path" help:"Session database path (default $HCPROFILE_DB or ~/.hcprofile/sessions.db)"`
	SessionTTL time.Duration `name:"session-ttl" default:"24h" help:"Delete sessions idle for longer than this (0 keeps them)"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URLs []string `arg:"" name:"url" help:"URLs to scrape (comma-separated lists are accepted)"`
	Show bool     `short:"s" help:"Print the raw content"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URLs   []string `arg:"" name:"url" help:"URLs to scrape (comma-separated lists are accepted)"`
	Output string   `short:"o" type:"path" help:"Write professional_profile.txt to this directory"`
	JSON   bool     `name:"json" help:"Print the extracted profile as JSON"`
}

// urlList flattens positional arguments, each of which may itself be a
// comma-separated list.
func urlList(args []string) []string {
	var urls []string
	for _, arg := range args {
		urls = append(urls, hcprofile.ParseURLList(arg)...)
	}
	return urls
}
