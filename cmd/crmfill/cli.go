package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/crmfill"
	"github.com/fwojciec/crmfill/rod"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Config    Config
	Directory crmfill.DirectoryService
	Browser   *rod.Browser
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL       string        `env:"CRMFILL_URL" help:"Base URL of the CRM bridge"`
	Token     string        `env:"CRMFILL_TOKEN" help:"Bearer token for the CRM bridge"`
	Timeout   time.Duration `default:"10s" help:"Directory request timeout"`
	RateLimit float64       `default:"5" help:"Maximum directory requests per second (0 disables the limit)"`
	Config    string        `short:"c" env:"CRMFILL_CONFIG" type:"path" help:"TOML file with element ids, field mappings and protected fields"`
	Verbose   bool          `short:"v" help:"Log directory calls and field writes"`

	Search SearchCmd `cmd:"" help:"Search the CRM directory"`
	Parse  ParseCmd  `cmd:"" help:"Split a postal address into street, city, state and zip"`
	Fill   FillCmd   `cmd:"" help:"Populate an HTML form from a CRM contact"`
	Browse BrowseCmd `cmd:"" help:"Populate a live page in Chrome from a CRM contact"`
	Clear  ClearCmd  `cmd:"" help:"Clear CRM-populated fields of an HTML form"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Company name, contact name or email"`
	Limit int    `short:"n" default:"10" help:"Maximum number of contacts"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	Address string `arg:"" help:"Address, e.g. \"123 Main St, Springfield, IL 62704\""`
	JSON    bool   `help:"Print components as JSON"`
}

// FillCmd is the "fill" subcommand.
type FillCmd struct {
	Form  string `arg:"" type:"existingfile" help:"HTML form to populate"`
	Query string `arg:"" help:"Company name, contact name or email"`
	Pick  int    `short:"p" default:"0" help:"Index of the search result to select"`
	Out   string `short:"o" type:"path" help:"Write the populated document to this file instead of stdout"`
}

// BrowseCmd is the "browse" subcommand.
type BrowseCmd struct {
	URL         string `arg:"" help:"Page hosting the form"`
	Query       string `arg:"" optional:"" help:"Company name, contact name or email"`
	Pick        int    `short:"p" default:"0" help:"Index of the search result to select"`
	Show        bool   `help:"Show the browser window"`
	Interactive bool   `short:"i" help:"Attach the widget to the page and wait for Ctrl-C"`
}

// ClearCmd is the "clear" subcommand.
type ClearCmd struct {
	Form string `arg:"" type:"existingfile" help:"HTML form to clear"`
	Out  string `short:"o" type:"path" help:"Write the cleared document to this file instead of stdout"`
}
