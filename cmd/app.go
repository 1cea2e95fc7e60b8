// Package cmd implements the CLI application to browse a card catalog and
// manage a collection.
package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/cardfolio"
	"github.com/etnz/cardfolio/config"
	"github.com/etnz/cardfolio/store"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, g := range groups {
		for _, cmd := range g.commands {
			c.Register(cmd, g.name)
		}
	}
}

type group struct {
	name     string
	commands []subcommands.Command
}

var groups = []group{
	{"catalog", []subcommands.Command{&cardsCmd{}, &showCmd{}, &setsCmd{}, &findCmd{}}},
	{"collection", []subcommands.Command{&addCmd{}, &removeCmd{}, &clearCmd{}, &collectionCmd{}, &valueCmd{}, &healCmd{}}},
	{"custom cards", []subcommands.Command{&customAddCmd{}, &customDeleteCmd{}, &customListCmd{}}},
	{"help", []subcommands.Command{&topicCmd{}}},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "cardfolio.toml", "Path to the TOML configuration file")
var catalogFile = flag.String("catalog", "", "Path to the catalog snapshot (JSON), overrides the configuration")
var catalogSelect = flag.String("select", "", "JSONPath of the card array in the catalog snapshot, overrides the configuration")
var storePath = flag.String("store", "", "Path to the saved data, overrides the configuration")
var storeKind = flag.String("store-kind", "", `Kind of store, "file" or "sqlite", overrides the configuration`)
var Verbose = flag.Bool("verbose", false, "Log at debug level")
var rawOutput = flag.Bool("raw", false, "Print markdown as is instead of rendering it for the terminal")

// stdout and stdin are replaced in tests.
var stdout io.Writer = os.Stdout
var stdin io.Reader = os.Stdin

// input buffers stdin across confirmations.
var input *bufio.Reader

// loadConfig reads the configuration file and applies the global flags over it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *catalogFile != "" {
		cfg.Catalog.Path = *catalogFile
	}
	if *catalogSelect != "" {
		cfg.Catalog.Select = *catalogSelect
	}
	if *storePath != "" {
		cfg.Store.Path = *storePath
	}
	if *storeKind != "" {
		cfg.Store.Kind = *storeKind
	}
	if *Verbose {
		cfg.Log.Level = slog.LevelDebug
	}
	return cfg, cfg.Validate()
}

// app is everything a subcommand needs to work on the collection.
type app struct {
	session *cardfolio.Session
	store   store.Store
}

// Close releases the store.
func (a *app) Close() error { return a.store.Close() }

// openApp loads the configuration, the catalog and the saved data.
// A read only app never saves anything, not even the healed portfolio.
func openApp(ctx context.Context, readOnly bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger := cfg.Log.NewLogger(os.Stderr)

	catalog, err := cardfolio.LoadCatalog(cfg.Catalog.Path, cfg.Catalog.Select)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("catalog %q does not exist, use -catalog or the [catalog] section of %s: %w", cfg.Catalog.Path, *configFile, err)
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("catalog loaded", "path", cfg.Catalog.Path, "variants", catalog.Len())

	rate, err := cfg.Valuation.DecimalRate()
	if err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, cfg.Store.Kind, cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	conv := cardfolio.NewConverter(rate, cfg.Valuation.TargetCurrency).
		WithSource(cfg.Valuation.SourceCurrency).
		WithRoundToTens(cfg.Valuation.RoundUpToTensAbove)
	session, err := cardfolio.Open(ctx, catalog, st, cardfolio.Options{
		Logger:    logger,
		Converter: &conv,
		ReadOnly:  readOnly,
		OnMutate: func(m cardfolio.Mutation) {
			logger.Debug("saved", "mutation", m.Kind.String(), "id", m.ID)
		},
	})
	if err != nil {
		st.Close()
		return nil, err
	}
	return &app{session: session, store: st}, nil
}

// printMarkdown renders md for the terminal, or prints it as is with -raw.
func printMarkdown(md string) {
	if *rawOutput {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}

// confirm asks a yes/no question on stdin, anything but "y" or "yes" is a no.
func confirm(question string) bool {
	fmt.Fprintf(stdout, "%s [y/N] ", question)
	if input == nil {
		input = bufio.NewReader(stdin)
	}
	answer, err := input.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// failure prints err and returns the matching exit status.
func failure(what string, err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", what, err)
	switch {
	case errors.Is(err, cardfolio.ErrMissingField),
		errors.Is(err, cardfolio.ErrInvalidPrice),
		errors.Is(err, cardfolio.ErrUnknownVariant),
		errors.Is(err, cardfolio.ErrNotFound):
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}
