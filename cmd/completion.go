package cmd

import (
	"context"
	"flag"
	"log/slog"
	"strings"

	"github.com/etnz/cardfolio"
	"github.com/etnz/cardfolio/docs"
	"github.com/etnz/cardfolio/store"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// builtins are the subcommands registered by the main package.
var builtins = []string{"help", "flags", "commands"}

// Known reports whether name is a subcommand of cfo, and not an extension.
func Known(name string) bool {
	for _, b := range builtins {
		if b == name {
			return true
		}
	}
	for _, g := range groups {
		for _, c := range g.commands {
			if c.Name() == name {
				return true
			}
		}
	}
	return false
}

// namedFlags are the flags whose values can be predicted.
var namedFlags = map[string]complete.Predictor{
	"config":     predict.Files("*.toml"),
	"catalog":    predict.Files("*.json"),
	"store":      predict.Files("*"),
	"store-kind": predict.Set{store.KindFile, store.KindSQLite},
	"only":       predict.Set(bucketNames()),
	"hide":       predict.Set(bucketNames()),
}

// Completion describes the subcommands, their flags and arguments for shell
// completion.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(flag.CommandLine),
	}
	var names []string
	for _, g := range groups {
		for _, c := range g.commands {
			fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(fs)
			root.Sub[c.Name()] = &complete.Command{
				Flags: flagPredictors(fs),
				Args:  argPredictor(c.Name()),
			}
			names = append(names, c.Name())
		}
	}
	root.Sub["help"] = &complete.Command{Args: predict.Set(names)}
	return root
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	m := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := namedFlags[f.Name]; ok {
			m[f.Name] = p
			return
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			m[f.Name] = predict.Nothing
			return
		}
		m[f.Name] = predict.Something
	})
	return m
}

func argPredictor(name string) complete.Predictor {
	switch name {
	case "add", "show":
		return complete.PredictFunc(func(prefix string) []string {
			return cardIDs(prefix, func(cardfolio.CardVariant) bool { return true })
		})
	case "remove":
		return complete.PredictFunc(ownedIDs)
	case "custom-delete":
		return complete.PredictFunc(func(prefix string) []string {
			return cardIDs(prefix, func(c cardfolio.CardVariant) bool { return c.Custom })
		})
	case "topic":
		topics, err := docs.GetAllTopics()
		if err != nil {
			return predict.Nothing
		}
		return predict.Set(topics)
	}
	return predict.Nothing
}

// completionSession opens the collection as configured, without saving anything.
func completionSession() *cardfolio.Session {
	cfg, err := loadConfig()
	if err != nil {
		return nil
	}
	catalog, err := cardfolio.LoadCatalog(cfg.Catalog.Path, cfg.Catalog.Select)
	if err != nil {
		return nil
	}
	ctx := context.Background()
	st, err := store.Open(ctx, cfg.Store.Kind, cfg.Store.Path)
	if err != nil {
		return nil
	}
	defer st.Close()
	s, err := cardfolio.Open(ctx, catalog, st, cardfolio.Options{ReadOnly: true, Logger: slog.New(slog.DiscardHandler)})
	if err != nil {
		return nil
	}
	return s
}

func cardIDs(prefix string, keep func(cardfolio.CardVariant) bool) []string {
	s := completionSession()
	if s == nil {
		return nil
	}
	var ids []string
	for _, c := range s.AllCards() {
		if keep(c) && strings.HasPrefix(c.ID, prefix) {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

func ownedIDs(prefix string) []string {
	s := completionSession()
	if s == nil {
		return nil
	}
	var ids []string
	for _, id := range s.Portfolio().IDs() {
		if strings.HasPrefix(id, prefix) {
			ids = append(ids, id)
		}
	}
	return ids
}
