package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/etnz/cardfolio"
	"github.com/etnz/cardfolio/renderer"
	"github.com/google/subcommands"
)

// cardsCmd holds the flags for the 'cards' subcommand.
type cardsCmd struct {
	search string
	set    string
	only   bucketList
	hide   bucketList
}

func (*cardsCmd) Name() string     { return "cards" }
func (*cardsCmd) Synopsis() string { return "list the catalog cards grouped by rarity" }
func (*cardsCmd) Usage() string {
	return `cfo cards [-q <term>] [-set <set>] [-only <buckets>] [-hide <buckets>]

  Lists the catalog and custom cards, grouped by rarity bucket and sorted by
  card code. Plain commons and uncommons are never listed, and catalog cards
  sharing code, price and rarity are listed once.

  Buckets are: ` + strings.Join(bucketNames(), ", ") + `
`
}

func (c *cardsCmd) SetFlags(f *flag.FlagSet) {
	c.only, c.hide = nil, nil
	f.StringVar(&c.search, "q", "", "only list cards whose code, variant or name contains this term")
	f.StringVar(&c.set, "set", cardfolio.AllSets, "only list cards of this set, see 'cfo sets'")
	f.Var(&c.only, "only", "comma separated rarity buckets to list, all by default")
	f.Var(&c.hide, "hide", "comma separated rarity buckets to hide, can be repeated")
}

func (c *cardsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx, false)
	if err != nil {
		return failure("opening collection", err)
	}
	defer a.Close()
	s := a.session

	if c.set != "" && c.set != cardfolio.AllSets && !hasSet(s.Sets(), c.set) {
		fmt.Fprintf(os.Stderr, "Unknown set %q, see 'cfo sets'\n", c.set)
		return subcommands.ExitUsageError
	}

	s.SetSearch(c.search)
	s.SetSelectedSet(c.set)
	if len(c.only) > 0 {
		q := s.Query()
		q.Buckets = cardfolio.NewBucketSet(c.only...)
		s.SetQuery(q)
	}
	for _, b := range c.hide {
		if s.Query().Buckets.Has(b) {
			s.ToggleBucket(b)
		}
	}

	printMarkdown(renderer.RenderCards(renderer.NewCards(s.Grouped(), s.Query(), s.Portfolio(), s.Converter())))
	return subcommands.ExitSuccess
}

func hasSet(categories []cardfolio.SetCategory, set string) bool {
	for _, c := range categories {
		if slices.Contains(c.Sets, set) {
			return true
		}
	}
	return false
}

type showCmd struct{}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "show the details of cards" }
func (*showCmd) Usage() string {
	return `cfo show <id>...

  Shows the details of the cards and how many of them are owned.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "show requires at least one card ID")
		return subcommands.ExitUsageError
	}
	a, err := openApp(ctx, false)
	if err != nil {
		return failure("opening collection", err)
	}
	defer a.Close()

	owned := a.session.Portfolio()
	var b strings.Builder
	for _, id := range f.Args() {
		card, ok := a.session.Lookup(id)
		if !ok {
			return failure("showing card", fmt.Errorf("%w: %q", cardfolio.ErrUnknownVariant, id))
		}
		b.WriteString(renderer.CardMarkdown(card, owned[id], a.session.Converter()))
		b.WriteString("\n")
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

type setsCmd struct{}

func (*setsCmd) Name() string     { return "sets" }
func (*setsCmd) Synopsis() string { return "list the sets by category" }
func (*setsCmd) Usage() string {
	return `cfo sets

  Lists the set codes of every card, custom cards included, grouped into
  Boosters, Extra/Premium, Starters, Promos and Others.
`
}

func (c *setsCmd) SetFlags(f *flag.FlagSet) {}

func (c *setsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx, false)
	if err != nil {
		return failure("opening collection", err)
	}
	defer a.Close()

	printMarkdown(renderer.SetsMarkdown(a.session.Sets()))
	return subcommands.ExitSuccess
}

// findCmd holds the flags for the 'find' subcommand.
type findCmd struct {
	limit int
}

func (*findCmd) Name() string     { return "find" }
func (*findCmd) Synopsis() string { return "fuzzy search a card by code or name" }
func (*findCmd) Usage() string {
	return `cfo find [-n <limit>] <text>...

  Searches every card, hidden ones included, whose code, name, variant or
  rarity fuzzily matches the text. Use it to get the ID of a card.
`
}

func (c *findCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 20, "maximum number of results, 0 for all")
}

func (c *findCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	text := strings.Join(f.Args(), " ")
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(os.Stderr, "find requires a text to search")
		return subcommands.ExitUsageError
	}
	a, err := openApp(ctx, false)
	if err != nil {
		return failure("opening collection", err)
	}
	defer a.Close()

	matches := cardfolio.Find(a.session.AllCards(), text, c.limit)
	printMarkdown(renderer.FindMarkdown(text, matches, a.session.Converter()))
	return subcommands.ExitSuccess
}
