package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cardfolio/renderer"
	"github.com/google/subcommands"
)

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	n int
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add cards to the collection" }
func (*addCmd) Usage() string {
	return `cfo add [-n <count>] <id>...

  Adds units of the cards to the collection. IDs are listed by 'cfo cards'
  and 'cfo find'.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.n, "n", 1, "number of units to add")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 || c.n < 1 {
		fmt.Fprintln(os.Stderr, "add requires at least one card ID and a positive count")
		return subcommands.ExitUsageError
	}
	a, err := openApp(ctx, false)
	if err != nil {
		return failure("opening collection", err)
	}
	defer a.Close()

	for _, id := range f.Args() {
		for range c.n {
			if err := a.session.Add(ctx, id); err != nil {
				return failure("adding card", err)
			}
		}
		fmt.Fprintf(stdout, "Added %d × %s, %d owned\n", c.n, id, a.session.Portfolio()[id])
	}
	return subcommands.ExitSuccess
}

// removeCmd holds the flags for the 'remove' subcommand.
type removeCmd struct {
	n int
}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove cards from the collection" }
func (*removeCmd) Usage() string {
	return `cfo remove [-n <count>] <id>...

  Removes units of the cards from the collection. A card is forgotten when
  none is left.
`
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.n, "n", 1, "number of units to remove")
}

func (c *removeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 || c.n < 1 {
		fmt.Fprintln(os.Stderr, "remove requires at least one card ID and a positive count")
		return subcommands.ExitUsageError
	}
	a, err := openApp(ctx, false)
	if err != nil {
		return failure("opening collection", err)
	}
	defer a.Close()

	for _, id := range f.Args() {
		owned := a.session.Portfolio()[id]
		if owned == 0 {
			fmt.Fprintf(stdout, "%s is not in the collection\n", id)
			continue
		}
		n := min(c.n, owned)
		for range n {
			if err := a.session.Remove(ctx, id); err != nil {
				return failure("removing card", err)
			}
		}
		fmt.Fprintf(stdout, "Removed %d × %s, %d owned\n", n, id, owned-n)
	}
	return subcommands.ExitSuccess
}

// clearCmd holds the flags for the 'clear' subcommand.
type clearCmd struct {
	yes bool
}

func (*clearCmd) Name() string     { return "clear" }
func (*clearCmd) Synopsis() string { return "remove every card from the collection" }
func (*clearCmd) Usage() string {
	return `cfo clear [-y]

  Empties the collection. Custom cards are kept.
`
}

func (c *clearCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "do not ask for confirmation")
}

func (c *clearCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx, false)
	if err != nil {
		return failure("opening collection", err)
	}
	defer a.Close()

	units := a.session.Portfolio().Units()
	if units == 0 {
		fmt.Fprintln(stdout, "The collection is already empty")
		return subcommands.ExitSuccess
	}
	if !c.yes && !confirm(fmt.Sprintf("Remove all %d cards from the collection?", units)) {
		fmt.Fprintln(stdout, "Nothing removed")
		return subcommands.ExitSuccess
	}
	if err := a.session.Clear(ctx); err != nil {
		return failure("clearing collection", err)
	}
	fmt.Fprintf(stdout, "Removed %d cards\n", units)
	return subcommands.ExitSuccess
}

type collectionCmd struct{}

func (*collectionCmd) Name() string     { return "collection" }
func (*collectionCmd) Synopsis() string { return "display the owned cards and their value" }
func (*collectionCmd) Usage() string {
	return `cfo collection

  Displays the owned cards grouped by rarity bucket, with unit prices,
  subtotals and the total value of the collection.
`
}

func (c *collectionCmd) SetFlags(f *flag.FlagSet) {}

func (c *collectionCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx, false)
	if err != nil {
		return failure("opening collection", err)
	}
	defer a.Close()

	s := a.session
	printMarkdown(renderer.RenderCollection(renderer.NewCollection(s.Collection(), s.Summary(), s.Healing(), s.Converter())))
	return subcommands.ExitSuccess
}

type valueCmd struct{}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "display the total value of the collection" }
func (*valueCmd) Usage() string {
	return `cfo value

  Displays the number of owned cards and their total value.
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {}

func (c *valueCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx, false)
	if err != nil {
		return failure("opening collection", err)
	}
	defer a.Close()

	printMarkdown(renderer.SummaryMarkdown(a.session.Summary(), a.session.Converter()))
	return subcommands.ExitSuccess
}

// healCmd holds the flags for the 'heal' subcommand.
type healCmd struct {
	dryRun bool
}

func (*healCmd) Name() string     { return "heal" }
func (*healCmd) Synopsis() string { return "report the saved cards re-bound to the catalog" }
func (*healCmd) Usage() string {
	return `cfo heal [-dry-run]

  Every command re-binds the saved card IDs that are no longer in the
  catalog and saves the result. heal reports what was done.
`
}

func (c *healCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.dryRun, "dry-run", false, "report without saving the healed collection")
}

func (c *healCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx, c.dryRun)
	if err != nil {
		return failure("opening collection", err)
	}
	defer a.Close()

	printMarkdown(renderer.RenderHealing(renderer.NewHealing(a.session.Healing(), c.dryRun)))
	return subcommands.ExitSuccess
}
