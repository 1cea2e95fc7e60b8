package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cardfolio"
	"github.com/etnz/cardfolio/renderer"
	"github.com/google/subcommands"
)

// customAddCmd holds the flags for the 'custom-add' subcommand.
type customAddCmd struct {
	fields cardfolio.CustomFields
	own    bool
}

func (*customAddCmd) Name() string     { return "custom-add" }
func (*customAddCmd) Synopsis() string { return "create a card missing from the catalog" }
func (*customAddCmd) Usage() string {
	return `cfo custom-add -code <code> -name <name> [-set <set>] [-variant <name>] [-rarity <rarity>] [-finish <finish>] [-image <url>] [-price <price>] [-own]

  Creates a custom card. It is listed ahead of the catalog cards, and is
  never hidden as a duplicate. The price is in the catalog currency.
`
}

func (c *customAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.fields.Code, "code", "", "card code, e.g. OP01-001 (required)")
	f.StringVar(&c.fields.Name, "name", "", "card name (required)")
	f.StringVar(&c.fields.Set, "set", "", "set code, default "+cardfolio.DefaultCustomSet)
	f.StringVar(&c.fields.VariantName, "variant", "", "variant name, default "+cardfolio.DefaultCustomVariantName)
	f.StringVar(&c.fields.Rarity, "rarity", "", "rarity label, default "+cardfolio.DefaultCustomRarity)
	f.StringVar(&c.fields.Finish, "finish", "", "finish, default "+cardfolio.DefaultCustomFinish)
	f.StringVar(&c.fields.ImageURL, "image", "", "image URL, default to a placeholder")
	f.Int64Var(&c.fields.Price, "price", 0, "price in the catalog currency")
	f.BoolVar(&c.own, "own", false, "also add one unit of the new card to the collection")
}

func (c *customAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx, false)
	if err != nil {
		return failure("opening collection", err)
	}
	defer a.Close()

	card, err := a.session.Create(ctx, c.fields)
	if err != nil {
		return failure("creating custom card", err)
	}
	fmt.Fprintf(stdout, "Created custom card %s\n", card.ID)

	if c.own {
		if err := a.session.Add(ctx, card.ID); err != nil {
			return failure("adding card", err)
		}
		fmt.Fprintf(stdout, "Added 1 × %s, 1 owned\n", card.ID)
	}
	return subcommands.ExitSuccess
}

// customDeleteCmd holds the flags for the 'custom-delete' subcommand.
type customDeleteCmd struct {
	yes bool
}

func (*customDeleteCmd) Name() string     { return "custom-delete" }
func (*customDeleteCmd) Synopsis() string { return "delete custom cards" }
func (*customDeleteCmd) Usage() string {
	return `cfo custom-delete [-y] <id>...

  Deletes custom cards. Owned units are kept in the collection, they are
  reported as unresolved until removed.
`
}

func (c *customDeleteCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "do not ask for confirmation")
}

func (c *customDeleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "custom-delete requires at least one custom card ID")
		return subcommands.ExitUsageError
	}
	a, err := openApp(ctx, false)
	if err != nil {
		return failure("opening collection", err)
	}
	defer a.Close()

	for _, id := range f.Args() {
		if !c.yes && !confirm(fmt.Sprintf("Delete custom card %s?", id)) {
			fmt.Fprintf(stdout, "Kept %s\n", id)
			continue
		}
		if err := a.session.Delete(ctx, id); err != nil {
			return failure("deleting custom card", err)
		}
		fmt.Fprintf(stdout, "Deleted custom card %s\n", id)
	}
	return subcommands.ExitSuccess
}

type customListCmd struct{}

func (*customListCmd) Name() string     { return "custom-list" }
func (*customListCmd) Synopsis() string { return "list the custom cards" }
func (*customListCmd) Usage() string {
	return `cfo custom-list

  Lists the custom cards in creation order.
`
}

func (c *customListCmd) SetFlags(f *flag.FlagSet) {}

func (c *customListCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx, false)
	if err != nil {
		return failure("opening collection", err)
	}
	defer a.Close()

	printMarkdown(renderer.CustomMarkdown(a.session.Custom(), a.session.Converter()))
	return subcommands.ExitSuccess
}
