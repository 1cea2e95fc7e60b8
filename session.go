package cardfolio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"

	lru "github.com/hashicorp/golang-lru"
)

// Keys of the blobs in the Store.
const (
	PortfolioKey   = "user_portfolio"
	CustomCardsKey = "user_custom_cards"
)

var (
	// ErrUnknownVariant is returned when adding a card that is neither in the
	// catalog nor a custom card.
	ErrUnknownVariant = errors.New("unknown variant")
	// ErrReadOnly is returned by mutations of a read-only session.
	ErrReadOnly = errors.New("session is read-only")
)

// Store persists whole blobs by key.
//
// Load must return an error wrapping fs.ErrNotExist for a key that was never
// saved.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// MutationKind names a Session mutation.
type MutationKind int

const (
	Added MutationKind = iota
	Removed
	Cleared
	Created
	Deleted
	Healed
)

func (k MutationKind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Cleared:
		return "cleared"
	case Created:
		return "created"
	case Deleted:
		return "deleted"
	case Healed:
		return "healed"
	}
	return "unknown"
}

// Mutation is passed to the OnMutate hook after every successful mutation.
type Mutation struct {
	Kind MutationKind
	ID   string // Variant ID, empty for Cleared and Healed.
}

// Options configure a Session. The zero value is valid.
type Options struct {
	Logger    *slog.Logger   // defaults to slog.Default().
	Converter *Converter     // defaults to DefaultRate, target currency "PHP".
	OnMutate  func(Mutation) // called synchronously after each persisted mutation.
	ReadOnly  bool           // never write to the Store, mutations fail.
	CacheSize int            // number of memoized filter results, default 64.
}

// Session is the collection of a single user over a catalog snapshot.
//
// It owns the two mutable values, the portfolio and the custom cards, and
// persists each mutation before returning. A Session is not safe for
// concurrent use.
type Session struct {
	catalog  *Catalog
	merged   *Catalog
	registry *Registry
	owned    Portfolio
	query    Query
	healing  Healing

	store    Store
	conv     Converter
	log      *slog.Logger
	onMutate func(Mutation)
	readOnly bool
	cache    *lru.Cache
}

// Open loads the user's blobs from store and heals the portfolio against the
// catalog. Absent or corrupt blobs are treated as empty. When healing changed
// the portfolio it is saved back.
func Open(ctx context.Context, catalog *Catalog, store Store, opts Options) (*Session, error) {
	s := &Session{
		catalog:  catalog,
		query:    DefaultQuery(),
		store:    store,
		log:      opts.Logger,
		onMutate: opts.OnMutate,
		readOnly: opts.ReadOnly,
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if opts.Converter != nil {
		s.conv = *opts.Converter
	} else {
		s.conv = NewConverter(DefaultRate, "PHP")
	}
	size := opts.CacheSize
	if size <= 0 {
		size = 64
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("cannot create filter cache: %w", err)
	}
	s.cache = cache

	for _, id := range catalog.Duplicates() {
		s.log.Warn("duplicate variant id in catalog, keeping the first one", "id", id)
	}

	custom, err := s.loadCustomCards(ctx)
	if err != nil {
		return nil, err
	}
	s.registry = NewRegistry(custom...)
	s.merged = Merge(s.registry.List(), catalog)

	saved, err := s.loadPortfolio(ctx)
	if err != nil {
		return nil, err
	}

	s.healing = Heal(saved, s.merged)
	s.owned = s.healing.Portfolio
	for _, r := range s.healing.Resolutions {
		if r.Method == Unresolved {
			s.log.Warn("portfolio entry matches no card, keeping it", "id", r.From, "quantity", r.Quantity)
			continue
		}
		s.log.Info("portfolio entry re-bound", "from", r.From, "to", r.To, "method", r.Method.String(), "quantity", r.Quantity)
	}
	if s.healing.Changed && !s.readOnly {
		if err := s.savePortfolio(ctx); err != nil {
			return nil, err
		}
		s.notify(Mutation{Kind: Healed})
	}
	return s, nil
}

// load reads a blob; a missing blob is nil.
func (s *Session) load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.store.Load(ctx, key)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Debug("no saved data, starting empty", "key", key)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot load %q: %w", key, err)
	}
	return data, nil
}

func (s *Session) loadCustomCards(ctx context.Context) ([]CardVariant, error) {
	data, err := s.load(ctx, CustomCardsKey)
	if err != nil {
		return nil, err
	}
	cards, err := DecodeCustomCards(data)
	if err != nil {
		s.log.Warn("corrupt custom cards, starting empty", "key", CustomCardsKey, "error", err)
		return nil, nil
	}
	return cards, nil
}

func (s *Session) loadPortfolio(ctx context.Context) (Portfolio, error) {
	data, err := s.load(ctx, PortfolioKey)
	if err != nil {
		return nil, err
	}
	p, err := DecodePortfolio(data)
	if err != nil {
		s.log.Warn("corrupt portfolio, starting empty", "key", PortfolioKey, "error", err)
		return make(Portfolio), nil
	}
	for _, id := range p.prune() {
		s.log.Warn("dropping portfolio entry without quantity", "id", id)
	}
	return p, nil
}

func (s *Session) savePortfolio(ctx context.Context) error {
	data, err := EncodePortfolio(s.owned)
	if err != nil {
		return fmt.Errorf("cannot encode portfolio: %w", err)
	}
	if err := s.store.Save(ctx, PortfolioKey, data); err != nil {
		return fmt.Errorf("cannot save portfolio: %w", err)
	}
	return nil
}

func (s *Session) saveCustomCards(ctx context.Context, cards []CardVariant) error {
	data, err := EncodeCustomCards(cards)
	if err != nil {
		return fmt.Errorf("cannot encode custom cards: %w", err)
	}
	if err := s.store.Save(ctx, CustomCardsKey, data); err != nil {
		return fmt.Errorf("cannot save custom cards: %w", err)
	}
	return nil
}

func (s *Session) notify(m Mutation) {
	s.log.Debug("mutation", "kind", m.Kind.String(), "id", m.ID)
	if s.onMutate != nil {
		s.onMutate(m)
	}
}

// Add records one more unit of the variant id.
func (s *Session) Add(ctx context.Context, id string) error {
	if s.readOnly {
		return ErrReadOnly
	}
	if !s.merged.Has(id) {
		return fmt.Errorf("%w: %q", ErrUnknownVariant, id)
	}
	s.owned.Add(id)
	if err := s.savePortfolio(ctx); err != nil {
		return err
	}
	s.notify(Mutation{Kind: Added, ID: id})
	return nil
}

// Remove records one unit less of the variant id. Removing a card that is
// not owned does nothing.
func (s *Session) Remove(ctx context.Context, id string) error {
	if s.readOnly {
		return ErrReadOnly
	}
	if !s.owned.Remove(id) {
		return nil
	}
	if err := s.savePortfolio(ctx); err != nil {
		return err
	}
	s.notify(Mutation{Kind: Removed, ID: id})
	return nil
}

// Clear empties the portfolio.
func (s *Session) Clear(ctx context.Context) error {
	if s.readOnly {
		return ErrReadOnly
	}
	s.owned.Clear()
	if err := s.savePortfolio(ctx); err != nil {
		return err
	}
	s.notify(Mutation{Kind: Cleared})
	return nil
}

// Create registers a custom card. It is visible right away, ahead of the
// catalog cards. The session is unchanged when the card cannot be saved.
func (s *Session) Create(ctx context.Context, f CustomFields) (CardVariant, error) {
	if s.readOnly {
		return CardVariant{}, ErrReadOnly
	}
	next := s.registry.clone()
	card, err := next.Create(f)
	if err != nil {
		return CardVariant{}, err
	}
	if err := s.saveCustomCards(ctx, next.List()); err != nil {
		return CardVariant{}, err
	}
	s.customChanged(next)
	s.notify(Mutation{Kind: Created, ID: card.ID})
	return card, nil
}

// Delete removes a custom card. Owned units of that card are kept in the
// portfolio but no longer match any card. The session is unchanged when the
// deletion cannot be saved.
func (s *Session) Delete(ctx context.Context, id string) error {
	if s.readOnly {
		return ErrReadOnly
	}
	next := s.registry.clone()
	if err := next.Delete(id); err != nil {
		return err
	}
	if err := s.saveCustomCards(ctx, next.List()); err != nil {
		return err
	}
	s.customChanged(next)
	s.notify(Mutation{Kind: Deleted, ID: id})
	return nil
}

// customChanged installs r and rebuilds the merged view.
func (s *Session) customChanged(r *Registry) {
	s.registry = r
	s.merged = Merge(s.registry.List(), s.catalog)
	s.cache.Purge()
}

// SetSearch sets the search term.
func (s *Session) SetSearch(term string) { s.query.Search = term }

// SetSelectedSet selects a set, AllSets for every set.
func (s *Session) SetSelectedSet(set string) { s.query.Set = set }

// ToggleBucket shows a hidden bucket or hides a visible one.
func (s *Session) ToggleBucket(b Bucket) { s.query.Buckets = s.query.Buckets.Toggle(b) }

// SetQuery replaces the whole query.
func (s *Session) SetQuery(q Query) { s.query = q }

// Query returns the current query.
func (s *Session) Query() Query { return s.query }

// Cards returns the visible cards for the current query.
func (s *Session) Cards() []CardVariant {
	key := fmt.Sprintf("%s\x00%s\x00%d", s.query.Search, s.query.Set, s.query.Buckets)
	if v, ok := s.cache.Get(key); ok {
		return slices.Clone(v.([]CardVariant))
	}
	cards := Filter(s.merged.Variants(), s.query)
	s.cache.Add(key, cards)
	return slices.Clone(cards)
}

// Grouped returns the visible cards grouped by bucket.
func (s *Session) Grouped() []Group { return GroupByBucket(s.Cards()) }

// Holding is an owned card with its quantity and collection subtotal.
type Holding struct {
	Card     CardVariant
	Quantity int
	Subtotal int64 // Target currency, unit price rounded up then multiplied.
}

// HoldingGroup is the owned cards of a single bucket.
type HoldingGroup struct {
	Bucket   Bucket
	Holdings []Holding
}

// Collection returns the owned cards grouped by bucket, in merged order.
// Owned IDs that match no card are not part of it.
func (s *Session) Collection() []HoldingGroup {
	groups := make([]HoldingGroup, numBuckets)
	for i := range groups {
		groups[i].Bucket = Bucket(i)
	}
	for _, card := range s.merged.Variants() {
		qty, ok := s.owned[card.ID]
		if !ok {
			continue
		}
		b := card.Bucket()
		groups[b].Holdings = append(groups[b].Holdings, Holding{
			Card:     card,
			Quantity: qty,
			Subtotal: s.conv.Subtotal(card.Price, qty),
		})
	}
	return groups
}

// Summary returns the valuation of the portfolio.
func (s *Session) Summary() Summary { return s.conv.Summarize(s.owned, s.merged) }

// Sets returns the sets of every card, custom ones included, by category.
func (s *Session) Sets() []SetCategory { return OrganizeSets(s.merged.Variants()) }

// Lookup returns a card of the merged view.
func (s *Session) Lookup(id string) (CardVariant, bool) { return s.merged.Lookup(id) }

// AllCards returns the merged view: custom cards, then the catalog.
func (s *Session) AllCards() []CardVariant { return s.merged.Variants() }

// Custom returns the custom cards in creation order.
func (s *Session) Custom() []CardVariant { return s.registry.List() }

// Portfolio returns a copy of the owned quantities.
func (s *Session) Portfolio() Portfolio { return s.owned.Clone() }

// Healing returns the healing done when the session was opened.
func (s *Session) Healing() Healing { return s.healing }

// Converter returns the session's converter.
func (s *Session) Converter() Converter { return s.conv }
