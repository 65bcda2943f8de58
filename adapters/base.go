package adapters

import (
	"context"
	"sort"

	"nft-market/internal/types"
)

// FieldSpec locates one field on a page and optionally post-processes its text
type FieldSpec struct {
	Locator string
	Post    Transform
}

// Variant is one known page layout: a locator for every field it can read
type Variant map[Field]FieldSpec

// Page is a URL rule plus the layouts known for the page it points at
type Page struct {
	URL      func(id string) string
	Variants []Variant
}

// Strategy describes how a marketplace exposes collection statistics.
// Supplements are extra pages that only fill optional fields.
type Strategy struct {
	Marketplace types.Marketplace
	Explorer    bool
	Deprecated  bool
	Successor   types.Marketplace
	Page
	Supplements []Page
}

// Outcome is the tagged result of trying a page's variants on one loaded page
type Outcome struct {
	Draft   Draft
	Variant int
	Err     error
}

// OK reports whether a variant succeeded
func (o Outcome) OK() bool {
	return o.Err == nil
}

// TryVariants tries each variant in order on the same loaded page and stops
// at the first one whose fields all extract. When required is set, a
// variant only succeeds if its draft also validates as a full record.
func TryVariants(ctx context.Context, session types.PageSession, id string, variants []Variant, required bool) Outcome {
	if len(variants) == 0 {
		return Outcome{Variant: -1, Err: types.ErrNoVariants}
	}

	var last error
	for i, variant := range variants {
		if err := ctx.Err(); err != nil {
			return Outcome{Variant: i, Err: err}
		}

		draft, err := NewRecordBuilder(ctx, session, id).Apply(variant).Draft()
		if err == nil && required {
			_, err = draft.Build()
		}
		if err == nil {
			return Outcome{Draft: draft, Variant: i}
		}
		last = err
	}

	return Outcome{Variant: len(variants) - 1, Err: last}
}

// Table maps marketplace identifiers to their strategies. It is read-only after construction.
type Table struct {
	strategies map[types.Marketplace]Strategy
}

// NewTable creates a table from the given strategies
func NewTable(strategies ...Strategy) *Table {
	t := &Table{strategies: make(map[types.Marketplace]Strategy, len(strategies))}
	for _, s := range strategies {
		t.strategies[s.Marketplace] = s
	}
	return t
}

// DefaultTable returns the table of every built-in marketplace strategy
func DefaultTable() *Table {
	return NewTable(
		openSea(),
		tofuNFT(),
		pancakeSwap(),
		rarible(),
		ghostMarket(),
		cryptocom(),
		gem(),
		nfTrade(),
		solanart(),
		magicEden(),
		xanalia(),
		coinbase(),
		niftyGateway(),
		nftGeek(),
		icScan(),
		entrepot(),
		cetoSwap(),
		ccc(),
		jelly(),
		yumi(),
	)
}

// Resolve returns the strategy registered for m
func (t *Table) Resolve(m types.Marketplace) (Strategy, error) {
	s, ok := t.strategies[m]
	if !ok {
		return Strategy{}, &types.UnsupportedMarketplaceError{Marketplace: m}
	}
	return s, nil
}

// Marketplaces returns the registered identifiers in sorted order
func (t *Table) Marketplaces() []types.Marketplace {
	out := make([]types.Marketplace, 0, len(t.strategies))
	for m := range t.strategies {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
