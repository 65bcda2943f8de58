package adapters

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nft-market/internal/types"
)

// pageFor fills every locator of v with a valid value
func pageFor(v Variant) map[string]string {
	texts := map[string]string{}
	for field, spec := range v {
		switch field {
		case FieldName:
			texts[spec.Locator] = "Collection"
		default:
			texts[spec.Locator] = "7"
		}
	}
	return texts
}

func TestTryVariants_FallsBackInOrder(t *testing.T) {
	strategy := ghostMarket()
	require.Len(t, strategy.Variants, 2)

	session := &fakeSession{texts: pageFor(strategy.Variants[1])}
	outcome := TryVariants(context.Background(), session, "ghost", strategy.Variants, true)

	require.True(t, outcome.OK(), "%v", outcome.Err)
	assert.Equal(t, 1, outcome.Variant)
	require.NotNil(t, outcome.Draft.Name)
	assert.Equal(t, "Collection", *outcome.Draft.Name)
}

func TestTryVariants_FirstVariantWins(t *testing.T) {
	strategy := entrepot()
	both := pageFor(strategy.Variants[0])
	for k, v := range pageFor(strategy.Variants[1]) {
		both[k] = v
	}

	outcome := TryVariants(context.Background(), &fakeSession{texts: both}, "btcflower", strategy.Variants, true)

	require.True(t, outcome.OK())
	assert.Equal(t, 0, outcome.Variant)
}

func TestTryVariants_AllFail(t *testing.T) {
	strategy := ghostMarket()
	outcome := TryVariants(context.Background(), &fakeSession{}, "ghost", strategy.Variants, true)

	require.False(t, outcome.OK())
	assert.Equal(t, 1, outcome.Variant)

	var notFound *types.ElementNotFoundError
	require.True(t, errors.As(outcome.Err, &notFound))
	assert.Equal(t, strategy.Variants[1][FieldName].Locator, notFound.Locator)
}

func TestTryVariants_RequiredValidates(t *testing.T) {
	variant := Variant{FieldName: {Locator: "h1"}}
	session := &fakeSession{texts: map[string]string{"h1": "Only a name"}}

	required := TryVariants(context.Background(), session, "x", []Variant{variant}, true)
	var invalid *types.ValidationError
	assert.True(t, errors.As(required.Err, &invalid))

	optional := TryVariants(context.Background(), session, "x", []Variant{variant}, false)
	assert.True(t, optional.OK())
}

func TestTryVariants_NoVariants(t *testing.T) {
	outcome := TryVariants(context.Background(), &fakeSession{}, "x", nil, true)
	assert.ErrorIs(t, outcome.Err, types.ErrNoVariants)
}

func TestTryVariants_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	session := &fakeSession{}
	outcome := TryVariants(ctx, session, "x", openSea().Variants, true)

	assert.ErrorIs(t, outcome.Err, context.Canceled)
	assert.Empty(t, session.lookups)
}

func TestDefaultTable_Resolve(t *testing.T) {
	table := DefaultTable()

	for _, m := range types.Marketplaces {
		strategy, err := table.Resolve(m)
		if m == types.LooksRare {
			var unsupported *types.UnsupportedMarketplaceError
			require.True(t, errors.As(err, &unsupported))
			assert.Equal(t, types.LooksRare, unsupported.Marketplace)
			continue
		}

		require.NoError(t, err, m)
		assert.Equal(t, m, strategy.Marketplace)
		assert.NotEmpty(t, strategy.Variants, m)
		assert.True(t, strings.HasPrefix(strategy.URL("abc"), "https://"), m)

		for _, v := range strategy.Variants {
			assert.Contains(t, v, FieldName, m)
			assert.Contains(t, v, FieldFloor, m)
			assert.Contains(t, v, FieldVolume, m)
		}
	}

	_, err := table.Resolve(types.Marketplace("blur"))
	var unsupported *types.UnsupportedMarketplaceError
	assert.True(t, errors.As(err, &unsupported))
}

func TestDefaultTable_Deprecated(t *testing.T) {
	table := DefaultTable()

	deprecatedSet := map[types.Marketplace]bool{
		types.Entrepot: true,
		types.CetoSwap: true,
		types.CCC:      true,
		types.Jelly:    true,
		types.YUMI:     true,
	}
	for _, m := range table.Marketplaces() {
		strategy, err := table.Resolve(m)
		require.NoError(t, err)

		assert.Equal(t, deprecatedSet[m], strategy.Deprecated, m)
		if strategy.Deprecated {
			assert.Equal(t, types.NFTgeek, strategy.Successor)
		}
	}
}

func TestDefaultTable_Explorers(t *testing.T) {
	table := DefaultTable()

	geek, err := table.Resolve(types.NFTgeek)
	require.NoError(t, err)
	assert.True(t, geek.Explorer)
	require.Len(t, geek.Supplements, 2)
	assert.Equal(t, "https://t5t44-naaaa-aaaah-qcutq-cai.raw.ic0.app/collection/dfinity/summary", geek.URL("dfinity"))
	assert.True(t, strings.HasSuffix(geek.Supplements[0].URL("dfinity"), "/holders"))
	assert.True(t, strings.HasSuffix(geek.Supplements[1].URL("dfinity"), "/transactions"))

	scan, err := table.Resolve(types.ICScan)
	require.NoError(t, err)
	assert.True(t, scan.Explorer)
}

func TestMarketplacesSorted(t *testing.T) {
	ms := DefaultTable().Marketplaces()
	assert.Len(t, ms, len(types.Marketplaces)-1)
	for i := 1; i < len(ms); i++ {
		assert.Less(t, string(ms[i-1]), string(ms[i]))
	}
}

func TestURLs(t *testing.T) {
	assert.Equal(t, "https://opensea.io/collection/azuki", openSea().URL("azuki"))
	assert.Equal(t, "https://rarible.com/collection/0xabc", rarible().URL("0xabc"))
	assert.Equal(t, "https://rarible.com/mutant/items", rarible().URL("mutant"))
	assert.Equal(t, "https://jelly.xyz/", jelly().URL("anything"))
	assert.Equal(t, "https://tppkg-ziaaa-aaaal-qatrq-cai.raw.ic0.app/market/collection-nft-list?id=abc", yumi().URL("abc"))
}

func TestParseMarketplace(t *testing.T) {
	m, err := types.ParseMarketplace(" OpenSea ")
	require.NoError(t, err)
	assert.Equal(t, types.OpenSea, m)

	_, err = types.ParseMarketplace("blur")
	var unsupported *types.UnsupportedMarketplaceError
	assert.True(t, errors.As(err, &unsupported))
}
