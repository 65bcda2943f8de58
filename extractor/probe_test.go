package extractor

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nft-market/adapters"
	"nft-market/internal/types"
)

func TestProbe(t *testing.T) {
	texts := textsFor(t, types.GhostMarket, 0, map[adapters.Field]string{
		adapters.FieldName:  "Ghost",
		adapters.FieldFloor: "12.5",
	})
	opener := staticPages(map[string]map[string]string{"https://ghostmarket.io/collection/ghost/?tab=nfts": texts})

	retriever := NewRetriever(testConfig(), logrus.New(), opener)
	lines, err := retriever.Probe(context.Background(), types.GhostMarket, "ghost")
	require.NoError(t, err)

	// two variants of five fields each, on one page load
	require.Len(t, lines, 10)
	assert.Equal(t, 1, opener.opens())
	opener.assertClosedOnce(t)

	assert.Equal(t, adapters.FieldName, lines[0].Field)
	assert.Equal(t, "Ghost", lines[0].Text)
	assert.Empty(t, lines[0].Error)

	assert.Equal(t, adapters.FieldSupply, lines[1].Field)
	assert.NotEmpty(t, lines[1].Error)

	assert.Equal(t, adapters.FieldFloor, lines[3].Field)
	assert.Equal(t, "12.5", lines[3].Text)
	assert.Equal(t, 1, lines[5].Variant)
}

func TestProbe_VisitsSupplements(t *testing.T) {
	opener := staticPages(nftGeekPages(t, ""))
	retriever := NewRetriever(testConfig(), logrus.New(), opener)

	lines, err := retriever.Probe(context.Background(), types.NFTgeek, "icpunks")
	require.NoError(t, err)

	assert.Len(t, lines, 7)
	assert.Equal(t, 3, opener.opens())
}

func TestProbe_OpenFailure(t *testing.T) {
	opener := &fakeOpener{page: func(n int, url string) (map[string]string, error) {
		return nil, errors.New("chrome not found")
	}}
	retriever := NewRetriever(testConfig(), logrus.New(), opener)

	_, err := retriever.Probe(context.Background(), types.OpenSea, "azuki")
	assert.ErrorContains(t, err, "chrome not found")

	_, err = retriever.Probe(context.Background(), types.LooksRare, "azuki")
	var unsupported *types.UnsupportedMarketplaceError
	assert.True(t, errors.As(err, &unsupported))
}
