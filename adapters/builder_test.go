package adapters

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nft-market/internal/types"
)

// fakeSession serves fixed text per locator and records every lookup
type fakeSession struct {
	texts   map[string]string
	lookups []string
	closed  int
}

func (s *fakeSession) TextAt(ctx context.Context, locator string) (string, error) {
	s.lookups = append(s.lookups, locator)
	text, ok := s.texts[locator]
	if !ok {
		return "", &types.ElementNotFoundError{Locator: locator}
	}
	return text, nil
}

func (s *fakeSession) Close() error {
	s.closed++
	return nil
}

func TestRecordBuilder_Build(t *testing.T) {
	session := &fakeSession{texts: map[string]string{
		"h1":      "Azuki",
		"listed":  "3,200",
		"owners":  "5,900",
		"floor":   "$3.45",
		"volume":  "12.3K",
		"traded":  "4",
		"ignored": "1",
	}}

	record, err := NewRecordBuilder(context.Background(), session, "azuki").
		WithName("h1", nil).
		WithListingCount("listed", nil).
		WithOwnerCount("owners", nil).
		WithFloor("floor", nil).
		WithVolume("volume", nil).
		WithDaysSinceLastTrade("traded", nil).
		Build()

	require.NoError(t, err)
	assert.Equal(t, "azuki", record.ID)
	assert.Equal(t, "Azuki", record.Name)
	assert.Nil(t, record.Supply)
	require.NotNil(t, record.ListingCount)
	assert.Equal(t, int64(3200), *record.ListingCount)
	require.NotNil(t, record.OwnerCount)
	assert.Equal(t, int64(5900), *record.OwnerCount)
	assert.InDelta(t, 3.45, record.FloorPrice, 1e-9)
	assert.InDelta(t, 12300.0, record.Volume, 1e-9)
	require.NotNil(t, record.DaysSinceLastTrade)
	assert.Equal(t, int64(4), *record.DaysSinceLastTrade)
}

func TestRecordBuilder_StopsAtFirstFailure(t *testing.T) {
	session := &fakeSession{texts: map[string]string{
		"h1":     "Azuki",
		"volume": "12.3K",
	}}

	b := NewRecordBuilder(context.Background(), session, "azuki").
		WithName("h1", nil).
		WithFloor("floor", nil).
		WithVolume("volume", nil)

	var extraction *types.FieldExtractionError
	require.True(t, errors.As(b.Err(), &extraction))
	assert.Equal(t, "azuki", extraction.ID)
	assert.Equal(t, string(FieldFloor), extraction.Field)

	var notFound *types.ElementNotFoundError
	assert.True(t, errors.As(b.Err(), &notFound))

	assert.Equal(t, []string{"h1", "floor"}, session.lookups)

	_, err := b.Build()
	assert.Equal(t, b.Err(), err)
}

func TestRecordBuilder_NormalizationFailure(t *testing.T) {
	session := &fakeSession{texts: map[string]string{"floor": "N/A"}}

	_, err := NewRecordBuilder(context.Background(), session, "x").WithFloor("floor", nil).Draft()

	var extraction *types.FieldExtractionError
	require.True(t, errors.As(err, &extraction))
	assert.Equal(t, string(FieldFloor), extraction.Field)

	var parse *types.ParseError
	assert.True(t, errors.As(err, &parse))
}

func TestRecordBuilder_PostTransformMarksAbsent(t *testing.T) {
	session := &fakeSession{texts: map[string]string{
		"h1":     "Cronic",
		"owners": "N/A",
		"floor":  "12",
		"volume": "1.2M",
	}}

	record, err := NewRecordBuilder(context.Background(), session, "cronic").
		WithName("h1", nil).
		WithOwnerCount("owners", absentIf("N/A")).
		WithFloor("floor", nil).
		WithVolume("volume", nil).
		Build()

	require.NoError(t, err)
	assert.Nil(t, record.OwnerCount)
	assert.InDelta(t, 1200000.0, record.Volume, 1e-6)
}

func TestDraft_BuildValidation(t *testing.T) {
	name := "Azuki"
	floor, volume := 1.0, 2.0
	negative := -1.0
	negativeCount := int64(-3)

	tests := []struct {
		name  string
		draft Draft
		field string
	}{
		{"missing id", Draft{Name: &name, FloorPrice: &floor, Volume: &volume}, "id"},
		{"missing name", Draft{ID: "a", FloorPrice: &floor, Volume: &volume}, "name"},
		{"missing floor", Draft{ID: "a", Name: &name, Volume: &volume}, "floor"},
		{"missing volume", Draft{ID: "a", Name: &name, FloorPrice: &floor}, "volume"},
		{"negative floor", Draft{ID: "a", Name: &name, FloorPrice: &negative, Volume: &volume}, "floor"},
		{"negative owners", Draft{ID: "a", Name: &name, FloorPrice: &floor, Volume: &volume, OwnerCount: &negativeCount}, "owner_count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.draft.Build()

			var invalid *types.ValidationError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestDraft_BuildCopiesCounts(t *testing.T) {
	name := "Azuki"
	floor, volume := 1.0, 2.0
	supply := int64(10000)

	draft := Draft{ID: "azuki", Name: &name, FloorPrice: &floor, Volume: &volume, Supply: &supply}
	record, err := draft.Build()
	require.NoError(t, err)

	supply = 1
	require.NotNil(t, record.Supply)
	assert.Equal(t, int64(10000), *record.Supply)
}

func TestDraft_MergeOptional(t *testing.T) {
	owners := int64(812)
	days := int64(3)
	listed := int64(40)

	base := Draft{ID: "geek", ListingCount: &listed}
	merged := base.MergeOptional(Draft{OwnerCount: &owners, DaysSinceLastTrade: &days})

	assert.Equal(t, &listed, merged.ListingCount)
	assert.Equal(t, &owners, merged.OwnerCount)
	assert.Equal(t, &days, merged.DaysSinceLastTrade)
	assert.Nil(t, base.OwnerCount)
}
