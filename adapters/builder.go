package adapters

import (
	"context"
	"fmt"

	"nft-market/internal/types"
	"nft-market/utils"
)

// Field names a CollectionRecord field that can be read from a page
type Field string

const (
	FieldName         Field = "name"
	FieldSupply       Field = "supply"
	FieldListingCount Field = "listing_count"
	FieldOwnerCount   Field = "owner_count"
	FieldFloor        Field = "floor"
	FieldVolume       Field = "volume"
	FieldLastTrade    Field = "days_since_last_trade"
)

// fieldOrder is the order in which a variant's fields are read
var fieldOrder = []Field{
	FieldName,
	FieldSupply,
	FieldListingCount,
	FieldOwnerCount,
	FieldFloor,
	FieldVolume,
	FieldLastTrade,
}

// FieldOrder returns the fields in read order
func FieldOrder() []Field {
	return append([]Field(nil), fieldOrder...)
}

// Transform post-processes raw page text before normalization.
// Returning ok=false marks the field as absent for this marketplace.
type Transform func(raw string) (value string, ok bool)

// Draft accumulates extracted fields; nil means not set.
// It is validated exactly once, by Build.
type Draft struct {
	ID                 string
	Name               *string
	Supply             *int64
	ListingCount       *int64
	OwnerCount         *int64
	FloorPrice         *float64
	Volume             *float64
	DaysSinceLastTrade *int64
}

// MergeOptional copies the optional counts that are set in other
func (d Draft) MergeOptional(other Draft) Draft {
	if other.Supply != nil {
		d.Supply = other.Supply
	}
	if other.ListingCount != nil {
		d.ListingCount = other.ListingCount
	}
	if other.OwnerCount != nil {
		d.OwnerCount = other.OwnerCount
	}
	if other.DaysSinceLastTrade != nil {
		d.DaysSinceLastTrade = other.DaysSinceLastTrade
	}
	return d
}

// Build validates the draft and returns the finished record
func (d Draft) Build() (types.CollectionRecord, error) {
	invalid := func(field Field, reason string) (types.CollectionRecord, error) {
		return types.CollectionRecord{}, &types.ValidationError{ID: d.ID, Field: string(field), Reason: reason}
	}

	if d.ID == "" {
		return invalid("id", "is missing")
	}
	if d.Name == nil {
		return invalid(FieldName, "is missing")
	}
	if d.FloorPrice == nil {
		return invalid(FieldFloor, "is missing")
	}
	if d.Volume == nil {
		return invalid(FieldVolume, "is missing")
	}
	if *d.FloorPrice < 0 {
		return invalid(FieldFloor, "is negative")
	}
	if *d.Volume < 0 {
		return invalid(FieldVolume, "is negative")
	}

	counts := map[Field]*int64{
		FieldSupply:       d.Supply,
		FieldListingCount: d.ListingCount,
		FieldOwnerCount:   d.OwnerCount,
		FieldLastTrade:    d.DaysSinceLastTrade,
	}
	for _, field := range fieldOrder {
		if v, ok := counts[field]; ok && v != nil && *v < 0 {
			return invalid(field, "is negative")
		}
	}

	return types.CollectionRecord{
		ID:                 d.ID,
		Name:               *d.Name,
		Supply:             copyInt(d.Supply),
		ListingCount:       copyInt(d.ListingCount),
		OwnerCount:         copyInt(d.OwnerCount),
		FloorPrice:         *d.FloorPrice,
		Volume:             *d.Volume,
		DaysSinceLastTrade: copyInt(d.DaysSinceLastTrade),
	}, nil
}

// RecordBuilder pulls fields from a page session into a Draft.
// The first failing setter stops the chain; later setters do not touch the page.
type RecordBuilder struct {
	ctx     context.Context
	session types.PageSession
	draft   Draft
	err     error
}

// NewRecordBuilder creates a builder reading from session for collection id
func NewRecordBuilder(ctx context.Context, session types.PageSession, id string) *RecordBuilder {
	return &RecordBuilder{
		ctx:     ctx,
		session: session,
		draft:   Draft{ID: id},
	}
}

// WithName reads the display name
func (b *RecordBuilder) WithName(locator string, post Transform) *RecordBuilder {
	return b.With(FieldName, FieldSpec{Locator: locator, Post: post})
}

// WithSupply reads the total item count
func (b *RecordBuilder) WithSupply(locator string, post Transform) *RecordBuilder {
	return b.With(FieldSupply, FieldSpec{Locator: locator, Post: post})
}

// WithListingCount reads the active listing count
func (b *RecordBuilder) WithListingCount(locator string, post Transform) *RecordBuilder {
	return b.With(FieldListingCount, FieldSpec{Locator: locator, Post: post})
}

// WithOwnerCount reads the distinct owner count
func (b *RecordBuilder) WithOwnerCount(locator string, post Transform) *RecordBuilder {
	return b.With(FieldOwnerCount, FieldSpec{Locator: locator, Post: post})
}

// WithFloor reads the floor price
func (b *RecordBuilder) WithFloor(locator string, post Transform) *RecordBuilder {
	return b.With(FieldFloor, FieldSpec{Locator: locator, Post: post})
}

// WithVolume reads the traded volume
func (b *RecordBuilder) WithVolume(locator string, post Transform) *RecordBuilder {
	return b.With(FieldVolume, FieldSpec{Locator: locator, Post: post})
}

// WithDaysSinceLastTrade reads the age of the last trade in days
func (b *RecordBuilder) WithDaysSinceLastTrade(locator string, post Transform) *RecordBuilder {
	return b.With(FieldLastTrade, FieldSpec{Locator: locator, Post: post})
}

// With reads one field described by spec
func (b *RecordBuilder) With(field Field, spec FieldSpec) *RecordBuilder {
	if b.err != nil {
		return b
	}

	if err := b.read(field, spec); err != nil {
		b.err = &types.FieldExtractionError{ID: b.draft.ID, Field: string(field), Err: err}
	}
	return b
}

// Apply reads every field of a variant in a fixed order
func (b *RecordBuilder) Apply(v Variant) *RecordBuilder {
	for _, field := range fieldOrder {
		if spec, ok := v[field]; ok {
			b.With(field, spec)
		}
	}
	return b
}

func (b *RecordBuilder) read(field Field, spec FieldSpec) error {
	raw, err := b.session.TextAt(b.ctx, spec.Locator)
	if err != nil {
		return err
	}

	value, present := raw, true
	if spec.Post != nil {
		value, present = spec.Post(raw)
	}

	switch field {
	case FieldName:
		if present {
			b.draft.Name = &value
		} else {
			b.draft.Name = nil
		}
		return nil

	case FieldFloor, FieldVolume:
		var f *float64
		if present {
			parsed, err := utils.ParseFloat(value)
			if err != nil {
				return err
			}
			f = &parsed
		}
		if field == FieldFloor {
			b.draft.FloorPrice = f
		} else {
			b.draft.Volume = f
		}
		return nil

	default:
		var n *int64
		if present {
			parsed, err := utils.ParseInt(value)
			if err != nil {
				return err
			}
			n = &parsed
		}
		switch field {
		case FieldSupply:
			b.draft.Supply = n
		case FieldListingCount:
			b.draft.ListingCount = n
		case FieldOwnerCount:
			b.draft.OwnerCount = n
		case FieldLastTrade:
			b.draft.DaysSinceLastTrade = n
		default:
			return fmt.Errorf("unknown field %q", field)
		}
		return nil
	}
}

// Err returns the first extraction failure, if any
func (b *RecordBuilder) Err() error {
	return b.err
}

// Draft returns the accumulated fields without validating them
func (b *RecordBuilder) Draft() (Draft, error) {
	if b.err != nil {
		return Draft{}, b.err
	}
	return b.draft, nil
}

// Build validates and returns the record
func (b *RecordBuilder) Build() (types.CollectionRecord, error) {
	if b.err != nil {
		return types.CollectionRecord{}, b.err
	}
	return b.draft.Build()
}

func copyInt(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
