package extractor

import (
	"context"
	"fmt"

	"nft-market/adapters"
	"nft-market/internal/types"
)

// ProbeLine is the raw lookup result of one locator
type ProbeLine struct {
	Page    string         `json:"page" yaml:"page"`
	Variant int            `json:"variant" yaml:"variant"`
	Field   adapters.Field `json:"field" yaml:"field"`
	Locator string         `json:"locator" yaml:"locator"`
	Text    string         `json:"text,omitempty" yaml:"text,omitempty"`
	Error   string         `json:"error,omitempty" yaml:"error,omitempty"`
}

// Probe loads every page of a strategy once and reports the raw text behind
// each locator of each variant. It does not retry and builds no record.
func (r *Retriever) Probe(ctx context.Context, market types.Marketplace, id string) ([]ProbeLine, error) {
	strategy, err := r.table.Resolve(market)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, types.ErrEmptyCollectionID
	}

	pages := append([]adapters.Page{strategy.Page}, strategy.Supplements...)

	var lines []ProbeLine
	for _, page := range pages {
		pageLines, err := r.probePage(ctx, page, id)
		if err != nil {
			return lines, fmt.Errorf("failed to open %s: %w", page.URL(id), err)
		}
		lines = append(lines, pageLines...)
	}
	return lines, nil
}

func (r *Retriever) probePage(ctx context.Context, page adapters.Page, id string) ([]ProbeLine, error) {
	url := page.URL(id)
	session, err := r.opener.Open(ctx, url)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	var lines []ProbeLine
	for i, variant := range page.Variants {
		for _, field := range adapters.FieldOrder() {
			spec, ok := variant[field]
			if !ok {
				continue
			}

			line := ProbeLine{Page: url, Variant: i, Field: field, Locator: spec.Locator}
			text, err := session.TextAt(ctx, spec.Locator)
			if err != nil {
				line.Error = err.Error()
			} else {
				line.Text = text
			}
			lines = append(lines, line)
		}
	}
	return lines, nil
}
