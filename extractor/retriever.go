package extractor

import (
	"context"
	"time"

	"nft-market/adapters"
	"nft-market/internal/types"
	"nft-market/utils"
)

// Retriever fetches collection statistics from marketplace pages, reloading
// the page on failure up to the configured number of retries
type Retriever struct {
	config *types.Config
	logger types.Logger
	opener types.PageOpener
	table  *adapters.Table
	sleep  func(ctx context.Context, d time.Duration) error
}

// Option customizes a Retriever
type Option func(*Retriever)

// WithTable replaces the built-in strategy table
func WithTable(table *adapters.Table) Option {
	return func(r *Retriever) {
		r.table = table
	}
}

// WithSleep replaces the backoff sleep between attempts
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(r *Retriever) {
		r.sleep = sleep
	}
}

// NewRetriever creates a new retriever that opens pages with opener
func NewRetriever(config *types.Config, logger types.Logger, opener types.PageOpener, opts ...Option) *Retriever {
	r := &Retriever{
		config: config,
		logger: logger,
		opener: opener,
		table:  adapters.DefaultTable(),
		sleep:  utils.SleepContext,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Table returns the strategy table in use
func (r *Retriever) Table() *adapters.Table {
	return r.table
}

// Fetch returns the current statistics of collection id on market.
// It fails with the last attempt's error once every retry is spent.
func (r *Retriever) Fetch(ctx context.Context, market types.Marketplace, id string) (types.CollectionRecord, error) {
	strategy, err := r.table.Resolve(market)
	if err != nil {
		return types.CollectionRecord{}, err
	}
	if id == "" {
		return types.CollectionRecord{}, types.ErrEmptyCollectionID
	}

	if strategy.Deprecated {
		r.logger.Warnf("%s is deprecated, please use %s instead", market, strategy.Successor)
	}

	startTime := time.Now()
	total := r.config.MaxRetries + 1
	if total < 1 {
		total = 1
	}

	var lastErr error
	for attempt := 1; attempt <= total; attempt++ {
		outcome := r.load(ctx, strategy.Page, id, true)
		if outcome.OK() {
			r.logger.Debugf("%s/%s matched variant %d on attempt %d", market, id, outcome.Variant, attempt)

			draft := r.supplement(ctx, strategy, outcome.Draft)
			record, err := draft.Build()
			if err != nil {
				return types.CollectionRecord{}, err
			}

			r.logger.Infof("Fetched %s/%s in %v", market, id, time.Since(startTime))
			return record, nil
		}

		lastErr = outcome.Err
		if r.config.Verbose {
			r.logger.Warnf("An error in %q [%d/%d]: %v", id, attempt, total, lastErr)
		} else {
			r.logger.Debugf("An error in %q [%d/%d]: %v", id, attempt, total, lastErr)
		}

		if attempt == total {
			break
		}
		if err := r.sleep(ctx, r.config.RetryDelay); err != nil {
			return types.CollectionRecord{}, err
		}
	}

	return types.CollectionRecord{}, lastErr
}

// load opens one page, tries its variants and always closes the session
func (r *Retriever) load(ctx context.Context, page adapters.Page, id string, required bool) adapters.Outcome {
	url := page.URL(id)

	session, err := r.opener.Open(ctx, url)
	if err != nil {
		return adapters.Outcome{Variant: -1, Err: err}
	}
	defer func() {
		if err := session.Close(); err != nil {
			r.logger.Debugf("Failed to close session for %s: %v", url, err)
		}
	}()

	return adapters.TryVariants(ctx, session, id, page.Variants, required)
}

// supplement fills optional fields from the strategy's extra pages.
// Failures are logged and leave the draft unchanged.
func (r *Retriever) supplement(ctx context.Context, strategy adapters.Strategy, draft adapters.Draft) adapters.Draft {
	for _, page := range strategy.Supplements {
		outcome := r.load(ctx, page, draft.ID, false)
		if !outcome.OK() {
			r.logger.Warnf("Supplementary page %s failed: %v", page.URL(draft.ID), outcome.Err)
			continue
		}

		merged := draft.MergeOptional(outcome.Draft)
		if _, err := merged.Build(); err != nil {
			r.logger.Warnf("Discarding supplementary data from %s: %v", page.URL(draft.ID), err)
			continue
		}
		draft = merged
	}
	return draft
}

// Result is the outcome of one collection in a batch
type Result struct {
	Marketplace types.Marketplace       `json:"marketplace" yaml:"marketplace"`
	ID          string                  `json:"id" yaml:"id"`
	Record      *types.CollectionRecord `json:"record,omitempty" yaml:"record,omitempty"`
	Error       string                  `json:"error,omitempty" yaml:"error,omitempty"`
}

// FetchAll fetches each id in turn; one failure does not stop the batch
func (r *Retriever) FetchAll(ctx context.Context, market types.Marketplace, ids []string) []Result {
	results := make([]Result, 0, len(ids))
	for i, id := range ids {
		r.logger.Debugf("Processing collection %d/%d: %s", i+1, len(ids), id)

		result := Result{Marketplace: market, ID: id}
		record, err := r.Fetch(ctx, market, id)
		if err != nil {
			r.logger.Errorf("Failed to fetch %s/%s: %v", market, id, err)
			result.Error = err.Error()
		} else {
			result.Record = &record
		}
		results = append(results, result)

		if ctx.Err() != nil {
			break
		}
	}
	return results
}
