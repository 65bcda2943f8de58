package utils

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
	"nft-market/internal/types"
)

// FetchFunc returns the raw HTML of a page
type FetchFunc func(ctx context.Context, url string) ([]byte, error)

// StaticOpener opens page sessions over server-rendered HTML without running JavaScript
type StaticOpener struct {
	fetch  FetchFunc
	logger types.Logger
	close  func()
}

// NewStaticOpener creates a static opener that downloads pages over HTTP
func NewStaticOpener(config *types.Config, logger types.Logger) *StaticOpener {
	client := NewHTTPClient(config, logger)
	return &StaticOpener{
		fetch:  client.Get,
		logger: logger,
		close:  client.Close,
	}
}

// NewStaticOpenerFunc creates a static opener over an arbitrary page source
func NewStaticOpenerFunc(fetch FetchFunc, logger types.Logger) *StaticOpener {
	return &StaticOpener{
		fetch:  fetch,
		logger: logger,
	}
}

// Open downloads and parses the page at url
func (o *StaticOpener) Open(ctx context.Context, url string) (types.PageSession, error) {
	body, err := o.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to get page content: %w", err)
	}

	doc, err := htmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page %s: %w", url, err)
	}

	o.logger.Debugf("Parsed %s (%d bytes)", url, len(body))
	return &staticSession{doc: doc}, nil
}

// Close releases the underlying HTTP client, if any
func (o *StaticOpener) Close() {
	if o.close != nil {
		o.close()
	}
}

type staticSession struct {
	mu  sync.Mutex
	doc *html.Node
}

// TextAt evaluates locator against the parsed document
func (s *staticSession) TextAt(ctx context.Context, locator string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return "", types.ErrSessionClosed
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if IsXPath(locator) {
		node, err := htmlquery.Query(s.doc, locator)
		if err != nil {
			return "", fmt.Errorf("invalid xpath %s: %w", locator, err)
		}
		if node == nil {
			return "", &types.ElementNotFoundError{Locator: locator}
		}
		return strings.TrimSpace(htmlquery.InnerText(node)), nil
	}

	selection := goquery.NewDocumentFromNode(s.doc).Find(locator).First()
	if selection.Length() == 0 {
		return "", &types.ElementNotFoundError{Locator: locator}
	}
	return strings.TrimSpace(selection.Text()), nil
}

// Close drops the parsed document
func (s *staticSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = nil
	return nil
}
