package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"nft-market/internal/types"
)

// ChromeOpener opens page sessions in a fresh headless Chrome driven by chromedp
type ChromeOpener struct {
	config *types.Config
	logger types.Logger
}

// NewChromeOpener creates a new chromedp page opener
func NewChromeOpener(config *types.Config, logger types.Logger) *ChromeOpener {
	// Suppress chromedp debug logging
	log.SetOutput(io.Discard)

	return &ChromeOpener{
		config: config,
		logger: logger,
	}
}

// allocatorOptions builds the Chrome command line for one session
func (c *ChromeOpener) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.Flag("headless", c.config.Headless),
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("incognito", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("ignore-certificate-errors", true),
		chromedp.Flag("start-maximized", true),
		chromedp.Flag("proxy-bypass-list", "*"),
		chromedp.UserAgent(c.config.UserAgent),
	)

	if c.config.ProxyServer != "" {
		opts = append(opts, chromedp.ProxyServer(c.config.ProxyServer))
	} else {
		opts = append(opts, chromedp.Flag("proxy-server", "direct://"))
	}

	if w, h, ok := parseWindowSize(c.config.WindowSize); ok {
		opts = append(opts, chromedp.WindowSize(w, h))
	}

	return opts
}

// Open launches a browser, navigates to url and waits the settle time
func (c *ChromeOpener) Open(ctx context.Context, url string) (types.PageSession, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, c.allocatorOptions()...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	session := &chromeSession{
		ctx:          browserCtx,
		implicitWait: c.config.ImplicitWait,
		cancel: func() {
			cancelBrowser()
			cancelAlloc()
		},
	}

	// The first Run allocates the browser; it must not carry the navigation timeout
	if err := chromedp.Run(browserCtx); err != nil {
		session.Close()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	navCtx, cancelNav := context.WithTimeout(browserCtx, c.config.Timeout)
	defer cancelNav()

	if err := chromedp.Run(navCtx, chromedp.Navigate(url)); err != nil {
		session.Close()
		return nil, fmt.Errorf("failed to navigate to %s: %w", url, err)
	}

	c.logger.Debugf("Navigated to %s, settling for %v", url, c.config.SettleWait)

	if err := chromedp.Run(browserCtx, chromedp.Sleep(c.config.SettleWait)); err != nil {
		session.Close()
		return nil, fmt.Errorf("settle wait interrupted: %w", err)
	}

	return session, nil
}

type chromeSession struct {
	ctx          context.Context
	implicitWait time.Duration
	cancel       func()
	once         sync.Once
	closed       bool
	mu           sync.Mutex
}

// TextAt waits up to the implicit wait for the first visible match of locator
func (s *chromeSession) TextAt(ctx context.Context, locator string) (string, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return "", types.ErrSessionClosed
	}

	queryCtx, cancel := context.WithTimeout(s.ctx, s.implicitWait)
	defer cancel()

	// Propagate caller cancellation into the browser context
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	by := chromedp.ByQuery
	if IsXPath(locator) {
		by = chromedp.BySearch
	}

	var text string
	err := chromedp.Run(queryCtx, chromedp.Text(locator, &text, by, chromedp.AtLeast(1)))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return "", &types.ElementNotFoundError{Locator: locator, Err: err}
		}
		return "", fmt.Errorf("failed to get element text for %s: %w", locator, err)
	}

	return strings.TrimSpace(text), nil
}

// Close quits the browser. Subsequent calls are no-ops.
func (s *chromeSession) Close() error {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		s.cancel()
	})
	return nil
}

// IsXPath reports whether a locator is an XPath expression rather than a CSS selector
func IsXPath(locator string) bool {
	trimmed := strings.TrimSpace(locator)
	return strings.HasPrefix(trimmed, "/") || strings.HasPrefix(trimmed, "(")
}

// parseWindowSize reads "width,height"
func parseWindowSize(size string) (int, int, bool) {
	var w, h int
	if _, err := fmt.Sscanf(size, "%d,%d", &w, &h); err != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}
