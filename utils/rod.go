package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"nft-market/internal/types"
)

// RodOpener opens page sessions in a fresh Chromium driven by rod
type RodOpener struct {
	config *types.Config
	logger types.Logger
}

// NewRodOpener creates a new rod page opener
func NewRodOpener(config *types.Config, logger types.Logger) *RodOpener {
	return &RodOpener{
		config: config,
		logger: logger,
	}
}

// newLauncher starts from the same flag set the chromedp opener uses
func (o *RodOpener) newLauncher() *launcher.Launcher {
	l := launcher.New().
		Headless(o.config.Headless).
		Set("no-sandbox").
		Set("disable-gpu").
		Set("disable-extensions").
		Set("disable-dev-shm-usage").
		Set("incognito").
		Set("ignore-certificate-errors").
		Set("start-maximized").
		Set("proxy-bypass-list", "*").
		Set("disable-blink-features", "AutomationControlled")

	if o.config.ProxyServer != "" {
		l = l.Proxy(o.config.ProxyServer)
	} else {
		l = l.Set("proxy-server", "direct://")
	}
	if o.config.WindowSize != "" {
		l = l.Set("window-size", o.config.WindowSize)
	}

	return l
}

// Open launches Chromium, navigates to url and waits the settle time
func (o *RodOpener) Open(ctx context.Context, url string) (types.PageSession, error) {
	l := o.newLauncher().Context(ctx)

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	session := &rodSession{
		launcher:     l,
		implicitWait: o.config.ImplicitWait,
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		session.Close()
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	session.browser = browser

	var page *rod.Page
	if o.config.Stealth {
		page, err = stealth.Page(browser)
	} else {
		page, err = browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	}
	if err != nil {
		session.Close()
		return nil, fmt.Errorf("open page: %w", err)
	}
	session.page = page

	if o.config.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: o.config.UserAgent}); err != nil {
			o.logger.Warnf("Failed to set user agent: %v", err)
		}
	}

	nav := page.Timeout(o.config.Timeout)
	if err := nav.Navigate(url); err != nil {
		nav.CancelTimeout()
		session.Close()
		return nil, fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	if err := nav.WaitLoad(); err != nil {
		o.logger.Warnf("Page load wait failed for %s, continuing: %v", url, err)
	}
	nav.CancelTimeout()

	o.logger.Debugf("Navigated to %s, settling for %v", url, o.config.SettleWait)

	if err := SleepContext(ctx, o.config.SettleWait); err != nil {
		session.Close()
		return nil, err
	}

	return session, nil
}

type rodSession struct {
	launcher     *launcher.Launcher
	browser      *rod.Browser
	page         *rod.Page
	implicitWait time.Duration
	mu           sync.Mutex
	closed       bool
}

// TextAt waits up to the implicit wait for the first match of locator
func (s *rodSession) TextAt(ctx context.Context, locator string) (string, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return "", types.ErrSessionClosed
	}

	page := s.page.Context(ctx).Timeout(s.implicitWait)
	defer page.CancelTimeout()

	var (
		el  *rod.Element
		err error
	)
	if IsXPath(locator) {
		el, err = page.ElementX(locator)
	} else {
		el, err = page.Element(locator)
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return "", &types.ElementNotFoundError{Locator: locator, Err: err}
		}
		return "", fmt.Errorf("failed to find element %s: %w", locator, err)
	}

	text, err := el.Text()
	if err != nil {
		return "", fmt.Errorf("failed to get element text for %s: %w", locator, err)
	}

	return strings.TrimSpace(text), nil
}

// Close quits the browser and removes its profile directory. Subsequent calls are no-ops.
func (s *rodSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	var err error
	if s.browser != nil {
		err = s.browser.Close()
	}
	s.launcher.Kill()
	s.launcher.Cleanup()
	return err
}

// SleepContext sleeps for d or until ctx is done
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
