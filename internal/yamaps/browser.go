package yamaps

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/lukman83/otzyv-scrap/internal/source"
	"github.com/lukman83/otzyv-scrap/internal/stealth"
)

// textMatcher locates an element by CSS selector plus a JS regex over
// its text content. Matchers are tried in order; the first hit wins.
type textMatcher struct {
	selector string
	pattern  string
}

var consentMatchers = []textMatcher{
	{"button", `/^(Принять|Согласен|Accept)$/i`},
	{`button, [role="button"]`, `/Принять/i`},
}

var reviewsTabMatchers = []textMatcher{
	{`[role="tab"]`, `/Отзывы|Reviews/i`},
	{"a", `/Отзывы|Reviews/i`},
	{"button", `/Отзывы|Reviews/i`},
}

// The reviews markup is not contractually stable; any of these counts
// as "reviews are present".
var reviewsReadySelectors = []string{
	`[class*="business-reviews-card"]`,
	`[class*="business-reviews-card-view"]`,
	`[data-testid*="review"]`,
	`.business-review-view`,
}

// session owns one browser for the duration of a scrape. Teardown is
// unconditional: Close must run on every exit path.
type session struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page

	timeout time.Duration
	settle  time.Duration
	delay   *stealth.HumanDelay
}

// openSession launches a browser, opens the listing page in a fresh
// incognito context with a Russian locale and brings the reviews
// section into view. Only the final wait for the reviews signal may
// fail the call; consent and tab clicks are best-effort.
func (s *Scraper) openSession(ctx context.Context, url string, opts source.Options) (*session, error) {
	l := launcher.New().Headless(opts.Headless).Logger(io.Discard).Set("lang", "ru-RU")
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	sess := &session{
		launcher: l,
		browser:  browser,
		timeout:  opts.Timeout,
		settle:   s.settle,
		delay:    s.delay,
	}

	incognito, err := browser.Incognito()
	if err != nil {
		sess.Close()
		return nil, fmt.Errorf("open browsing context: %w", err)
	}

	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		sess.Close()
		return nil, fmt.Errorf("open page: %w", err)
	}
	sess.page = page

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:  1920,
		Height: 1080,
	}); err != nil {
		sess.Close()
		return nil, fmt.Errorf("set viewport: %w", err)
	}

	fp := s.fingerprints.Next()
	_ = proto.NetworkSetUserAgentOverride{
		UserAgent:      fp.UserAgent,
		AcceptLanguage: "ru-RU,ru;q=0.9,en;q=0.5",
	}.Call(page)
	_ = proto.EmulationSetLocaleOverride{Locale: "ru-RU"}.Call(page)

	// The page keeps loading asynchronously long after navigation, so
	// wait only for the initial document parse.
	timed := page.Timeout(opts.Timeout)
	wait := timed.WaitNavigation(proto.PageLifecycleEventNameDOMContentLoaded)
	if err := timed.Navigate(url); err != nil {
		sess.Close()
		return nil, fmt.Errorf("navigate %s: %w", url, err)
	}
	wait()

	sess.acceptCookies()
	sess.openReviewsSection()

	if err := sess.waitForReviews(); err != nil {
		sess.Close()
		return nil, err
	}

	return sess, nil
}

func (c *session) Close() {
	if c.page != nil {
		_ = c.page.Close()
	}
	_ = c.browser.Close()
	c.launcher.Cleanup()
}

// acceptCookies dismisses a consent banner if one is shown.
func (c *session) acceptCookies() bool {
	return c.clickFirst(consentMatchers, 1500*time.Millisecond)
}

// openReviewsSection activates the reviews tab/link. On some card
// layouts the reviews are already visible and no matcher hits; that is
// fine, the subsequent wait decides.
func (c *session) openReviewsSection() bool {
	return c.clickFirst(reviewsTabMatchers, 2*time.Second)
}

// waitForReviews blocks until any "reviews are present" signal appears.
// This is the one step allowed to propagate failure: without it there
// is nothing to extract.
func (c *session) waitForReviews() error {
	var lastErr error
	for _, sel := range reviewsReadySelectors {
		if _, err := c.page.Timeout(c.timeout).Element(sel); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}
	// Last resort: the "write a review" control implies the section.
	if _, err := c.page.Timeout(c.timeout).ElementR("button, a", `/Написать отзыв/i`); err == nil {
		return nil
	}
	return fmt.Errorf("reviews section did not appear: %w", lastErr)
}

// clickFirst tries matchers in order and clicks the first element that
// exists and responds within the per-matcher timeout.
func (c *session) clickFirst(matchers []textMatcher, timeout time.Duration) bool {
	for _, m := range matchers {
		el, err := c.page.Timeout(timeout).ElementR(m.selector, m.pattern)
		if err != nil {
			continue
		}
		if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
			continue
		}
		return true
	}
	return false
}

// screenshot saves a diagnostic screenshot. Best-effort: a failed
// full-page capture is retried once viewport-only with a shorter
// timeout, then dropped.
func (c *session) screenshot(path string) bool {
	data, err := c.page.Timeout(c.timeout).Screenshot(true, nil)
	if err != nil {
		data, err = c.page.Timeout(c.timeout / 2).Screenshot(false, nil)
		if err != nil {
			return false
		}
	}
	if dir := filepath.Dir(path); dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	return os.WriteFile(path, data, 0o644) == nil
}
