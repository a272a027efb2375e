package yamaps

import (
	"context"
	"strings"
	"time"

	"github.com/go-rod/rod/lib/input"
)

var showMoreMatchers = []textMatcher{
	{"button", `/Показать.*ещ/i`},
	{`[role="button"], a`, `/Показать.*ещ/i`},
}

// scrollJS advances the scroll position of the most specific scrollable
// ancestor of the review list. The right container can sit 20+ levels
// above a review node, so we walk up and pick the ancestor with the
// largest available scroll range, falling back to the window.
const scrollJS = `() => {
  const first = document.querySelector('.business-review-view');
  if (!first) return { mode: 'none', moved: false, atBottom: true };

  let best = null;
  let cur = first;
  for (let i = 0; i < 30 && cur; i++) {
    const delta = (cur.scrollHeight || 0) - (cur.clientHeight || 0);
    if (delta > 200) {
      if (!best || delta > best.delta) best = { el: cur, delta };
    }
    cur = cur.parentElement;
  }

  if (!best) {
    window.scrollTo(0, document.body.scrollHeight);
    return { mode: 'window', moved: true, atBottom: true };
  }

  const target = best.el;
  const before = target.scrollTop || 0;
  target.scrollTop = before + Math.max(1200, target.clientHeight || 0);
  const after = target.scrollTop || 0;
  const ch = target.clientHeight || 0;
  const sh = target.scrollHeight || 0;
  return {
    mode: 'container',
    moved: after !== before,
    atBottom: (after + ch) >= (sh - 5),
  };
}`

// extractJS reads the currently rendered review nodes. The rating comes
// from an accessibility label and is only trusted when the label really
// talks about a rating/score. Nodes with neither rating nor body text
// are dropped here.
const extractJS = `() => {
  const pickText = (el) => (el && el.textContent ? el.textContent.trim() : null);
  const q = (root, sel) => root.querySelector(sel);

  const parseRating = (root) => {
    const r = q(root, '.business-review-view__rating [aria-label]') || q(root, '[aria-label]');
    if (!r) return null;
    const aria = r.getAttribute('aria-label') || '';
    if (!/оцен|рейтинг|rating/i.test(aria)) return null;
    const m = aria.match(/([1-5])/);
    return m ? parseInt(m[1], 10) : null;
  };

  const parseAuthor = (root) =>
    pickText(q(root, '.business-review-view__author-name')) ||
    pickText(q(root, '.business-review-view__author-info'));

  const out = [];
  for (const n of document.querySelectorAll('.business-review-view')) {
    const rating = parseRating(n);
    const text = pickText(q(n, '.business-review-view__body'));
    if (!rating && !text) continue;
    out.push({
      author: parseAuthor(n),
      rating,
      date_text: pickText(q(n, '.business-review-view__date')),
      text,
    });
  }
  return out;
}`

// ClickShowMore expands a collapsed review if a control is present.
func (c *session) ClickShowMore(ctx context.Context) bool {
	if !c.clickFirst(showMoreMatchers, time.Second) {
		return false
	}
	select {
	case <-time.After(250 * time.Millisecond):
	case <-ctx.Done():
	}
	return true
}

// Scroll advances the review list. Falls back to a simulated mouse
// wheel and then keyboard paging when script evaluation fails.
func (c *session) Scroll(ctx context.Context) ScrollInfo {
	obj, err := c.page.Timeout(c.timeout).Eval(scrollJS)
	if err == nil {
		return ScrollInfo{
			Mode:     obj.Value.Get("mode").Str(),
			Moved:    obj.Value.Get("moved").Bool(),
			AtBottom: obj.Value.Get("atBottom").Bool(),
		}
	}
	if err := c.page.Mouse.Scroll(0, 1800, 1); err == nil {
		return ScrollInfo{Mode: "wheel", Moved: true}
	}
	if err := c.page.Keyboard.Press(input.PageDown); err == nil {
		return ScrollInfo{Mode: "keys", Moved: true}
	}
	return ScrollInfo{Mode: "none"}
}

// Settle waits out the render catch-up delay plus profile jitter.
func (c *session) Settle(ctx context.Context) {
	d := c.settle
	if c.delay != nil {
		d += c.delay.Jitter()
	}
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}

// Extract pulls raw review items from the live document. The in-page
// script is the primary path; when evaluation fails, an HTML snapshot
// is parsed instead. Returned values are coerced immediately — the
// browser's output shape is never trusted downstream.
func (c *session) Extract(ctx context.Context) ([]RawReview, error) {
	obj, err := c.page.Timeout(c.timeout).Eval(extractJS)
	if err != nil {
		html, herr := c.page.HTML()
		if herr != nil {
			return nil, err
		}
		return extractFromHTML(html), nil
	}

	var items []RawReview
	for _, it := range obj.Value.Arr() {
		rating, _ := CoerceRating(it.Get("rating").Val())
		items = append(items, RawReview{
			Author:   strings.TrimSpace(it.Get("author").Str()),
			Rating:   rating,
			DateText: strings.TrimSpace(it.Get("date_text").Str()),
			Text:     strings.TrimSpace(it.Get("text").Str()),
		})
	}
	return items, nil
}
