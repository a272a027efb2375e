package yamaps

import (
	"context"
	"fmt"
)

// RawReview is an untyped bag of fields pulled from one rendered review
// node. It only lives inside the collection loop; a copy survives in
// the assembled record's Raw payload.
type RawReview struct {
	Author   string `json:"author"`
	Rating   int    `json:"rating"` // 0 = absent
	DateText string `json:"date_text"`
	Text     string `json:"text"`
}

// Key identifies a logically identical review across extraction rounds.
func (r RawReview) Key() string {
	return fmt.Sprintf("%s|%s|%d|%s", r.Author, r.DateText, r.Rating, r.Text)
}

// Empty reports whether the item carries neither a rating nor text and
// should be discarded at extraction time.
func (r RawReview) Empty() bool {
	return r.Rating == 0 && r.Text == ""
}

// ScrollInfo describes the outcome of one scroll attempt.
type ScrollInfo struct {
	Mode     string // "container", "window", "wheel", "keys" or "none"
	Moved    bool
	AtBottom bool
}

// pageDriver is the surface of browser operations the collector needs.
// The production implementation wraps a rod page; tests script a fake.
type pageDriver interface {
	// ClickShowMore expands a "show more" control if one is present.
	// Best-effort; the return value may be ignored.
	ClickShowMore(ctx context.Context) bool
	// Scroll advances the review list by one step.
	Scroll(ctx context.Context) ScrollInfo
	// Settle waits for asynchronous rendering to catch up.
	Settle(ctx context.Context)
	// Extract reads all currently rendered review nodes.
	Extract(ctx context.Context) ([]RawReview, error)
}

// collector drives the incremental scroll-and-extract loop over a
// virtualized review list. The list renders only a window of items at a
// time and gives no end-of-data signal, so completion is inferred from
// behavior: the loop stops once stallRounds consecutive rounds yield no
// new unique items while the container also reports being scrolled to
// the bottom. maxRounds is a runaway guard, not a normal exit.
type collector struct {
	limit       int // 0 = unlimited
	maxRounds   int
	stallRounds int
}

func (c *collector) run(ctx context.Context, d pageDriver) ([]RawReview, error) {
	var collected []RawReview
	seen := make(map[string]struct{})

	noNewRounds := 0
	atBottomRounds := 0

	for round := 0; round < c.maxRounds; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		d.ClickShowMore(ctx)

		visible, err := d.Extract(ctx)
		if err != nil {
			// Selector drift on a single round is not fatal; the round
			// simply counts as empty.
			visible = nil
		}

		added := 0
		for _, it := range visible {
			if it.Empty() {
				continue
			}
			key := it.Key()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			collected = append(collected, it)
			added++
			if c.limit > 0 && len(collected) >= c.limit {
				return collected, nil
			}
		}

		if added == 0 {
			noNewRounds++
		} else {
			noNewRounds = 0
		}

		if d.Scroll(ctx).AtBottom {
			atBottomRounds++
		} else {
			atBottomRounds = 0
		}

		d.Settle(ctx)

		if noNewRounds >= c.stallRounds && atBottomRounds >= c.stallRounds {
			return collected, nil
		}
	}

	return collected, nil
}
