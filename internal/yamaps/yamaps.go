// Package yamaps extracts customer reviews from Yandex Maps
// organization listings by driving a real browser. The review list is
// virtualized — only a window of cards exists in the document at any
// time — so extraction interleaves scrolling, waiting and re-reading
// until the set of unique items stops growing.
package yamaps

import (
	"context"
	"fmt"
	"time"

	"github.com/lukman83/otzyv-scrap/internal/models"
	"github.com/lukman83/otzyv-scrap/internal/source"
	"github.com/lukman83/otzyv-scrap/internal/stealth"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout     = 45 * time.Second
	defaultSettle      = 450 * time.Millisecond
	defaultStallRounds = 6
	defaultMaxRounds   = 800
)

// Config wires the scraper's collaborators and tuning knobs. Zero
// values fall back to defaults; nil collaborators disable the
// corresponding concern.
type Config struct {
	Robots        *stealth.RobotsChecker
	Delay         *stealth.HumanDelay
	Limiter       *rate.Limiter
	Settle        time.Duration
	StallRounds   int
	MaxRounds     int
	MaxConcurrent int
}

// Scraper implements source.Scraper for Yandex Maps.
type Scraper struct {
	robots        *stealth.RobotsChecker
	delay         *stealth.HumanDelay
	limiter       *rate.Limiter
	fingerprints  *stealth.FingerprintPool
	settle        time.Duration
	stallRounds   int
	maxRounds     int
	maxConcurrent int
	now           func() time.Time
}

func NewScraper(cfg Config) *Scraper {
	s := &Scraper{
		robots:        cfg.Robots,
		delay:         cfg.Delay,
		limiter:       cfg.Limiter,
		fingerprints:  stealth.NewFingerprintPool(),
		settle:        cfg.Settle,
		stallRounds:   cfg.StallRounds,
		maxRounds:     cfg.MaxRounds,
		maxConcurrent: cfg.MaxConcurrent,
		now:           time.Now,
	}
	if s.settle <= 0 {
		s.settle = defaultSettle
	}
	if s.stallRounds <= 0 {
		s.stallRounds = defaultStallRounds
	}
	if s.maxRounds <= 0 {
		s.maxRounds = defaultMaxRounds
	}
	if s.maxConcurrent <= 0 {
		s.maxConcurrent = 2
	}
	return s
}

// Reviews scrapes all reachable reviews from one listing URL.
// A run either yields a (possibly empty) list of records or fails with
// a single error when the page could not be brought into a scrapeable
// state; partial results are not returned on hard failure.
func (s *Scraper) Reviews(ctx context.Context, url string, opts source.Options) ([]models.Review, error) {
	url = NormalizeURL(url)
	orgID := ExtractOrgID(url)
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	if s.robots != nil {
		ua := s.fingerprints.Next().UserAgent
		if allowed, err := s.robots.IsAllowed(ua, url); err == nil && !allowed {
			return nil, fmt.Errorf("blocked by robots.txt: %s", url)
		}
	}

	source.ReportProgress(ctx, fmt.Sprintf("Opening %s...", url))
	sess, err := s.openSession(ctx, url, opts)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	source.ReportProgress(ctx, "Collecting reviews...")
	col := &collector{
		limit:       opts.Limit,
		maxRounds:   s.maxRounds,
		stallRounds: s.stallRounds,
	}
	raw, err := col.run(ctx, sess)

	if opts.ScreenshotPath != "" {
		sess.screenshot(opts.ScreenshotPath)
	}
	if err != nil {
		return nil, err
	}
	source.ReportProgress(ctx, fmt.Sprintf("Collected %d raw items", len(raw)))

	return s.assembleAll(raw, url, orgID, opts.Limit), nil
}

// ReviewsAll scrapes several listings, each with its own browser
// session, bounded by the configured concurrency and rate limit.
// The per-listing limit from opts applies to each URL independently.
func (s *Scraper) ReviewsAll(ctx context.Context, urls []string, opts source.Options) ([]models.Review, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	results := make([][]models.Review, len(urls))
	for i, u := range urls {
		g.Go(func() error {
			if s.limiter != nil {
				if err := s.limiter.Wait(ctx); err != nil {
					return err
				}
			}
			reviews, err := s.Reviews(ctx, u, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", u, err)
			}
			results[i] = reviews
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []models.Review
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

// assembleAll converts raw items to records and applies the final
// dedup pass on (author, date, rating, text), re-enforcing the cap.
func (s *Scraper) assembleAll(raw []RawReview, orgURL, orgID string, limit int) []models.Review {
	now := s.now()
	seen := make(map[string]struct{})
	reviews := make([]models.Review, 0, len(raw))
	for _, it := range raw {
		rev := assembleReview(it, orgURL, orgID, now)
		key := recordKey(rev)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		reviews = append(reviews, rev)
		if limit > 0 && len(reviews) >= limit {
			break
		}
	}
	return reviews
}

// assembleReview builds a finished record from a raw item. Pure and
// total: malformed fields become absent, never errors.
func assembleReview(it RawReview, orgURL, orgID string, now time.Time) models.Review {
	rating, _ := CoerceRating(it.Rating)
	var date *time.Time
	if d, ok := CoerceDate(it.DateText, now); ok {
		date = &d
	}
	return models.Review{
		Source: models.SourceYandexMaps,
		OrgID:  orgID,
		OrgURL: orgURL,
		Author: CoerceText(it.Author),
		Rating: rating,
		Date:   date,
		Text:   CoerceText(it.Text),
		Raw: map[string]any{
			"author":    it.Author,
			"rating":    it.Rating,
			"date_text": it.DateText,
			"text":      it.Text,
		},
	}
}

func recordKey(r models.Review) string {
	date := ""
	if r.Date != nil {
		date = r.Date.Format("2006-01-02")
	}
	return fmt.Sprintf("%s|%s|%d|%s", r.Author, date, r.Rating, r.Text)
}
