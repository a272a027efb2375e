package source

import (
	"context"
	"time"

	"github.com/lukman83/otzyv-scrap/internal/models"
)

// Options is a per-run configuration snapshot for a review scrape.
type Options struct {
	Headless bool
	Timeout  time.Duration // per-wait timeout for page operations
	Limit    int           // max reviews to retain, 0 = unlimited

	// ScreenshotPath saves a diagnostic screenshot after collection
	// when non-empty. Best-effort.
	ScreenshotPath string
}

// Scraper extracts reviews from a listing URL on one review source.
type Scraper interface {
	Reviews(ctx context.Context, url string, opts Options) ([]models.Review, error)
}

// BatchScraper is implemented by sources that can scrape several
// listings in one call.
type BatchScraper interface {
	ReviewsAll(ctx context.Context, urls []string, opts Options) ([]models.Review, error)
}
