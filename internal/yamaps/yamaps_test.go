package yamaps

import (
	"testing"
	"time"

	"github.com/lukman83/otzyv-scrap/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScraper(now time.Time) *Scraper {
	s := NewScraper(Config{})
	s.now = func() time.Time { return now }
	return s
}

func TestAssembleReview(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	it := RawReview{
		Author:   "  Иван П.  ",
		Rating:   4,
		DateText: "4 сентября 2025",
		Text:     " Отличное место ",
	}

	rev := assembleReview(it, "https://yandex.ru/maps/org/x/1754533743/", "1754533743", now)

	assert.Equal(t, models.SourceYandexMaps, rev.Source)
	assert.Equal(t, "1754533743", rev.OrgID)
	assert.Equal(t, "https://yandex.ru/maps/org/x/1754533743/", rev.OrgURL)
	assert.Equal(t, "Иван П.", rev.Author)
	assert.Equal(t, 4, rev.Rating)
	require.NotNil(t, rev.Date)
	assert.Equal(t, time.Date(2025, 9, 4, 0, 0, 0, 0, time.UTC), *rev.Date)
	assert.Equal(t, "Отличное место", rev.Text)
	assert.Equal(t, "4 сентября 2025", rev.Raw["date_text"])
}

func TestAssembleReviewMalformedFieldsBecomeAbsent(t *testing.T) {
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	it := RawReview{Rating: 9, DateText: "317 отзывов", Text: "ок"}

	rev := assembleReview(it, "https://example.com", "", now)

	assert.Zero(t, rev.Rating)
	assert.Nil(t, rev.Date)
	assert.Empty(t, rev.Author)
	assert.Equal(t, "ок", rev.Text)
	assert.True(t, rev.Valid())
}

func TestAssembleReviewIdempotent(t *testing.T) {
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	it := RawReview{Author: "A", Rating: 5, DateText: "вчера", Text: "x"}

	a := assembleReview(it, "u", "1", now)
	b := assembleReview(it, "u", "1", now)
	assert.Equal(t, a, b)
}

func TestAssembleAllFinalDedup(t *testing.T) {
	s := testScraper(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	raw := []RawReview{
		{Author: "A", Rating: 5, DateText: "вчера", Text: "t"},
		{Author: "B", Rating: 3, DateText: "вчера", Text: "other"},
		{Author: "A", Rating: 5, DateText: "вчера", Text: "t"}, // duplicate
	}

	got := s.assembleAll(raw, "u", "1", 0)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Author)
	assert.Equal(t, "B", got[1].Author)
}

func TestAssembleAllEnforcesCap(t *testing.T) {
	s := testScraper(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	var raw []RawReview
	for i := 0; i < 10; i++ {
		raw = append(raw, RawReview{Author: "A", Rating: 1 + i%5, Text: "t"})
	}

	got := s.assembleAll(raw, "u", "", 4)
	assert.Len(t, got, 4)
}

func TestNewScraperDefaults(t *testing.T) {
	s := NewScraper(Config{})
	assert.Equal(t, defaultSettle, s.settle)
	assert.Equal(t, defaultStallRounds, s.stallRounds)
	assert.Equal(t, defaultMaxRounds, s.maxRounds)
	assert.Equal(t, 2, s.maxConcurrent)
}
