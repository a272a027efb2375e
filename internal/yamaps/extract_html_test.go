package yamaps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReviewHTML = `<!DOCTYPE html>
<html><body>
<div class="business-reviews-card-view">
  <div class="business-review-view _with-photos">
    <span class="business-review-view__author-name">Мария К.</span>
    <div class="business-review-view__rating">
      <span aria-label="Оценка 5 из 5"></span>
    </div>
    <span class="business-review-view__date">4 сентября 2025</span>
    <div class="business-review-view__body">Очень уютно, придём ещё.</div>
  </div>
  <div class="business-review-view">
    <span class="business-review-view__author-info">Гость</span>
    <span aria-label="рейтинг 3 из 5"></span>
    <span class="business-review-view__date">вчера</span>
  </div>
  <div class="business-review-view">
    <span class="business-review-view__author-name">Пустой</span>
    <span class="business-review-view__date">сегодня</span>
  </div>
</div>
</body></html>`

func TestExtractFromHTML(t *testing.T) {
	items := extractFromHTML(sampleReviewHTML)
	require.Len(t, items, 2, "the card with neither rating nor text is dropped")

	assert.Equal(t, "Мария К.", items[0].Author)
	assert.Equal(t, 5, items[0].Rating)
	assert.Equal(t, "4 сентября 2025", items[0].DateText)
	assert.Equal(t, "Очень уютно, придём ещё.", items[0].Text)

	assert.Equal(t, "Гость", items[1].Author)
	assert.Equal(t, 3, items[1].Rating)
	assert.Equal(t, "вчера", items[1].DateText)
	assert.Empty(t, items[1].Text)
}

func TestExtractFromHTMLIgnoresUnratedAriaLabels(t *testing.T) {
	html := `<div class="business-review-view">
	  <span aria-label="Фото 3 из 7"></span>
	  <div class="business-review-view__body">текст</div>
	</div>`

	items := extractFromHTML(html)
	require.Len(t, items, 1)
	assert.Zero(t, items[0].Rating, "aria-label without rating semantics must not be parsed")
	assert.Equal(t, "текст", items[0].Text)
}

func TestExtractFromHTMLGarbage(t *testing.T) {
	assert.Empty(t, extractFromHTML("no reviews here"))
	assert.Empty(t, extractFromHTML(""))
}
