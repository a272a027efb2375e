package models

import "time"

// SourceYandexMaps tags reviews extracted from Yandex Maps listings.
const SourceYandexMaps = "yandex_maps"

// Review is a single customer review extracted from a listing page.
// Rating 0 means unknown; a review is considered valid only when it
// carries a rating or non-empty text.
type Review struct {
	Source string `json:"source"`
	OrgID  string `json:"org_id,omitempty"`
	OrgURL string `json:"org_url"`

	Author string     `json:"author,omitempty"`
	Rating int        `json:"rating,omitempty"` // 1..5
	Date   *time.Time `json:"date,omitempty"`   // calendar date, no time-of-day
	Text   string     `json:"text,omitempty"`

	Likes    *int `json:"likes,omitempty"`
	Dislikes *int `json:"dislikes,omitempty"`

	// Raw keeps the unprocessed extracted fields for debugging/audit.
	Raw map[string]any `json:"raw,omitempty"`
}

// Valid reports whether the review carries at least one of rating or text.
func (r Review) Valid() bool {
	return r.Rating != 0 || r.Text != ""
}
