package yamaps

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// No trailing \b on the Cyrillic patterns: Go's \b is an ASCII word
// boundary and never matches after a Cyrillic letter.
var (
	ratingDigitRe = regexp.MustCompile(`[1-5]`)
	ruDateRe      = regexp.MustCompile(`\b(\d{1,2})\s+([а-яё]+)(?:\s+(\d{4})\b)?`)
	daysAgoRe     = regexp.MustCompile(`\b(\d+)\s+(?:дн|дня|дней)\s+назад`)
)

// Genitive month names as they appear in review dates ("4 сентября 2025").
var ruMonths = map[string]time.Month{
	"января":   time.January,
	"февраля":  time.February,
	"марта":    time.March,
	"апреля":   time.April,
	"мая":      time.May,
	"июня":     time.June,
	"июля":     time.July,
	"августа":  time.August,
	"сентября": time.September,
	"октября":  time.October,
	"ноября":   time.November,
	"декабря":  time.December,
}

// Tokens that mark a string as a relative date; they disable the
// implausible-year guard on the lenient fallback parser.
var relativeTokens = []string{"сегодня", "вчера", "дн", "нед"}

// CoerceRating extracts a 1..5 rating from a raw extracted value.
// Integral values in range are accepted directly; strings (typically
// accessibility labels like "рейтинг 3 из 5") are searched for the
// first digit in range. Returns false when no rating can be derived.
func CoerceRating(v any) (int, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case int:
		if 1 <= n && n <= 5 {
			return n, true
		}
		return 0, false
	case int64:
		return CoerceRating(int(n))
	case float64:
		if n == float64(int(n)) {
			return CoerceRating(int(n))
		}
		return 0, false
	case string:
		if m := ratingDigitRe.FindString(n); m != "" {
			r, _ := strconv.Atoi(m)
			return r, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// CoerceDate parses a freeform review date relative to the given
// reference time. It tolerates garbage by returning false rather than
// an error. The result is truncated to a calendar date in UTC.
//
// Stages, applied in order until one matches:
//  1. contamination guard — review-count labels and sort-order
//     placeholders picked up by mis-selected DOM nodes are rejected;
//  2. Russian "day month [year]" with the year defaulting to now;
//  3. relative tokens ("сегодня", "вчера", "N дней назад");
//  4. lenient fallback via dateparse, day-first, with an
//     implausible-year guard against noise parsed as a date.
func CoerceDate(s string, now time.Time) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	low := strings.ToLower(s)

	// Known contamination: "317 отзывов", "По умолчанию".
	if strings.Contains(low, "отзыв") || strings.Contains(low, "по умолчанию") {
		return time.Time{}, false
	}

	if m := ruDateRe.FindStringSubmatch(low); m != nil {
		day, _ := strconv.Atoi(m[1])
		year := now.Year()
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
		}
		if mon, ok := ruMonths[m[2]]; ok && day >= 1 && day <= 31 {
			d := time.Date(year, mon, day, 0, 0, 0, 0, time.UTC)
			// Out-of-range days normalize into the next month; treat
			// as no match and fall through.
			if d.Day() == day && d.Month() == mon {
				return d, true
			}
		}
	}

	if strings.Contains(low, "сегодня") {
		return dateOnly(now), true
	}
	if strings.Contains(low, "вчера") {
		return dateOnly(now.AddDate(0, 0, -1)), true
	}
	if m := daysAgoRe.FindStringSubmatch(low); m != nil {
		n, _ := strconv.Atoi(m[1])
		return dateOnly(now.AddDate(0, 0, -n)), true
	}

	dt, err := dateparse.ParseAny(s, dateparse.PreferMonthFirst(false))
	if err != nil {
		return time.Time{}, false
	}
	if dt.Year() < 1990 && !containsAny(low, relativeTokens) {
		return time.Time{}, false
	}
	return dateOnly(dt), true
}

// CoerceText trims a raw extracted value; empty strings become absent.
func CoerceText(v any) string {
	s, ok := v.(string)
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
