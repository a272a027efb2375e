package yamaps

import (
	"net/url"
	"regexp"
	"strings"
)

// Org card URLs look like https://yandex.ru/maps/org/some-name/1754533743/;
// the long numeric segment is the organization id.
var orgIDRe = regexp.MustCompile(`/(\d{6,})/?(?:\?|$)`)

// ExtractOrgID derives the organization id from a listing URL.
// Returns "" when no id can be derived; never fails — the id is a
// best-effort enrichment, not a requirement.
func ExtractOrgID(rawURL string) string {
	if m := orgIDRe.FindStringSubmatch(rawURL); m != nil {
		return m[1]
	}

	// Fallback: sometimes the id is simply the last path segment.
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	path := strings.TrimRight(u.Path, "/")
	last := path[strings.LastIndex(path, "/")+1:]
	if last != "" && isDigits(last) {
		return last
	}
	return ""
}

// NormalizeURL trims surrounding whitespace from a listing URL.
func NormalizeURL(rawURL string) string {
	return strings.TrimSpace(rawURL)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
