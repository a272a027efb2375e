package yamaps

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var ariaRatingRe = regexp.MustCompile(`(?i)оцен|рейтинг|rating`)

// extractFromHTML is the fallback extraction path: parse a snapshot of
// the rendered document and pull the same fields the in-page script
// would. Used when script evaluation fails mid-run.
func extractFromHTML(content string) []RawReview {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil
	}

	var items []RawReview
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClassToken(n, "business-review-view") {
			if it, ok := reviewFromNode(n); ok {
				items = append(items, it)
			}
			return // review cards do not nest
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return items
}

func reviewFromNode(n *html.Node) (RawReview, bool) {
	author := textByClass(n, "business-review-view__author-name")
	if author == "" {
		author = textByClass(n, "business-review-view__author-info")
	}

	it := RawReview{
		Author:   author,
		Rating:   ratingFromNode(n),
		DateText: textByClass(n, "business-review-view__date"),
		Text:     textByClass(n, "business-review-view__body"),
	}
	if it.Empty() {
		return RawReview{}, false
	}
	return it, true
}

// ratingFromNode reads the rating from an aria-label, accepting it only
// when the label actually references rating/score semantics.
func ratingFromNode(n *html.Node) int {
	scope := findByClass(n, "business-review-view__rating")
	if scope == nil {
		scope = n
	}
	var rating int
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if rating != 0 {
			return
		}
		if cur.Type == html.ElementNode {
			if aria := attr(cur, "aria-label"); aria != "" && ariaRatingRe.MatchString(aria) {
				if r, ok := CoerceRating(aria); ok {
					rating = r
					return
				}
			}
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(scope)
	return rating
}

func textByClass(n *html.Node, class string) string {
	el := findByClass(n, class)
	if el == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(el)
	return strings.TrimSpace(b.String())
}

func findByClass(n *html.Node, class string) *html.Node {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if found != nil {
			return
		}
		if cur.Type == html.ElementNode && cur != n && hasClassToken(cur, class) {
			found = cur
			return
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

func hasClassToken(n *html.Node, token string) bool {
	for _, f := range strings.Fields(attr(n, "class")) {
		if f == token {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
