package source

import (
	"net/url"
	"strings"
)

// Query splits a URL-encoded query string into pairs in the order they
// appear. A leading '?' is ignored, '+' decodes to a space, and a piece that
// fails to percent-decode is kept as written. Bracket syntax in keys is left
// untouched for the path parser. Pieces with an empty key are dropped.
func Query(q string) []Pair {
	q = strings.TrimPrefix(q, "?")
	var pairs []Pair
	for part := range strings.SplitSeq(q, "&") {
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		k = unescape(k)
		if k == "" {
			continue
		}
		pairs = append(pairs, Pair{Key: k, Value: unescape(v)})
	}
	return pairs
}

func unescape(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}
