package source

import (
	"net/url"
	"strings"

	"github.com/mkravets/factlens/internal/model"
)

// DedupeKey reduces a URL to domain plus normalized path, so that the same
// document reached via http/https, www, trailing slashes or tracking query
// parameters counts once.
func DedupeKey(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return strings.ToLower(rawURL)
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	path := strings.TrimRight(parsed.EscapedPath(), "/")
	return host + path
}

// Dedupe removes candidates that resolve to the same document, keeping the
// first occurrence; search priority order is preserved. Candidates matching
// any exclude URL (the original article, already-analyzed sources) are
// dropped as well.
func Dedupe(candidates []model.Source, exclude ...string) []model.Source {
	excluded := make(map[string]bool, len(exclude))
	for _, u := range exclude {
		if u != "" {
			excluded[DedupeKey(u)] = true
		}
	}

	seen := make(map[string]bool, len(candidates))
	out := make([]model.Source, 0, len(candidates))
	for _, c := range candidates {
		if c.URL == "" {
			continue
		}
		key := DedupeKey(c.URL)
		if seen[key] || excluded[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}
