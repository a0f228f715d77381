// Package source handles candidate-source classification, deduplication and
// the relevance gate.
package source

import (
	"net/url"
	"strings"

	"github.com/mkravets/factlens/internal/model"
)

// Classifier assigns a SourceType to a URL from domain heuristics
type Classifier struct {
	officialSuffixes []string
	newsDomains      map[string]bool
	socialDomains    map[string]bool
	blogIndicators   []string
}

// NewClassifier creates a classifier with the built-in domain tables
func NewClassifier() *Classifier {
	return &Classifier{
		officialSuffixes: []string{".gov", ".edu", ".mil", ".int", ".ac.uk", ".gov.uk"},
		newsDomains: toSet([]string{
			"reuters.com", "apnews.com", "bbc.com", "bbc.co.uk", "cnn.com",
			"nytimes.com", "theguardian.com", "washingtonpost.com",
			"wsj.com", "bloomberg.com", "npr.org", "aljazeera.com", "ft.com",
		}),
		socialDomains: toSet([]string{
			"twitter.com", "x.com", "facebook.com", "instagram.com",
			"tiktok.com", "reddit.com", "threads.net", "linkedin.com",
		}),
		blogIndicators: []string{"blog", "wordpress", "medium.com", "substack.com", "blogspot"},
	}
}

// Classify maps a URL to a source type. Unparseable URLs and unrecognized
// domains fall back to unknown, which carries a conservative mid-table weight.
func (c *Classifier) Classify(rawURL string) model.SourceType {
	host := Domain(rawURL)
	if host == "" {
		return model.SourceUnknown
	}

	for _, suffix := range c.officialSuffixes {
		if strings.HasSuffix(host, suffix) {
			return model.SourceOfficial
		}
	}

	if matchDomain(c.newsDomains, host) {
		return model.SourceNews
	}
	if matchDomain(c.socialDomains, host) {
		return model.SourceSocial
	}

	for _, indicator := range c.blogIndicators {
		if strings.Contains(host, indicator) {
			return model.SourceBlog
		}
	}

	return model.SourceUnknown
}

// Domain extracts the lowercase registered host from a URL, without port or
// leading www.
func Domain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	host := strings.ToLower(parsed.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// matchDomain matches the host or any subdomain of a listed domain
func matchDomain(set map[string]bool, host string) bool {
	if set[host] {
		return true
	}
	for domain := range set {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

func toSet(domains []string) map[string]bool {
	set := make(map[string]bool, len(domains))
	for _, d := range domains {
		set[d] = true
	}
	return set
}
