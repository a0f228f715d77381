// Package search discovers candidate corroborating sources for a set of
// fact-derived queries.
package search

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/mkravets/factlens/internal/source"
)

// Result is one normalized search hit
type Result struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Domain  string `json:"domain"`
}

// Client is one search backend
type Client interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}

// Multi fans each query across every configured backend. A failing backend
// contributes nothing; discovery degradation is not fatal to a run.
type Multi struct {
	clients []Client
	log     *logrus.Entry
}

// NewMulti combines the given backends
func NewMulti(clients ...Client) *Multi {
	return &Multi{
		clients: clients,
		log:     logrus.WithField("component", "search"),
	}
}

// SearchAll runs every query against every backend and returns the combined
// hits in backend-then-query order.
func (m *Multi) SearchAll(ctx context.Context, queries []string, perQuery int) []Result {
	var out []Result
	for _, c := range m.clients {
		for _, q := range queries {
			hits, err := c.Search(ctx, q, perQuery)
			if err != nil {
				m.log.WithError(err).WithFields(logrus.Fields{
					"backend": c.Name(),
					"query":   q,
				}).Warn("search backend failed")
				continue
			}
			out = append(out, hits...)
		}
	}
	return out
}

func normalize(rawURL, title, snippet string) Result {
	return Result{
		URL:     rawURL,
		Title:   title,
		Snippet: snippet,
		Domain:  source.Domain(rawURL),
	}
}
