package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/http/httpproxy"

	"github.com/mkravets/factlens/internal/cache"
	"github.com/mkravets/factlens/internal/model"
)

// fetchSleepFunc is swapped out in tests to skip backoff delays
var fetchSleepFunc = time.Sleep

const fetchAttempts = 3

// Document is a fetched page reduced to the text the extractor needs
type Document struct {
	URL      string `json:"url"`
	FinalURL string `json:"final_url"`
	Title    string `json:"title"`
	Text     string `json:"text"`
}

// Fetcher downloads pages and reduces them to title and readable text.
// Successful fetches are cached so repeated runs against the same article
// stay off the network.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	cache      cache.Cache
}

const defaultMaxBodyBytes = 2_000_000

// NewFetcher creates a fetcher from the HTTP configuration
func NewFetcher(cfg model.HTTPConfig, store cache.Cache) *Fetcher {
	if store == nil {
		store = cache.Noop{}
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	transport := &http.Transport{
		Proxy: proxySelector(cfg),
	}
	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		cache:     store,
	}
}

// proxySelector resolves the transport proxy. Configured proxy URLs,
// including no_proxy exclusions, win over the process environment.
func proxySelector(cfg model.HTTPConfig) func(*http.Request) (*url.URL, error) {
	if cfg.HTTPProxy == "" && cfg.HTTPSProxy == "" && cfg.NoProxy == "" {
		return http.ProxyFromEnvironment
	}
	proxy := (&httpproxy.Config{
		HTTPProxy:  cfg.HTTPProxy,
		HTTPSProxy: cfg.HTTPSProxy,
		NoProxy:    cfg.NoProxy,
	}).ProxyFunc()
	return func(req *http.Request) (*url.URL, error) {
		return proxy(req.URL)
	}
}

// FetchWithRetry fetches with backoff on transient failures. Client errors
// other than 429 are not retried.
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) (*Document, error) {
	if raw, ok := f.cache.Get(cache.Key(rawURL)); ok {
		var doc Document
		if err := json.Unmarshal(raw, &doc); err == nil {
			return &doc, nil
		}
	}

	var lastErr error
	for attempt := 0; attempt < fetchAttempts; attempt++ {
		if attempt > 0 {
			fetchSleepFunc(time.Duration(1<<uint(attempt-1)) * time.Second)
		}
		doc, retryable, err := f.fetch(ctx, rawURL)
		if err == nil {
			if raw, mErr := json.Marshal(doc); mErr == nil {
				_ = f.cache.Set(cache.Key(rawURL), raw, 0)
			}
			return doc, nil
		}
		lastErr = err
		if !retryable {
			break
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) (*Document, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		retryable := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return nil, retryable, fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, true, fmt.Errorf("read body: %w", err)
	}

	title, text, err := readableText(string(body))
	if err != nil {
		return nil, false, fmt.Errorf("parse html: %w", err)
	}

	return &Document{
		URL:      rawURL,
		FinalURL: resp.Request.URL.String(),
		Title:    title,
		Text:     text,
	}, false, nil
}

// readableText walks the HTML tree and collects the title plus the visible
// body text, skipping scripts, styles and navigation chrome.
func readableText(htmlContent string) (title, text string, err error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", "", err
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "nav", "header", "footer", "aside":
				return
			case "title":
				if title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					title = strings.TrimSpace(n.FirstChild.Data)
				}
				return
			}
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				buf.WriteString(t)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return title, strings.TrimSpace(buf.String()), nil
}
