package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultGoogleBaseURL = "https://www.googleapis.com/customsearch/v1"

// GoogleCSE queries the Google Custom Search JSON API. It is the general-web
// complement to NewsAPI and tends to surface official and institutional
// pages.
type GoogleCSE struct {
	apiKey   string
	engineID string
	baseURL  string
	client   *http.Client
}

// NewGoogleCSE creates a Custom Search client
func NewGoogleCSE(apiKey, engineID, baseURL string, timeout time.Duration) *GoogleCSE {
	if baseURL == "" {
		baseURL = defaultGoogleBaseURL
	}
	return &GoogleCSE{
		apiKey:   apiKey,
		engineID: engineID,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		client:   &http.Client{Timeout: timeout},
	}
}

// Name returns the backend name
func (g *GoogleCSE) Name() string { return "google-cse" }

type googleCSEResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Search runs one query and returns up to limit hits. The API caps num at 10.
func (g *GoogleCSE) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if g.apiKey == "" || g.engineID == "" {
		return nil, fmt.Errorf("google cse key or engine id not configured")
	}
	if limit <= 0 || limit > 10 {
		limit = 5
	}

	params := url.Values{}
	params.Set("key", g.apiKey)
	params.Set("cx", g.engineID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google cse request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var payload googleCSEResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode google cse response: %w", err)
	}
	if payload.Error != nil {
		return nil, fmt.Errorf("google cse error (%d): %s", payload.Error.Code, payload.Error.Message)
	}

	out := make([]Result, 0, len(payload.Items))
	for _, item := range payload.Items {
		if item.Link == "" {
			continue
		}
		out = append(out, normalize(item.Link, item.Title, item.Snippet))
	}
	return out, nil
}
