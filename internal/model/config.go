package model

import "time"

// Config is the full runtime configuration. Defaults are overridable via
// config file, FACTLENS_* environment variables, and CLI flags.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Search      SearchConfig      `yaml:"search" mapstructure:"search"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Analysis    AnalysisConfig    `yaml:"analysis" mapstructure:"analysis"`
	Scoring     ScoringConfig     `yaml:"scoring" mapstructure:"scoring"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Store       StoreConfig       `yaml:"store" mapstructure:"store"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// HTTPConfig governs all outbound article and source fetches
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	HTTPProxy    string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// SearchConfig holds credentials and limits for the search services
type SearchConfig struct {
	NewsAPIKey      string `yaml:"news_api_key" mapstructure:"news_api_key"`
	NewsBaseURL     string `yaml:"news_base_url" mapstructure:"news_base_url"`
	GoogleAPIKey    string `yaml:"google_api_key" mapstructure:"google_api_key"`
	GoogleEngineID  string `yaml:"google_engine_id" mapstructure:"google_engine_id"`
	GoogleBaseURL   string `yaml:"google_base_url" mapstructure:"google_base_url"`
	ResultsPerQuery int    `yaml:"results_per_query" mapstructure:"results_per_query"`
}

// LLMConfig selects and configures the extraction/comparison provider
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // openai, anthropic
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// AnalysisConfig bounds one analysis run
type AnalysisConfig struct {
	MaxSources    int           `yaml:"max_sources" mapstructure:"max_sources"`
	MaxQueries    int           `yaml:"max_queries" mapstructure:"max_queries"`
	SourceTimeout time.Duration `yaml:"source_timeout" mapstructure:"source_timeout"`
}

// ScoringConfig carries the reliability-weight table and the relevance gate.
// The weights are part of the scoring contract; the defaults below are the
// canonical table.
type ScoringConfig struct {
	Weights            map[string]float64 `yaml:"weights" mapstructure:"weights"`
	RelevanceThreshold float64            `yaml:"relevance_threshold" mapstructure:"relevance_threshold"`
}

// Weight returns the reliability weight for a source type, falling back to
// the unknown weight for unrecognized types.
func (c ScoringConfig) Weight(t SourceType) float64 {
	if w, ok := c.Weights[string(t)]; ok {
		return w
	}
	if w, ok := c.Weights[string(SourceUnknown)]; ok {
		return w
	}
	return 0.5
}

// ConcurrencyConfig bounds parallel per-source work
type ConcurrencyConfig struct {
	SourceWorkers  int     `yaml:"source_workers" mapstructure:"source_workers"`
	RequestsPerSec float64 `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
	RequestBurst   int     `yaml:"request_burst" mapstructure:"request_burst"`
}

// CacheConfig controls the layered fetch cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// StoreConfig locates the report history database
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// OutputConfig controls CLI rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "FactLens/0.1 (+https://github.com/mkravets/factlens)",
			MaxBodyBytes: 2_000_000,
		},
		Search: SearchConfig{
			NewsBaseURL:     "https://newsapi.org/v2",
			GoogleBaseURL:   "https://www.googleapis.com/customsearch/v1",
			ResultsPerQuery: 5,
		},
		LLM: LLMConfig{
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			Timeout:   60,
			MaxTokens: 2000,
		},
		Analysis: AnalysisConfig{
			MaxSources:    10,
			MaxQueries:    3,
			SourceTimeout: 30 * time.Second,
		},
		Scoring: ScoringConfig{
			Weights: map[string]float64{
				string(SourceOfficial): 1.0,
				string(SourceNews):     0.8,
				string(SourceBlog):     0.4,
				string(SourceSocial):   0.3,
				string(SourceUnknown):  0.5,
			},
			RelevanceThreshold: 0.4,
		},
		Concurrency: ConcurrencyConfig{
			SourceWorkers:  4,
			RequestsPerSec: 2,
			RequestBurst:   5,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".factlens-cache",
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Store: StoreConfig{
			Path: "factlens.db",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
