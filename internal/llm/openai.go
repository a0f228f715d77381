package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/mkravets/factlens/internal/model"
)

// OpenAIProvider implements Provider on OpenAI's Chat Completions API
type OpenAIProvider struct {
	client *openai.Client
	config Config
}

// NewOpenAIProvider creates an OpenAI-backed provider
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the API accepts our credentials
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	if _, err := p.client.ListModels(ctx); err != nil {
		logrus.WithError(err).Debug("openai availability check failed")
		return false
	}
	return true
}

// ExtractFacts asks the model for the article's fact hierarchy and returns
// the raw JSON payload.
func (p *OpenAIProvider) ExtractFacts(ctx context.Context, title, text string) ([]byte, error) {
	out, err := p.complete(ctx, extractionSystem, buildExtractionPrompt(title, text))
	if err != nil {
		return nil, fmt.Errorf("extract facts: %w", err)
	}
	return []byte(StripFences(out)), nil
}

// CompareFacts asks the model to judge a source hierarchy against the
// original's.
func (p *OpenAIProvider) CompareFacts(ctx context.Context, original, source model.FactHierarchy) (*Comparison, error) {
	out, err := p.complete(ctx, comparisonSystem, buildComparisonPrompt(original, source))
	if err != nil {
		return nil, fmt.Errorf("compare facts: %w", err)
	}
	return parseComparison(out)
}

func (p *OpenAIProvider) complete(ctx context.Context, system, prompt string) (string, error) {
	mdl := p.config.Model
	if mdl == "" {
		mdl = openai.GPT4oMini
	}
	maxTokens := p.config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 2000
	}

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: mdl,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.1,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
