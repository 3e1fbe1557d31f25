package llm

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Fixed replies of the suggestion service.
const (
	MsgUnavailable = "AI service is unavailable. Please configure your API Key."
	MsgFailed      = "Failed to get a suggestion. Please try again."
)

// Suggester answers free-text prompts. Without a client every call returns
// MsgUnavailable; model errors become MsgFailed.
type Suggester struct {
	client Client
	tier   ModelTier
	logger zerolog.Logger
}

// NewSuggester wraps client. client may be nil.
func NewSuggester(client Client, logger zerolog.Logger) *Suggester {
	return &Suggester{
		client: client,
		tier:   TierStandard,
		logger: logger.With().Str("component", "suggester").Logger(),
	}
}

// NewGeminiSuggester builds a Suggester backed by Gemini, or an unavailable
// one when apiKey is empty.
func NewGeminiSuggester(ctx context.Context, config *Config, apiKey string, logger zerolog.Logger) (*Suggester, error) {
	if apiKey == "" {
		logger.Warn().Msg("no Gemini API key configured, AI suggestions are disabled")
		return NewSuggester(nil, logger), nil
	}
	client, err := NewGeminiClient(ctx, config, apiKey)
	if err != nil {
		return nil, err
	}
	return NewSuggester(client, logger), nil
}

// Available reports whether a model client is configured.
func (s *Suggester) Available() bool {
	return s.client != nil
}

// Suggest returns a suggestion for prompt. It never fails; problems are
// reported through the fixed messages.
func (s *Suggester) Suggest(ctx context.Context, prompt string) string {
	if s.client == nil {
		return MsgUnavailable
	}
	text, err := s.client.GenerateContent(ctx, strings.TrimSpace(prompt), s.tier)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch AI suggestion")
		return MsgFailed
	}
	return CleanSuggestion(text)
}

// Close releases the underlying client.
func (s *Suggester) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
