package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	reply  string
	err    error
	prompt string
	tier   ModelTier
	closed bool
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, tier ModelTier) (string, error) {
	f.prompt, f.tier = prompt, tier
	return f.reply, f.err
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func TestSuggester_Unavailable(t *testing.T) {
	s := NewSuggester(nil, zerolog.Nop())

	assert.False(t, s.Available())
	assert.Equal(t, MsgUnavailable, s.Suggest(context.Background(), "improve my summary"))
	assert.NoError(t, s.Close())
}

func TestSuggester_Success(t *testing.T) {
	client := &fakeClient{reply: "\n  Results-driven engineer.  \n"}
	s := NewSuggester(client, zerolog.Nop())

	assert.True(t, s.Available())
	assert.Equal(t, "Results-driven engineer.", s.Suggest(context.Background(), "  improve my summary "))
	assert.Equal(t, "improve my summary", client.prompt)
	assert.Equal(t, TierStandard, client.tier)

	require.NoError(t, s.Close())
	assert.True(t, client.closed)
}

func TestSuggester_Failure(t *testing.T) {
	s := NewSuggester(&fakeClient{err: errors.New("quota exceeded")}, zerolog.Nop())
	assert.Equal(t, MsgFailed, s.Suggest(context.Background(), "x"))
}

func TestNewGeminiSuggester_NoKey(t *testing.T) {
	s, err := NewGeminiSuggester(context.Background(), nil, "", zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, s.Available())
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), nil, "")
	assert.ErrorContains(t, err, "API key is required")
}

func TestExtractTextFromResponse_Empty(t *testing.T) {
	_, err := extractTextFromResponse(nil)
	assert.Error(t, err)
}
