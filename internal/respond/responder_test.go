package respond

import (
	"context"
	"errors"
	"testing"

	"github.com/deskmate-ai/deskmate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	name string
	out  string
	err  error
}

func (f fakeProvider) Name() string { return f.name }
func (f fakeProvider) Generate(ctx context.Context, prompt string) (string, error) {
	return f.out, f.err
}

func TestAnswer_StubProviderIgnoresPromptContent(t *testing.T) {
	r := New(fakeProvider{name: "stub"})
	resp, err := r.Answer(context.Background(), "anything", domain.PlannerDecision{Mode: domain.ModeVector}, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultStubAnswer, resp.Answer)
}

func TestAnswer_ProviderFailureFallsBackWithPrefix(t *testing.T) {
	r := New(fakeProvider{name: "ollama", err: errors.New("connection refused")})
	resp, err := r.Answer(context.Background(), "q", domain.PlannerDecision{}, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderUnavailablePrefix+domain.DefaultStubAnswer, resp.Answer)
}

func TestAnswer_ProviderSuccessReturnsGeneratedText(t *testing.T) {
	r := New(fakeProvider{name: "ollama", out: "the answer"})
	resp, err := r.Answer(context.Background(), "q", domain.PlannerDecision{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "the answer", resp.Answer)
}

func TestAnswer_NoChunksYieldsDefaultConfidence(t *testing.T) {
	r := New(fakeProvider{name: "stub"})
	resp, err := r.Answer(context.Background(), "q", domain.PlannerDecision{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.5, resp.Confidence)
	assert.Empty(t, resp.Citations)
}

func TestAnswer_ConfidenceClampedToRange(t *testing.T) {
	r := New(fakeProvider{name: "stub"})
	chunks := []domain.RetrievedChunk{{ID: "c1", Score: -5}}
	resp, err := r.Answer(context.Background(), "q", domain.PlannerDecision{}, chunks)
	require.NoError(t, err)
	assert.LessOrEqual(t, resp.Confidence, 0.99)
	assert.GreaterOrEqual(t, resp.Confidence, 0.1)
}

func TestAnswer_CitationsCarryChunkMetadata(t *testing.T) {
	r := New(fakeProvider{name: "stub"})
	chunks := []domain.RetrievedChunk{
		{ID: "d1-0", Text: "some content", Metadata: domain.ChunkMetadata{DocID: "d1", Title: "Doc One"}, Score: 0.2},
	}
	resp, err := r.Answer(context.Background(), "q", domain.PlannerDecision{}, chunks)
	require.NoError(t, err)
	require.Len(t, resp.Citations, 1)
	assert.Equal(t, "d1", resp.Citations[0].DocID)
	assert.Equal(t, "d1-0", resp.Citations[0].ChunkID)
	assert.Equal(t, "Doc One", resp.Citations[0].Title)
}

func TestComposePrompt_EmptyContextUsesPlaceholder(t *testing.T) {
	prompt := ComposePrompt("what is up", nil)
	assert.Contains(t, prompt, "(no context available)")
	assert.Contains(t, prompt, "Question: what is up")
}

func TestComposePrompt_TruncatesLongSnippets(t *testing.T) {
	longText := ""
	for i := 0; i < SnippetMaxChars+50; i++ {
		longText += "a"
	}
	chunks := []domain.RetrievedChunk{{ID: "c1", Text: longText, Metadata: domain.ChunkMetadata{DocID: "d1"}}}
	prompt := ComposePrompt("q", chunks)
	assert.Contains(t, prompt, "…")
}

func TestTruncate_ShortStringUnchanged(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 100))
}
