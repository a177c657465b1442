// Package respond composes the final prompt, calls the LM provider, and
// assembles the AskResponse, grounded on
// original_source/.../rag/answer.py's Responder.
package respond

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/deskmate-ai/deskmate/internal/domain"
	"github.com/deskmate-ai/deskmate/internal/provider/lm"
)

// SnippetMaxChars bounds the citation snippet length. The reference
// implementation leaves snippets untruncated; spec.md §4.10 requires a
// bounded citation payload, so this Go implementation truncates (recorded
// in DESIGN.md).
const SnippetMaxChars = 240

// Responder composes prompts and generates answers.
type Responder struct {
	Provider lm.Provider
}

// New constructs a Responder.
func New(p lm.Provider) *Responder {
	return &Responder{Provider: p}
}

// ComposePrompt builds the prompt sent to the language model: a fixed
// system header, a context block of cited chunks, and the question.
func ComposePrompt(question string, chunks []domain.RetrievedChunk) string {
	const header = "You are DeskMate, a helpful service desk copilot.\n" +
		"Use ONLY the provided context to answer.\n" +
		"Cite supporting evidence with [doc_id:chunk_id] tags that already exist in the context."

	contextBlock := "(no context available)"
	if len(chunks) > 0 {
		lines := make([]string, 0, len(chunks))
		for _, c := range chunks {
			title := c.Metadata.Title
			if title == "" {
				title = c.Metadata.DocID
			}
			snippet := truncate(strings.ReplaceAll(strings.TrimSpace(c.Text), "\n", " "), SnippetMaxChars)
			lines = append(lines, fmt.Sprintf("[%s:%s] %s: %s", c.Metadata.DocID, c.ID, title, snippet))
		}
		contextBlock = strings.Join(lines, "\n")
	}

	return fmt.Sprintf("%s\n\nContext:\n%s\n\nQuestion: %s\nAnswer:", header, contextBlock, strings.TrimSpace(question))
}

// Answer generates the final AskResponse for a question given its
// retrieved chunks and planner decision. A stub provider is used
// directly; any other provider's failure is caught and downgraded to a
// prefixed stub answer rather than surfaced as a 5xx (§4.10, §7).
func (r *Responder) Answer(ctx context.Context, question string, decision domain.PlannerDecision, chunks []domain.RetrievedChunk) (domain.AskResponse, error) {
	started := time.Now()
	prompt := ComposePrompt(question, chunks)

	providerName := r.Provider.Name()
	var answerText string
	if providerName == "stub" {
		answerText = domain.DefaultStubAnswer
	} else {
		out, err := r.Provider.Generate(ctx, prompt)
		if err != nil {
			log.Printf("respond: provider %s failed, using stub fallback: %v", providerName, err)
			answerText = domain.ProviderUnavailablePrefix + domain.DefaultStubAnswer
		} else {
			answerText = out
		}
	}

	citations := make([]domain.Citation, 0, len(chunks))
	var scores []float32
	for _, c := range chunks {
		citations = append(citations, domain.Citation{
			DocID:   c.Metadata.DocID,
			ChunkID: c.ID,
			Score:   c.Score,
			Title:   c.Metadata.Title,
			Snippet: truncate(c.Text, SnippetMaxChars),
		})
		scores = append(scores, c.Score)
	}

	return domain.AskResponse{
		Answer:     answerText,
		Citations:  citations,
		Planner:    decision,
		LatencyMS:  int64(time.Since(started) / time.Millisecond),
		Provider:   providerName,
		Confidence: confidenceFromScores(scores),
		Question:   question,
	}, nil
}

func confidenceFromScores(scores []float32) float64 {
	if len(scores) == 0 {
		return 0.5
	}
	var sum float64
	for _, s := range scores {
		sum += float64(s)
	}
	mean := sum / float64(len(scores))
	confidence := 1.0 / (1.0 + mean)
	if confidence < 0.1 {
		return 0.1
	}
	if confidence > 0.99 {
		return 0.99
	}
	return confidence
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return s[:max-1] + "…"
}
