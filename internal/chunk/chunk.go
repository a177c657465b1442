// Package chunk splits ingested text into fixed-token, overlapping windows.
package chunk

import (
	"math"
	"strings"

	"github.com/deskmate-ai/deskmate/internal/domain"
)

// ApproxTokens estimates a token count for t without a real tokenizer:
// the larger of the whitespace word count and len(t)/4 rounded up. Stable,
// deterministic, and language-agnostic (§4.1).
func ApproxTokens(t string) int {
	words := len(strings.Fields(t))
	byChars := int(math.Ceil(float64(len(t)) / 4))
	if words > byChars {
		return words
	}
	return byChars
}

// Split divides text into successive windows of chunkTokens whitespace
// tokens, each window after the first starting overlap tokens before the
// previous window's end. Requires chunkTokens > 0 and 0 <= overlap <
// chunkTokens. Empty input (after trimming) yields an empty slice.
func Split(text string, chunkTokens, overlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if chunkTokens <= 0 {
		chunkTokens = 512
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkTokens {
		overlap = chunkTokens / 2
	}

	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil
	}

	stride := chunkTokens - overlap
	var windows []string
	for start := 0; start < len(tokens); start += stride {
		end := start + chunkTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		windows = append(windows, strings.Join(tokens[start:end], " "))
		if end == len(tokens) {
			break
		}
	}
	return windows
}

// SplitChunks is Split followed by assembling each window into a
// domain.Chunk with a deterministic chunk_id and ord, per the ingestion
// coordinator's pipeline step 3 (§4.6).
func SplitChunks(docID, text string, chunkTokens, overlap int) []domain.Chunk {
	windows := Split(text, chunkTokens, overlap)
	chunks := make([]domain.Chunk, 0, len(windows))
	for ord, w := range windows {
		chunks = append(chunks, domain.Chunk{
			ChunkID: domain.NewChunkID(docID, ord),
			DocID:   docID,
			Ord:     ord,
			Text:    w,
			Tokens:  ApproxTokens(w),
		})
	}
	return chunks
}
