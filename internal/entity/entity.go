// Package entity extracts a normalized entity set from chunk text.
package entity

import (
	"regexp"
	"sort"
	"strings"

	"github.com/deskmate-ai/deskmate/internal/domain"
)

// MinKeyLength is the minimum length of a normalized entity key. The
// source over-links common short entities (e.g. "a") by keeping every
// suffix of a capitalized phrase; this filter is the documented resolution
// of that open question (§9, SPEC_FULL.md §4.2).
const MinKeyLength = 3

var (
	capitalizedPhrase = regexp.MustCompile(`[A-Z][A-Za-z0-9]*(?:\s+[A-Z][A-Za-z0-9]*)*`)
	alphaWord         = regexp.MustCompile(`\b[A-Za-z]{4,}\b`)
)

// Extract scans the concatenated text of chunks and returns a sorted,
// deduplicated set of normalized entity keys. No high-quality NER model is
// part of this dependency set, so only the regex fallback path of §4.2
// applies: that is not a deviation, since the specification defers to NER
// only "if available".
func Extract(chunks []domain.Chunk) []string {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	// Chunks are joined with a sentence break rather than bare whitespace
	// so a capitalized phrase never runs across a chunk boundary.
	return ExtractText(strings.Join(texts, ". "))
}

// ExtractText runs entity extraction over a single block of text (used
// directly by the planner, which extracts entities from the question).
func ExtractText(text string) []string {
	var candidates []string

	for _, phrase := range capitalizedPhrase.FindAllString(text, -1) {
		candidates = append(candidates, phrase)
		parts := strings.Fields(phrase)
		for idx := 1; idx < len(parts); idx++ {
			candidates = append(candidates, strings.Join(parts[idx:], " "))
		}
	}
	candidates = append(candidates, alphaWord.FindAllString(text, -1)...)

	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		key := domain.NormalizeEntityKey(c)
		if key == "" || len(key) < MinKeyLength {
			continue
		}
		seen[key] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
