package chunk

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproxTokens(t *testing.T) {
	assert.Equal(t, 0, ApproxTokens(""))
	// 13 chars, 3 words -> word count 3, ceil(13/4)=4 -> 4
	assert.Equal(t, 4, ApproxTokens("one two three"))
	// 20 chars, no spaces -> word count 1, ceil(20/4)=5 -> 5
	assert.Equal(t, 5, ApproxTokens("aaaaaaaaaaaaaaaaaaaa"))
}

func TestSplit_EmptyInput(t *testing.T) {
	assert.Nil(t, Split("", 10, 2))
	assert.Nil(t, Split("   ", 10, 2))
}

func TestSplit_Deterministic(t *testing.T) {
	text := strings.Repeat("word ", 100)
	a := Split(text, 10, 2)
	b := Split(text, 10, 2)
	assert.Equal(t, a, b)
}

func TestSplit_OverlapClamped(t *testing.T) {
	text := strings.Repeat("w ", 20)
	// overlap >= chunkTokens clamps to chunkTokens/2
	out := Split(text, 5, 5)
	require.NotEmpty(t, out)
	for _, w := range out {
		assert.LessOrEqual(t, len(strings.Fields(w)), 5)
	}
}

func TestSplit_WindowsOverlap(t *testing.T) {
	tokens := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	text := strings.Join(tokens, " ")
	out := Split(text, 4, 1)
	require.Len(t, out, 3)
	assert.Equal(t, "a b c d", out[0])
	assert.Equal(t, "d e f g", out[1])
	assert.Equal(t, "g h", out[2])
}

func TestSplitChunks_ContiguousOrdinals(t *testing.T) {
	text := strings.Repeat("word ", 50)
	chunks := SplitChunks("doc1", text, 10, 2)
	require.NotEmpty(t, chunks)
	for i, c := range chunks {
		assert.Equal(t, i, c.Ord)
		assert.Equal(t, "doc1", c.DocID)
		assert.Equal(t, "doc1-"+strconv.Itoa(i), c.ChunkID)
	}
}
