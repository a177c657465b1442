package lm

import (
	"context"
	"testing"

	"github.com/deskmate-ai/deskmate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubProvider_ReturnsDefaultAnswer(t *testing.T) {
	p := NewStub()
	out, err := p.Generate(context.Background(), "does not matter")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultStubAnswer, out)
}

func TestStubProvider_Deterministic(t *testing.T) {
	p := NewStub()
	a, _ := p.Generate(context.Background(), "q1")
	b, _ := p.Generate(context.Background(), "q2")
	assert.Equal(t, a, b)
}

func TestAuto_FallsBackToStubWithoutNetwork(t *testing.T) {
	p := New(context.Background(), Settings{Provider: "auto", OllamaHost: "http://127.0.0.1:1"})
	assert.Equal(t, "stub", p.Name())
}
