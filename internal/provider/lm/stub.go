package lm

import (
	"context"

	"github.com/deskmate-ai/deskmate/internal/domain"
)

// StubProvider ignores the prompt and returns domain.DefaultStubAnswer. It
// is used by tests, by the S3/S4 scenarios, and as the responder's
// configured provider when no real backend is wired up.
type StubProvider struct{}

func NewStub() *StubProvider { return &StubProvider{} }

func (p *StubProvider) Name() string { return "stub" }

func (p *StubProvider) Generate(ctx context.Context, prompt string) (string, error) {
	return domain.DefaultStubAnswer, nil
}
