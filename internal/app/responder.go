package app

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// Responder produces a natural-language answer for a query plus its
// retrieved context. Failures come back as *GenerationError; callers
// surface them and keep the conversation state as it was.
type Responder interface {
	Generate(ctx context.Context, query string, passages []Passage) (string, error)
}

// GeminiResponder answers through the Gemini API. Every call runs under a
// timeout so a hung upstream cannot stall the session's turn forever.
type GeminiResponder struct {
	client  *genai.Client
	model   string
	prompts *PromptBuilder
	timeout time.Duration
}

func NewGeminiResponder(client *genai.Client, model string, timeout time.Duration) *GeminiResponder {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GeminiResponder{
		client:  client,
		model:   model,
		prompts: NewPromptBuilder(),
		timeout: timeout,
	}
}

func (r *GeminiResponder) Generate(ctx context.Context, query string, passages []Passage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	prompt := r.prompts.BuildPrompt(query, passages)
	resp, err := r.client.Models.GenerateContent(ctx, r.model, genai.Text(prompt), nil)
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &GenerationError{Err: fmt.Errorf("empty response (check safety filters)")}
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
