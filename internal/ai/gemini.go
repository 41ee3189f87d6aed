package ai

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Analyzer produces a free-form analysis from a system instruction and a
// prompt. The insights service depends on this interface so tests can swap
// the remote model for a stub.
type Analyzer interface {
	Analyze(ctx context.Context, systemInstruction, prompt string) (string, error)
}

const defaultModel = "gemini-2.0-flash-001"

// Gemini is the Google Generative AI implementation. A fresh client is
// opened per request; insight queries are infrequent enough that connection
// reuse does not pay for the held resources.
type Gemini struct {
	apiKey string
	model  string
}

var _ Analyzer = (*Gemini)(nil)

func NewGemini(apiKey string) *Gemini {
	return &Gemini{apiKey: apiKey, model: defaultModel}
}

func (g *Gemini) Analyze(ctx context.Context, systemInstruction, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", fmt.Errorf("creating genai client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemInstruction)}}
	model.SetTemperature(0.7)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok && text != "" {
				return string(text), nil
			}
		}
	}
	return "", fmt.Errorf("model returned no text")
}
