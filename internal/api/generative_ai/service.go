package generativeAI

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

type AIClient struct {
	client *genai.Client
	model  string
}

// NewAIClient creates a Gemini-backed client. The caller decides whether an
// API key is available; this constructor requires one.
func NewAIClient(ctx context.Context, apiKey string) (*AIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &AIClient{
		client: client,
		model:  defaultModel,
	}, nil
}

// GenerateContent sends a system/user instruction pair to the model and
// returns the raw response text. A single attempt, no retries.
func (ai *AIClient) GenerateContent(ctx context.Context, system, prompt string, temperature float32) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](temperature),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		},
	}
	result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return result.Text(), nil
}

// Backend is an explicitly optional generation backend. The zero value is
// unconfigured; every call site must branch on Configured() instead of
// dereferencing a possibly-nil client.
type Backend struct {
	ai *AIClient
}

func NewBackend(ai *AIClient) Backend {
	return Backend{ai: ai}
}

func UnconfiguredBackend() Backend {
	return Backend{}
}

func (b Backend) Configured() bool {
	return b.ai != nil
}

// Generate forwards to the underlying client. Callers must check
// Configured() first; calling Generate on an unconfigured backend is a
// programming error.
func (b Backend) Generate(ctx context.Context, system, prompt string, temperature float32) (string, error) {
	if b.ai == nil {
		panic("generativeAI: Generate called on unconfigured backend")
	}
	return b.ai.GenerateContent(ctx, system, prompt, temperature)
}
