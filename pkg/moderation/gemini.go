package moderation

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiClassifier implements Classifier using Google's Gemini API.
type GeminiClassifier struct {
	client *genai.Client
	model  string
}

// NewGeminiClassifier creates a Gemini-backed classifier.
func NewGeminiClassifier(ctx context.Context, apiKey, model string) (*GeminiClassifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("moderation API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiClassifier{
		client: client,
		model:  model,
	}, nil
}

// Moderate sends the submission to the model and parses its verdict.
func (c *GeminiClassifier) Moderate(ctx context.Context, input Input) (*Result, error) {
	result, err := c.client.Models.GenerateContent(ctx,
		c.model,
		genai.Text(buildPrompt(input)),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("moderation call failed: %w", err)
	}

	return parseResult(result.Text())
}
