package composer

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// contentGenerator is the slice of *genai.Models the Gemini backend uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiClient struct {
	models contentGenerator
}

func NewGemini(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiClient{models: client.Models}, nil
}

func (c *GeminiClient) Name() string { return "gemini" }

func (c *GeminiClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	resp, err := c.models.GenerateContent(ctx, req.Model,
		genai.Text(req.Prompt),
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr(req.Temperature),
			TopP:            genai.Ptr(req.TopP),
			MaxOutputTokens: int32(req.MaxTokens),
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}
