// Package openai provides the OpenAI-compatible chat-completions client
// used for recipe generation.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/config"
	"github.com/YoungCoderX/Recipe-Rack/internal/ports/outbound"
	"github.com/YoungCoderX/Recipe-Rack/pkg/errors"
	"go.uber.org/zap"
)

const systemPrompt = `You are an expert chef and recipe developer. Create one practical, easy to follow recipe for the user's request.

CRITICAL: Respond with ONLY a valid JSON object in exactly this format, with no explanatory text or markdown around it:
{
  "recipeName": "Recipe Name",
  "ingredients": ["1 cup flour", "2 eggs"],
  "instructions": "Numbered, newline-separated preparation steps as one string"
}`

// Client implements the AIService port against an OpenAI-compatible
// chat-completions endpoint.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	cfg     *config.AIConfig
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a new client from configuration
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.AI.BaseURL, "/"),
		apiKey:  cfg.AI.APIKey,
		model:   cfg.AI.Model,
		cfg:     &cfg.AI,
		client: &http.Client{
			Timeout: cfg.AI.RequestTimeout,
		},
		logger: logger.Named("openai"),
	}
}

// Chat-completions wire structures

type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []message       `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionResponse struct {
	Choices []choice `json:"choices"`
	Usage   usage    `json:"usage"`
}

type choice struct {
	Message      message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// recipePayload is the constrained schema requested from the model
type recipePayload struct {
	RecipeName   string   `json:"recipeName"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
}

// GenerateRecipe issues one completion request and parses the constrained
// JSON reply. Failures fall into a flat set: transport/non-OK status is an
// external-service error, an unparsable body is an external-service error.
// There are no retries and no fallback content.
func (c *Client) GenerateRecipe(ctx context.Context, prompt string) (*outbound.AIRecipeResponse, error) {
	content, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, errors.NewExternalServiceError("AI provider", err)
	}

	payload, err := parseRecipePayload(content)
	if err != nil {
		c.logger.Error("Failed to parse AI response", zap.Error(err))
		return nil, errors.New(
			errors.CodeExternalServiceError,
			"AI response malformed",
			"The AI provider returned a response that could not be parsed",
		).WithCause(err)
	}

	return &outbound.AIRecipeResponse{
		Name:         payload.RecipeName,
		Ingredients:  payload.Ingredients,
		Instructions: payload.Instructions,
		Model:        c.model,
	}, nil
}

// complete performs the HTTP round trip and returns the raw message content
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := chatCompletionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: "Create a recipe for: " + prompt},
		},
		Temperature:    c.cfg.Temperature,
		MaxTokens:      c.cfg.MaxTokens,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, truncate(string(body), 512))
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	c.logger.Info("AI completion succeeded",
		zap.Int("prompt_tokens", chatResp.Usage.PromptTokens),
		zap.Int("completion_tokens", chatResp.Usage.CompletionTokens),
	)

	return chatResp.Choices[0].Message.Content, nil
}

// parseRecipePayload extracts the constrained JSON object from the model's
// reply. Models occasionally wrap the object in prose or code fences, so
// parsing starts at the outermost brace pair.
func parseRecipePayload(content string) (*recipePayload, error) {
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var payload recipePayload
	if err := json.Unmarshal([]byte(content[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse recipe JSON: %w", err)
	}

	if payload.RecipeName == "" {
		return nil, fmt.Errorf("recipe JSON missing recipeName")
	}

	return &payload, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
