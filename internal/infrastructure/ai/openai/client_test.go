package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/config"
	"github.com/YoungCoderX/Recipe-Rack/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.Config{
		AI: config.AIConfig{
			BaseURL:        baseURL,
			APIKey:         "test-key",
			Model:          "gpt-4o-mini",
			MaxTokens:      1024,
			Temperature:    0.7,
			RequestTimeout: 5 * time.Second,
		},
	}, zap.NewNop())
}

// completionBody wraps content into a chat-completions response body
func completionBody(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
		"usage": map[string]int{"prompt_tokens": 10, "completion_tokens": 50},
	})
	require.NoError(t, err)
	return body
}

func TestGenerateRecipeSuccess(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")

		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Contains(t, req.Messages[1].Content, "pancakes")

		w.Header().Set("Content-Type", "application/json")
		w.Write(completionBody(t, `{"recipeName":"Fluffy Pancakes","ingredients":["1 cup flour","2 eggs","milk"],"instructions":"1. Mix\n2. Fry"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	resp, err := client.GenerateRecipe(context.Background(), "pancakes")

	require.NoError(t, err)
	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "Fluffy Pancakes", resp.Name)
	assert.Equal(t, []string{"1 cup flour", "2 eggs", "milk"}, resp.Ingredients)
	assert.Equal(t, "gpt-4o-mini", resp.Model)
}

func TestGenerateRecipeUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.GenerateRecipe(context.Background(), "anything")

	require.Error(t, err)
	assert.Equal(t, errors.CodeExternalServiceError, errors.GetCode(err))
}

func TestGenerateRecipeMalformedReply(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"Prose", "Sorry, I can't produce JSON today."},
		{"TruncatedJSON", `{"recipeName":"Half a`},
		{"MissingName", `{"ingredients":["flour"],"instructions":"bake"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write(completionBody(t, tc.content))
			}))
			defer server.Close()

			client := newTestClient(server.URL)

			_, err := client.GenerateRecipe(context.Background(), "anything")

			require.Error(t, err)
			assert.Equal(t, errors.CodeExternalServiceError, errors.GetCode(err))
		})
	}
}

func TestGenerateRecipeFencedReply(t *testing.T) {
	// Models sometimes wrap the object in code fences despite instructions
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(completionBody(t, "```json\n{\"recipeName\":\"Wrapped\",\"ingredients\":[],\"instructions\":\"n/a\"}\n```"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	resp, err := client.GenerateRecipe(context.Background(), "anything")

	require.NoError(t, err)
	assert.Equal(t, "Wrapped", resp.Name)
}

func TestGenerateRecipeNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.GenerateRecipe(context.Background(), "anything")

	require.Error(t, err)
	assert.Equal(t, errors.CodeExternalServiceError, errors.GetCode(err))
}

func TestParseRecipePayload(t *testing.T) {
	payload, err := parseRecipePayload(`Here you go: {"recipeName":"Soup","ingredients":["water"],"instructions":"boil"} Enjoy!`)

	require.NoError(t, err)
	assert.Equal(t, "Soup", payload.RecipeName)
}
