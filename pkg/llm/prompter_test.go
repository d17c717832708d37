package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/tripscope/pkg/config"
)

func chatResponse(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	resp := openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: content}}},
	}
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(resp))
}

func TestPrompter_Question(t *testing.T) {
	var gotReq openai.ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		chatResponse(t, w, "\"How do you feel about trying the local food on this trip?\"\n")
	}))
	defer server.Close()

	prompter := NewPrompter(config.LLMConfig{
		Endpoint:    server.URL + "/v1",
		APIKey:      "test-key",
		Model:       "gpt-4o-mini",
		Temperature: 0.5,
		MaxTokens:   60,
	})

	question, err := prompter.Question(context.Background(), QuestionRequest{
		Field:       "food",
		Description: "interest in food and local cuisine",
		Values:      []string{"feature", "no_interest"},
		Known:       map[string]string{"pace": "relaxed", "mood": ""},
		LastMessage: "we want a slow trip",
	})
	require.NoError(t, err)
	assert.Equal(t, "How do you feel about trying the local food on this trip?", question)

	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	assert.InDelta(t, 0.5, gotReq.Temperature, 1e-6)
	assert.Equal(t, 60, gotReq.MaxTokens)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, gotReq.Messages[0].Role)
	assert.Equal(t, defaultSystemPrompt, gotReq.Messages[0].Content)

	user := gotReq.Messages[1].Content
	assert.Contains(t, user, "- pace: relaxed")
	assert.NotContains(t, user, "mood")
	assert.Contains(t, user, `The traveler just said: "we want a slow trip"`)
	assert.Contains(t, user, "Ask about: interest in food and local cuisine")
	assert.Contains(t, user, "Possible answers: feature, no_interest")
}

func TestPrompter_Question_CustomSystemPrompt(t *testing.T) {
	var gotReq openai.ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		chatResponse(t, w, "Wie schnell reist ihr gern?")
	}))
	defer server.Close()

	prompter := NewPrompter(config.LLMConfig{Endpoint: server.URL + "/v1", Model: "m", SystemPrompt: "Ask in German."})
	question, err := prompter.Question(context.Background(), QuestionRequest{Field: "pace"})
	require.NoError(t, err)
	assert.Equal(t, "Wie schnell reist ihr gern?", question)
	assert.Equal(t, "Ask in German.", gotReq.Messages[0].Content)
	assert.Contains(t, gotReq.Messages[1].Content, "Ask about: pace")
}

func TestPrompter_Question_EmptyAnswerRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			chatResponse(t, w, "  \n ")
			return
		}
		chatResponse(t, w, "Where would you like to stay?")
	}))
	defer server.Close()

	prompter := NewPrompter(config.LLMConfig{Endpoint: server.URL + "/v1", Model: "m"})
	question, err := prompter.Question(context.Background(), QuestionRequest{Field: "accommodation"})
	require.NoError(t, err)
	assert.Equal(t, "Where would you like to stay?", question)
	assert.Equal(t, int32(3), calls.Load())
}

func TestPrompter_Question_Errors(t *testing.T) {
	t.Run("always empty", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			chatResponse(t, w, "")
		}))
		defer server.Close()

		_, err := NewPrompter(config.LLMConfig{Endpoint: server.URL + "/v1", Model: "m"}).
			Question(context.Background(), QuestionRequest{Field: "pace"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty question after 3 attempts")
	})

	t.Run("no choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		_, err := NewPrompter(config.LLMConfig{Endpoint: server.URL + "/v1", Model: "m"}).
			Question(context.Background(), QuestionRequest{Field: "pace"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no response from llm")
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := NewPrompter(config.LLMConfig{Endpoint: server.URL + "/v1", Model: "m"}).
			Question(context.Background(), QuestionRequest{Field: "pace"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "llm request failed")
	})

	t.Run("no field", func(t *testing.T) {
		_, err := NewPrompter(config.LLMConfig{Model: "m"}).Question(context.Background(), QuestionRequest{})
		require.Error(t, err)
	})
}

func TestCleanQuestion(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{in: "What pace do you like?", want: "What pace do you like?"},
		{in: "\n\n  'Any food you avoid?'  \nextra line", want: "Any food you avoid?"},
		{in: " \n ", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanQuestion(tt.in))
	}
}

func TestFallbackQuestion(t *testing.T) {
	assert.Equal(t, "Could you tell me about the preferred travel pace?", FallbackQuestion("pace", "preferred travel pace"))
	assert.Equal(t, "Could you tell me about the age group?", FallbackQuestion("age_group", ""))
}
