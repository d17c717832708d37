package llm

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/umputun/tripscope/pkg/config"
)

// Prompter uses LLM to phrase follow-up questions about missing travel preferences
type Prompter struct {
	client    *openai.Client
	config    config.LLMConfig
	systemMsg string
}

// NewPrompter creates a new LLM prompter
func NewPrompter(cfg config.LLMConfig) *Prompter {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	if cfg.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	// use custom system prompt if provided, otherwise use default
	systemMsg := cfg.SystemPrompt
	if systemMsg == "" {
		systemMsg = defaultSystemPrompt
	}

	return &Prompter{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		systemMsg: systemMsg,
	}
}

// default system prompt for question generation
const defaultSystemPrompt = `You are a friendly travel planning assistant collecting the traveler's preferences.
Ask exactly one short, natural question (max 25 words) about the topic you are given.
Don't list the options verbatim, hint at them naturally.
Don't repeat what is already known, but you may use it to make the question personal.
Reply with the question only, no greeting, no quotes, no explanation.`

// QuestionRequest contains all parameters for a follow-up question
type QuestionRequest struct {
	Field       string            // preference field id
	Description string            // what the field is about
	Values      []string          // possible values of the field
	Known       map[string]string // preferences collected so far
	LastMessage string            // last thing the traveler said, optional
}

// Question asks the LLM for a question about the requested preference
func (p *Prompter) Question(ctx context.Context, req QuestionRequest) (string, error) {
	if req.Field == "" {
		return "", fmt.Errorf("no field provided")
	}

	prompt := p.buildPrompt(req)

	// retry up to 3 times if we get an empty answer
	for attempt := 0; attempt < 3; attempt++ {
		chatReq := openai.ChatCompletionRequest{
			Model:       p.config.Model,
			Temperature: float32(p.config.Temperature),
			MaxTokens:   p.config.MaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: p.systemMsg,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		}

		resp, err := p.client.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			return "", fmt.Errorf("llm request failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("no response from llm")
		}

		if question := cleanQuestion(resp.Choices[0].Message.Content); question != "" {
			return question, nil
		}
	}

	return "", fmt.Errorf("empty question after 3 attempts")
}

// buildPrompt creates the prompt for the LLM
func (p *Prompter) buildPrompt(req QuestionRequest) string {
	var sb strings.Builder

	known := make([]string, 0, len(req.Known))
	for k, v := range req.Known {
		if v != "" {
			known = append(known, fmt.Sprintf("- %s: %s", k, v))
		}
	}
	if len(known) > 0 {
		sort.Strings(known)
		sb.WriteString("Already known about the traveler:\n")
		sb.WriteString(strings.Join(known, "\n"))
		sb.WriteString("\n\n")
	}

	if req.LastMessage != "" {
		sb.WriteString(fmt.Sprintf("The traveler just said: %q\n\n", req.LastMessage))
	}

	sb.WriteString(fmt.Sprintf("Ask about: %s", req.Description))
	if req.Description == "" {
		sb.WriteString(strings.ReplaceAll(req.Field, "_", " "))
	}
	sb.WriteString("\n")
	if len(req.Values) > 0 {
		sb.WriteString(fmt.Sprintf("Possible answers: %s\n", strings.Join(req.Values, ", ")))
	}
	return sb.String()
}

// cleanQuestion keeps the first non-empty line and drops wrapping quotes
func cleanQuestion(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.Trim(strings.TrimSpace(line), `"'`)
		if line != "" {
			return line
		}
	}
	return ""
}

// FallbackQuestion makes a plain question from the field description, used without LLM
func FallbackQuestion(field, description string) string {
	topic := description
	if topic == "" {
		topic = strings.ReplaceAll(field, "_", " ")
	}
	return fmt.Sprintf("Could you tell me about the %s?", topic)
}
