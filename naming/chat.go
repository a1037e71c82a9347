package naming

import (
	"context"
	"errors"

	"github.com/color-palette/api/client"
)

const (
	// DefaultChatURL is the base URL of an OpenAI-compatible API.
	DefaultChatURL = "https://api.openai.com/v1"

	DefaultModel = "gpt-3.5-turbo"

	// Sampling used for palette names.
	nameTemperature = 0.8
	nameMaxTokens   = 50
)

var ErrEmptyCompletion = errors.New("completion returned no choices")

// ChatMessage is a single message in a chat conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

func NewSystemMessage(content string) ChatMessage {
	return ChatMessage{Role: "system", Content: content}
}

func NewUserMessage(content string) ChatMessage {
	return ChatMessage{Role: "user", Content: content}
}

// CompletionOptions tune one completion call.
type CompletionOptions struct {
	Temperature float64
	MaxTokens   int
}

// Completer turns a conversation into free text.
type Completer interface {
	Complete(ctx context.Context, messages []ChatMessage, opts CompletionOptions) (string, error)
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

// ChatService calls POST /chat/completions on an OpenAI-compatible API.
type ChatService struct {
	client *client.Client
	model  string
}

// NewChatService builds a service authenticating with apiKey. An empty
// baseURL or model takes the defaults.
func NewChatService(baseURL, apiKey, model string) *ChatService {
	if baseURL == "" {
		baseURL = DefaultChatURL
	}
	if model == "" {
		model = DefaultModel
	}
	c := client.New(client.Options{
		BaseURL: baseURL,
		Headers: map[string]string{
			"Authorization": "Bearer " + apiKey,
			"Content-Type":  "application/json",
		},
	})
	c.OnAttempt = observeAttempt
	return &ChatService{client: c, model: model}
}

func (s *ChatService) Complete(ctx context.Context, messages []ChatMessage, opts CompletionOptions) (string, error) {
	resp, err := client.Post[chatResponse](ctx, s.client, "/chat/completions", chatRequest{
		Model:       s.model,
		Messages:    messages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}
