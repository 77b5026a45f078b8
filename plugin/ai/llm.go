// Package ai provides the completion-backend client shared by the chat
// service and the floor-plan suggestion proxy.
package ai

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

// Message represents a chat message.
type Message struct {
	Role    string // system, user, assistant
	Content string
}

// LLMService is the completion backend interface. Implementations perform
// exactly one attempt per call; retry policy belongs to callers (and per
// the product contract there is none).
type LLMService interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

// LLMConfig configures the completion backend client.
type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

type llmService struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
}

// ErrNotConfigured is returned when no API key is present. Callers treat
// this the same as any other completion failure and fall back locally.
var ErrNotConfigured = errors.New("completion backend not configured")

// NewLLMService creates a new LLMService. A missing API key is not an
// error here; the returned service reports ErrNotConfigured per call so
// the caller's fallback path stays uniform.
func NewLLMService(cfg *LLMConfig) LLMService {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1024
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.7
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	svc := &llmService{
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
	}
	if cfg.APIKey != "" {
		clientConfig := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientConfig.BaseURL = cfg.BaseURL
		}
		svc.client = openai.NewClientWithConfig(clientConfig)
	} else {
		slog.Warn("no completion backend API key configured, local fallback replies only")
	}
	return svc
}

func (s *llmService) Chat(ctx context.Context, messages []Message) (string, error) {
	if s.client == nil {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       s.model,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
		Messages:    convertMessages(messages),
	}

	start := time.Now()
	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", errors.Wrap(err, "completion request failed")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty response from completion backend")
	}

	slog.Debug("completion request finished",
		"model", s.model,
		"latency_ms", time.Since(start).Milliseconds(),
		"tokens", resp.Usage.TotalTokens)

	return resp.Choices[0].Message.Content, nil
}

func convertMessages(messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		role := openai.ChatMessageRoleUser
		switch m.Role {
		case "system":
			role = openai.ChatMessageRoleSystem
		case "assistant":
			role = openai.ChatMessageRoleAssistant
		}
		out[i] = openai.ChatCompletionMessage{Role: role, Content: m.Content}
	}
	return out
}

// SystemPrompt is a helper for creating system prompts.
func SystemPrompt(content string) Message {
	return Message{Role: "system", Content: content}
}

// UserMessage is a helper for creating user messages.
func UserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}

// AssistantMessage is a helper for creating assistant messages.
func AssistantMessage(content string) Message {
	return Message{Role: "assistant", Content: content}
}
