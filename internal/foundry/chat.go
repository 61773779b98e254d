package foundry

import (
	"context"
	"errors"
	"strings"
)

// ChatMessage is a single turn in a chat completion conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest captures the inputs for a chat completion call.
type ChatRequest struct {
	Model     string        `json:"model"`
	Messages  []ChatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

// ChatCompletion is the decoded chat completion response.
type ChatCompletion struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage Usage `json:"usage"`
}

// Content returns the first choice's message content, trimmed.
func (c *ChatCompletion) Content() string {
	if c == nil || len(c.Choices) == 0 {
		return ""
	}
	return strings.TrimSpace(c.Choices[0].Message.Content)
}

// CreateChatCompletion invokes the chat completions API once.
func (c *Client) CreateChatCompletion(ctx context.Context, req ChatRequest) (*ChatCompletion, error) {
	if strings.TrimSpace(req.Model) == "" {
		return nil, errors.New("foundry: model is required")
	}
	if len(req.Messages) == 0 {
		return nil, errors.New("foundry: at least one message is required")
	}
	var out ChatCompletion
	if err := c.postJSON(ctx, "/chat/completions", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
