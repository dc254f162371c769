// Package ai implements the conversation ChatModel against the Anthropic
// Messages API.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/atlaslingo/darlingo/internal/infrastructure/config"
	"github.com/atlaslingo/darlingo/internal/usecase"
)

const defaultMaxTokens = 1024

// Client talks to the Anthropic Messages API.
type Client struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewClient builds the chat model from config.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.AI.APIKey == "" {
		return nil, errors.New("ai: api key is required")
	}
	return &Client{
		client: anthropic.NewClient(option.WithAPIKey(cfg.AI.APIKey)),
		model:  anthropic.Model(cfg.AI.Model),
	}, nil
}

var _ usecase.ChatModel = (*Client)(nil)

// Disabled is the ChatModel used when no API key is configured. Every call
// fails with a clear error instead of failing at startup.
type Disabled struct{}

func (Disabled) Reply(context.Context, string, []usecase.ChatTurn) (string, error) {
	return "", errors.New("ai: api key not configured")
}

// Reply sends one conversation turn and returns the raw model text.
func (c *Client) Reply(ctx context.Context, systemPrompt string, history []usecase.ChatTurn) (string, error) {
	messages := make([]anthropic.MessageParam, 0, len(history))
	for _, turn := range history {
		role := anthropic.MessageParamRoleAssistant
		if turn.Role == "user" {
			role = anthropic.MessageParamRoleUser
		}
		messages = append(messages, anthropic.MessageParam{
			Role:    role,
			Content: []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(turn.Content)},
		})
	}

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: defaultMaxTokens,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages:  messages,
	})
	if err != nil {
		return "", fmt.Errorf("anthropic message: %w", err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("anthropic: empty completion")
	}
	return sb.String(), nil
}
