// Package ai wraps the external conversation model behind a small interface
// so the chat registry can be tested without network access.
package ai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Message roles mirror the chat-completion wire format.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	Role    string
	Content string
}

// ChatModel produces the next assistant turn for a conversation history.
type ChatModel interface {
	Complete(ctx context.Context, history []Message) (string, error)
}

// Client talks to an OpenAI-compatible chat-completion API.
type Client struct {
	api   *openai.Client
	model string
}

// New creates a chat client. baseURL may be empty for the default endpoint.
func New(baseURL, apiKey, modelName string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(config),
		model: modelName,
	}
}

// Complete sends the full history and returns the model's reply text.
func (c *Client) Complete(ctx context.Context, history []Message) (string, error) {
	chatMsgs := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, m := range history {
		role := openai.ChatMessageRoleUser
		switch m.Role {
		case RoleSystem:
			role = openai.ChatMessageRoleSystem
		case RoleAssistant:
			role = openai.ChatMessageRoleAssistant
		}
		chatMsgs = append(chatMsgs, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: chatMsgs,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion call: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
