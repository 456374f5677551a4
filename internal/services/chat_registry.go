package services

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/sofia-edu/admin-service/internal/ai"
)

// Tutoring persona seeded into every conversation.
const chatInstructions = `Você é um tutor de Filosofia e Sociologia. Seu objetivo não é dar respostas prontas, mas sim gerar uma conversa real que faça o usuário pensar. Aja como um parceiro de debate.

Em vez de simplesmente responder, faça perguntas de volta, desafie as premissas do usuário e incentive-o a explorar diferentes ângulos de um mesmo tema. Conduza a conversa para fora da zona de conforto, estimulando o pensamento crítico e a reflexão profunda.

Use uma linguagem natural e acessível, como se fosse uma pessoa conversando. O objetivo é que o usuário sinta que está em um diálogo genuíno, não em um interrogatório.`

const chatGreeting = "Olá! Estou aqui para bater um papo sobre filosofia e sociologia. Sobre o que você gostaria de conversar hoje?"

// Conversation is one session's dialogue with the tutor. Its mutex
// serializes forwards so replies append to history in request order.
type Conversation struct {
	mu      sync.Mutex
	history []ai.Message
}

// History returns a copy of the conversation so far.
func (c *Conversation) History() []ai.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ai.Message, len(c.history))
	copy(out, c.history)
	return out
}

// ChatRegistry owns the session-key → conversation mapping for the realtime
// chat. It is process-local state: conversations do not survive restarts and
// are discarded when the owning connection closes.
type ChatRegistry struct {
	model   ai.ChatModel
	timeout time.Duration
	logger  *slog.Logger

	mu            sync.Mutex
	conversations map[string]*Conversation
}

// NewChatRegistry creates the registry. model may be nil when the external
// service is not configured; the registry then reports itself unavailable.
func NewChatRegistry(model ai.ChatModel, timeout time.Duration, logger *slog.Logger) *ChatRegistry {
	return &ChatRegistry{
		model:         model,
		timeout:       timeout,
		logger:        logger,
		conversations: make(map[string]*Conversation),
	}
}

// Available reports whether the external conversation model is configured.
func (r *ChatRegistry) Available() bool {
	return r.model != nil
}

// Greeting is the canned opening message every conversation starts with.
func (r *ChatRegistry) Greeting() string {
	return chatGreeting
}

// GetOrCreate returns the session's conversation, creating and seeding it on
// first use.
func (r *ChatRegistry) GetOrCreate(sessionKey string) (*Conversation, error) {
	if r.model == nil {
		return nil, ErrChatUnavailable
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if conv, ok := r.conversations[sessionKey]; ok {
		return conv, nil
	}

	conv := &Conversation{
		history: []ai.Message{
			{Role: ai.RoleSystem, Content: chatInstructions},
			{Role: ai.RoleAssistant, Content: chatGreeting},
		},
	}
	r.conversations[sessionKey] = conv
	r.logger.Info("chat conversation started", "session_key", sessionKey)

	return conv, nil
}

// Forward sends user text to the external model within the session's
// conversation and returns the reply. Downstream failures come back as
// ErrChatFailed; detail stays in the server log.
func (r *ChatRegistry) Forward(ctx context.Context, sessionKey, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyMessage
	}

	conv, err := r.GetOrCreate(sessionKey)
	if err != nil {
		return "", err
	}

	conv.mu.Lock()
	defer conv.mu.Unlock()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	history := append(conv.history, ai.Message{Role: ai.RoleUser, Content: text})

	reply, err := r.model.Complete(ctx, history)
	if err != nil {
		r.logger.Error("chat completion failed", "session_key", sessionKey, "error", err)
		return "", ErrChatFailed
	}

	conv.history = append(history, ai.Message{Role: ai.RoleAssistant, Content: reply})

	return reply, nil
}

// Discard drops the session's conversation; idempotent.
func (r *ChatRegistry) Discard(sessionKey string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conversations[sessionKey]; ok {
		delete(r.conversations, sessionKey)
		r.logger.Info("chat conversation discarded", "session_key", sessionKey)
	}
}
