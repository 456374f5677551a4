package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"gorm.io/datatypes"

	"github.com/sofia-edu/admin-service/internal/models"
	"github.com/sofia-edu/admin-service/internal/repositories"
)

// QuizResultEvent is the payload published by the quiz-taking flow for every
// finished quiz. Field names match the quiz service's wire format.
type QuizResultEvent struct {
	StudentID      uint            `json:"id_aluno"`
	Topic          string          `json:"tema"`
	CorrectCount   int             `json:"acertos"`
	TotalQuestions int             `json:"total_perguntas"`
	Details        json.RawMessage `json:"detalhes,omitempty"`
}

// QuizResultConsumer ingests quiz results from the event bus into the
// relational store. This service's HTTP surface never writes results itself.
type QuizResultConsumer struct {
	subscriber message.Subscriber
	repo       repositories.Repository
	logger     *slog.Logger
	topic      string
}

func NewQuizResultConsumer(subscriber message.Subscriber, repo repositories.Repository, logger *slog.Logger, topic string) *QuizResultConsumer {
	return &QuizResultConsumer{
		subscriber: subscriber,
		repo:       repo,
		logger:     logger,
		topic:      topic,
	}
}

// Run consumes until ctx is cancelled. Malformed payloads are logged and
// acked; redelivering them would not make them parse.
func (c *QuizResultConsumer) Run(ctx context.Context) error {
	messages, err := c.subscriber.Subscribe(ctx, c.topic)
	if err != nil {
		return err
	}

	c.logger.Info("quiz result consumer started", "topic", c.topic)

	for msg := range messages {
		c.handle(ctx, msg)
	}

	return nil
}

func (c *QuizResultConsumer) handle(ctx context.Context, msg *message.Message) {
	var event QuizResultEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		c.logger.Error("dropping malformed quiz result event", "message_id", msg.UUID, "error", err)
		msg.Ack()
		return
	}

	result := &models.QuizResult{
		StudentID:      event.StudentID,
		Topic:          models.QuizTopic(event.Topic),
		CorrectCount:   event.CorrectCount,
		TotalQuestions: event.TotalQuestions,
		Details:        datatypes.JSON(event.Details),
	}

	if err := c.repo.QuizResult().Create(ctx, result); err != nil {
		c.logger.Error("failed to persist quiz result", "message_id", msg.UUID, "student_id", event.StudentID, "error", err)
		// Nack so the broker redelivers; the store may just be down.
		msg.Nack()
		return
	}

	c.logger.Debug("quiz result ingested", "student_id", event.StudentID, "topic", event.Topic)
	msg.Ack()
}
