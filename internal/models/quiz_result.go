package models

import (
	"time"

	"gorm.io/datatypes"
)

// QuizTopic tags a quiz result with its subject.
type QuizTopic string

const (
	TopicPhilosophy QuizTopic = "Filosofia"
	TopicSociology  QuizTopic = "Sociologia"
)

// QuizResult is a scored attempt recorded by the quiz-taking flow. This
// service never mutates results through its HTTP surface; rows arrive via the
// quiz.results ingest consumer.
type QuizResult struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	StudentID      uint      `json:"id_aluno" gorm:"column:id_aluno;not null;index"`
	Topic          QuizTopic `json:"tema" gorm:"column:tema;not null;size:50"`
	CorrectCount   int       `json:"acertos" gorm:"column:acertos;not null"`
	TotalQuestions int       `json:"total_perguntas" gorm:"column:total_perguntas;not null"`

	// Raw per-answer payload as delivered by the quiz flow; opaque here.
	Details datatypes.JSON `json:"detalhes,omitempty" gorm:"column:detalhes"`

	CreatedAt time.Time `json:"data_criacao" gorm:"column:data_criacao"`
}

func (QuizResult) TableName() string {
	return "quiz_resultados"
}
