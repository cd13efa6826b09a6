package usecase

import (
	"time"

	"github.com/fadilmartias/mock-interview/internal/model"
)

// InterviewerStatus is what the persona is doing from the candidate's point of view.
type InterviewerStatus string

const (
	StatusReady     InterviewerStatus = "ready"
	StatusListening InterviewerStatus = "listening"
	StatusThinking  InterviewerStatus = "thinking"
	StatusSpeaking  InterviewerStatus = "speaking"
)

// SessionSnapshot is a read-only copy of a session, safe to hold while the
// session keeps moving.
type SessionSnapshot struct {
	ID            string
	Profile       model.Profile
	State         State
	Pending       bool
	Round         model.Round
	Persona       *model.Persona
	Questions     []model.Question
	QuestionIndex int
	Evaluation    *model.Evaluation
	Emotion       string
	Draft         string
	AnsweredCount int
	Report        *model.Report
	ReportErr     error
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (s SessionSnapshot) CurrentQuestion() *model.Question {
	if s.QuestionIndex < 0 || s.QuestionIndex >= len(s.Questions) {
		return nil
	}
	q := s.Questions[s.QuestionIndex]
	return &q
}

func (s SessionSnapshot) IsLastQuestion() bool {
	return len(s.Questions) > 0 && s.QuestionIndex == len(s.Questions)-1
}

func (s SessionSnapshot) Complete() bool {
	return s.State == StateSessionComplete
}

func (s SessionSnapshot) Status() InterviewerStatus {
	switch {
	case s.Pending:
		return StatusThinking
	case s.Evaluation != nil:
		return StatusSpeaking
	case s.State == StateQuestionActive && s.Draft != "":
		return StatusListening
	default:
		return StatusReady
	}
}
