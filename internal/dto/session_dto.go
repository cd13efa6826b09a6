package dto

import (
	"time"

	"github.com/fadilmartias/mock-interview/internal/model"
	"github.com/fadilmartias/mock-interview/internal/roster"
	"github.com/fadilmartias/mock-interview/internal/usecase"
)

type StartSessionRequest struct {
	Name            string `json:"name"`
	ExperienceLevel string `json:"experience_level"`
	TargetRole      string `json:"target_role"`
	Confidence      int    `json:"confidence"`
}

func (r StartSessionRequest) Profile() model.Profile {
	return model.Profile{
		Name:            r.Name,
		ExperienceLevel: model.ExperienceLevel(r.ExperienceLevel),
		TargetRole:      r.TargetRole,
		Confidence:      r.Confidence,
	}
}

type AnswerRequest struct {
	Answer string `json:"answer"`
}

type DraftRequest struct {
	Draft string `json:"draft"`
}

type PersonaView struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	Avatar       string   `json:"avatar"`
	Personality  string   `json:"personality"`
	Traits       []string `json:"traits"`
	Status       string   `json:"status"`
	StatusText   string   `json:"status_text"`
	Emotion      string   `json:"emotion,omitempty"`
	EmotionEmoji string   `json:"emotion_emoji,omitempty"`
}

// SessionView is what clients render for one session.
type SessionView struct {
	ID             string            `json:"id"`
	View           usecase.View      `json:"view"`
	State          usecase.State     `json:"state"`
	Pending        bool              `json:"pending"`
	Profile        model.Profile     `json:"profile"`
	Round          model.Round       `json:"round"`
	RoundNumber    int               `json:"round_number"`
	RoundCount     int               `json:"round_count"`
	RoundTitle     string            `json:"round_title"`
	Persona        *PersonaView      `json:"persona,omitempty"`
	Question       *model.Question   `json:"question,omitempty"`
	QuestionNumber int               `json:"question_number"`
	QuestionCount  int               `json:"question_count"`
	IsLastQuestion bool              `json:"is_last_question"`
	Evaluation     *model.Evaluation `json:"evaluation,omitempty"`
	Draft          string            `json:"draft"`
	AnsweredCount  int               `json:"answered_count"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func NewSessionView(snap usecase.SessionSnapshot, r *roster.Roster) SessionView {
	view := SessionView{
		ID:             snap.ID,
		View:           usecase.ViewInterview,
		State:          snap.State,
		Pending:        snap.Pending,
		Profile:        snap.Profile,
		Round:          snap.Round,
		RoundNumber:    snap.Round.Number(),
		RoundCount:     len(model.Rounds),
		RoundTitle:     r.Title(snap.Round),
		Question:       snap.CurrentQuestion(),
		QuestionCount:  len(snap.Questions),
		IsLastQuestion: snap.IsLastQuestion(),
		Evaluation:     snap.Evaluation,
		Draft:          snap.Draft,
		AnsweredCount:  snap.AnsweredCount,
		CreatedAt:      snap.CreatedAt,
		UpdatedAt:      snap.UpdatedAt,
	}
	if snap.Complete() {
		view.View = usecase.ViewReport
	}
	if view.Question != nil {
		view.QuestionNumber = snap.QuestionIndex + 1
	}
	if snap.Persona != nil {
		status := snap.Status()
		view.Persona = &PersonaView{
			ID:           snap.Persona.ID,
			Name:         snap.Persona.Name,
			Role:         snap.Persona.Role,
			Avatar:       snap.Persona.Avatar,
			Personality:  snap.Persona.Personality,
			Traits:       snap.Persona.Traits,
			Status:       string(status),
			StatusText:   StatusText(snap.Persona, status, snap.Emotion, snap.Evaluation != nil),
			Emotion:      snap.Emotion,
			EmotionEmoji: EmotionEmoji(snap.Emotion),
		}
	}
	return view
}

type HistoryItemView struct {
	Number int `json:"number"`
	model.HistoryItem
}

// PageHistory slices the history for one page. page is 1-based.
func PageHistory(history []model.HistoryItem, page, pageSize int) ([]HistoryItemView, int, int) {
	if pageSize <= 0 {
		pageSize = 10
	}
	if page <= 0 {
		page = 1
	}
	from := len(history)
	if page-1 < len(history)/pageSize+1 {
		from = min((page-1)*pageSize, len(history))
	}
	to := from + pageSize
	if to > len(history) {
		to = len(history)
	}
	items := make([]HistoryItemView, 0, to-from)
	for i := from; i < to; i++ {
		items = append(items, HistoryItemView{Number: i + 1, HistoryItem: history[i]})
	}
	return items, from, to
}
