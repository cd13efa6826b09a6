package dto

import (
	"testing"

	"github.com/fadilmartias/mock-interview/internal/model"
	"github.com/fadilmartias/mock-interview/internal/roster"
	"github.com/fadilmartias/mock-interview/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmotionEmoji(t *testing.T) {
	cases := map[string]string{
		"":              "",
		"Impressed":     "🤩",
		"rather happy":  "🤩",
		"Skeptical":     "🤨",
		"worried":       "🤨",
		"Disappointed":  "😞",
		"neutral":       "🙂",
		"curious, calm": "🙂",
	}
	for emotion, want := range cases {
		assert.Equal(t, want, EmotionEmoji(emotion), emotion)
	}
}

func TestStatusText(t *testing.T) {
	p := &model.Persona{Name: "Ms. Lan Chi"}

	assert.Equal(t, "Đang kết nối...", StatusText(nil, usecase.StatusReady, "", false))
	assert.Equal(t, "Ms. Lan Chi cảm thấy impressed về câu trả lời của bạn.", StatusText(p, usecase.StatusSpeaking, "Impressed", true))
	assert.Contains(t, StatusText(p, usecase.StatusListening, "", false), "lắng nghe")
	assert.Contains(t, StatusText(p, usecase.StatusThinking, "", false), "cân nhắc")
	assert.Contains(t, StatusText(p, usecase.StatusReady, "", false), "chờ tín hiệu")
}

func TestVerdict(t *testing.T) {
	v, _ := Verdict(7.6)
	assert.Equal(t, VerdictReady, v)
	v, _ = Verdict(7.5)
	assert.Equal(t, VerdictPractice, v)
}

func TestNewReportView(t *testing.T) {
	report := &model.Report{
		OverallScore:      8,
		RoundScores:       map[model.Round]float64{model.RoundHR: 8, model.RoundTechnical: 7, model.RoundSituation: 9},
		SoftSkillsAverage: 8,
		TechSkillsAverage: 6,
	}
	profile := model.Profile{Name: "An", Confidence: 6}

	view := NewReportView("s1", profile, report)
	require.Len(t, view.RoundScores, 3)
	assert.Equal(t, model.RoundTechnical, view.RoundScores[1].Round)
	assert.Equal(t, 7.0, view.RoundScores[1].Score)
	assert.Equal(t, VerdictReady, view.Verdict)

	require.Len(t, view.Skills, 5)
	assert.Equal(t, 7.0, view.Skills[2].Score)
	assert.Equal(t, 6.0, view.Skills[3].Score)
}

func TestNewSessionView(t *testing.T) {
	r := roster.Default()
	persona, ok := r.Persona("hr_1")
	require.True(t, ok)

	snap := usecase.SessionSnapshot{
		ID:      "s1",
		State:   usecase.StateQuestionActive,
		Round:   model.RoundHR,
		Persona: &persona,
		Questions: []model.Question{
			{ID: "HR_1_0", Round: model.RoundHR, Text: "q1"},
			{ID: "HR_1_1", Round: model.RoundHR, Text: "q2"},
		},
		QuestionIndex: 1,
		Draft:         "typing",
	}

	view := NewSessionView(snap, r)
	assert.Equal(t, usecase.ViewInterview, view.View)
	assert.Equal(t, 1, view.RoundNumber)
	assert.Equal(t, r.Title(model.RoundHR), view.RoundTitle)
	require.NotNil(t, view.Question)
	assert.Equal(t, "HR_1_1", view.Question.ID)
	assert.Equal(t, 2, view.QuestionNumber)
	assert.True(t, view.IsLastQuestion)
	require.NotNil(t, view.Persona)
	assert.Equal(t, string(usecase.StatusListening), view.Persona.Status)

	snap.State = usecase.StateSessionComplete
	assert.Equal(t, usecase.ViewReport, NewSessionView(snap, r).View)
}

func TestPageHistory(t *testing.T) {
	history := make([]model.HistoryItem, 7)
	items, from, to := PageHistory(history, 2, 5)
	assert.Len(t, items, 2)
	assert.Equal(t, 5, from)
	assert.Equal(t, 7, to)
	assert.Equal(t, 6, items[0].Number)

	items, _, _ = PageHistory(history, 9, 5)
	assert.Empty(t, items)
}

func TestPageHistory_HugePage(t *testing.T) {
	history := make([]model.HistoryItem, 9)
	assert.NotPanics(t, func() {
		items, from, to := PageHistory(history, 1844674407370955162, 10)
		assert.Empty(t, items)
		assert.Equal(t, 9, from)
		assert.Equal(t, 9, to)
	})
}
