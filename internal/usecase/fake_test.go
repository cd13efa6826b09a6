package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/fadilmartias/mock-interview/internal/apperror"
	"github.com/fadilmartias/mock-interview/internal/model"
	"github.com/fadilmartias/mock-interview/internal/roster"
	"github.com/fadilmartias/mock-interview/internal/service"
)

var errUpstream = errors.New("upstream unavailable")

type fakeGenerator struct {
	mu            sync.Mutex
	batchSize     int
	failQuestions int
	evalErr       error
	reportErr     error
	score         float64

	rounds        []model.Round
	personalities []string
	evalCalls     int
	reportCalls   int
	reportHistory []model.HistoryItem

	entered chan struct{}
	release chan struct{}
}

func newFakeGenerator() *fakeGenerator {
	return &fakeGenerator{batchSize: model.QuestionsPerRound, score: 8}
}

func (f *fakeGenerator) GenerateQuestions(_ context.Context, round model.Round, _ model.Profile, personality string) ([]model.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rounds = append(f.rounds, round)
	f.personalities = append(f.personalities, personality)
	if f.failQuestions > 0 {
		f.failQuestions--
		return nil, apperror.NewGenerationError(service.OpGenerateQuestions, errUpstream)
	}
	out := make([]model.Question, f.batchSize)
	for i := range out {
		out[i] = model.Question{
			ID:         fmt.Sprintf("%s_%d_%d", round, len(f.rounds), i),
			Round:      round,
			Text:       fmt.Sprintf("%s question %d", round, i+1),
			Difficulty: model.DifficultyMedium,
		}
	}
	return out, nil
}

func (f *fakeGenerator) EvaluateAnswer(_ context.Context, question model.Question, _ string, _ model.Profile, _ model.PersonaContext) (*model.Evaluation, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.evalCalls++
	if f.evalErr != nil {
		return nil, apperror.NewGenerationError(service.OpEvaluateAnswer, f.evalErr)
	}
	return &model.Evaluation{
		Score:           f.score,
		Feedback:        "feedback for " + question.ID,
		Strengths:       []string{"clear"},
		Weaknesses:      []string{"short"},
		BetterAnswer:    "a better answer",
		SoftSkillsScore: 7,
		TechSkillsScore: 6,
		NPCEmotion:      "happy",
	}, nil
}

func (f *fakeGenerator) GenerateReport(_ context.Context, history []model.HistoryItem, _ model.Profile) (*model.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reportCalls++
	f.reportHistory = history
	if f.reportErr != nil {
		return nil, apperror.NewGenerationError(service.OpGenerateReport, f.reportErr)
	}
	return &model.Report{
		OverallScore: 7.8,
		RoundScores: map[model.Round]float64{
			model.RoundHR:        8,
			model.RoundTechnical: 7.5,
			model.RoundSituation: 8,
		},
		SoftSkillsAverage: 7,
		TechSkillsAverage: 6,
		Summary:           "solid",
		ImprovementPlan:   []string{"practice"},
	}, nil
}

// firstPersona always draws index 0.
type firstPersona struct{}

func (firstPersona) Intn(int) int { return 0 }

func testProfile() model.Profile {
	return model.Profile{
		Name:            "An",
		ExperienceLevel: model.LevelFresher,
		TargetRole:      "Kế toán thuế",
		Confidence:      6,
	}
}

func newTestSession(gen *fakeGenerator) (*InterviewSession, error) {
	deps := Dependencies{
		Generator: gen,
		Reports:   NewReportUsecase(gen, nil),
		Roster:    roster.Default(),
	}
	return NewInterviewSession(testProfile(), deps, WithRandSource(firstPersona{}))
}
