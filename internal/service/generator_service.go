package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/mock-interview/internal/apperror"
	"github.com/fadilmartias/mock-interview/internal/logger"
	"github.com/fadilmartias/mock-interview/internal/metrics"
	"github.com/fadilmartias/mock-interview/internal/model"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	OpGenerateQuestions = "generate_questions"
	OpEvaluateAnswer    = "evaluate_answer"
	OpGenerateReport    = "generate_report"
)

// GeneratorServiceInterface is the contract the interview core depends on.
// Every method is a single remote call: it either returns a fully validated
// value or a *apperror.GenerationError.
type GeneratorServiceInterface interface {
	GenerateQuestions(ctx context.Context, round model.Round, profile model.Profile, personality string) ([]model.Question, error)
	EvaluateAnswer(ctx context.Context, question model.Question, answer string, profile model.Profile, persona model.PersonaContext) (*model.Evaluation, error)
	GenerateReport(ctx context.Context, history []model.HistoryItem, profile model.Profile) (*model.Report, error)
}

// StructuredBackend sends a prompt together with the requested output shape
// and returns the raw JSON text of the answer.
type StructuredBackend interface {
	Name() string
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}

type GeneratorService struct {
	backend StructuredBackend
	logger  *zap.Logger
	now     func() time.Time
}

func NewGeneratorService(backend StructuredBackend, log *zap.Logger) *GeneratorService {
	return &GeneratorService{
		backend: backend,
		logger:  logger.OrNop(log),
		now:     time.Now,
	}
}

type questionPayload struct {
	ID         string `json:"id"`
	Round      string `json:"round"`
	Text       string `json:"text"`
	Difficulty string `json:"difficulty"`
}

type evaluationPayload struct {
	Score           float64  `json:"score"`
	Feedback        string   `json:"feedback"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	BetterAnswer    string   `json:"betterAnswer"`
	SoftSkillsScore float64  `json:"softSkillsScore"`
	TechSkillsScore float64  `json:"techSkillsScore"`
	NPCEmotion      string   `json:"npcEmotion"`
}

type reportPayload struct {
	OverallScore      float64            `json:"overallScore"`
	RoundScores       map[string]float64 `json:"roundScores"`
	SoftSkillsAverage float64            `json:"softSkillsAverage"`
	TechSkillsAverage float64            `json:"techSkillsAverage"`
	Summary           string             `json:"summary"`
	ImprovementPlan   []string           `json:"improvementPlan"`
}

// GenerateQuestions requests a question batch. Ids and round tags from the
// response are replaced; the batch length is kept as returned.
func (s *GeneratorService) GenerateQuestions(ctx context.Context, round model.Round, profile model.Profile, personality string) ([]model.Question, error) {
	var payload []questionPayload
	if err := s.generate(ctx, OpGenerateQuestions, buildQuestionsPrompt(round, profile, personality), questionsSchema, &payload); err != nil {
		return nil, err
	}

	stamp := s.now().UnixMilli()
	questions := make([]model.Question, len(payload))
	for i, q := range payload {
		questions[i] = model.Question{
			ID:         fmt.Sprintf("%s_%d_%d", round, stamp, i),
			Round:      round,
			Text:       q.Text,
			Difficulty: model.Difficulty(q.Difficulty),
		}
	}
	return questions, nil
}

func (s *GeneratorService) EvaluateAnswer(ctx context.Context, question model.Question, answer string, profile model.Profile, persona model.PersonaContext) (*model.Evaluation, error) {
	var payload evaluationPayload
	if err := s.generate(ctx, OpEvaluateAnswer, buildEvaluationPrompt(question, answer, profile, persona), evaluationSchema, &payload); err != nil {
		return nil, err
	}
	return &model.Evaluation{
		Score:           payload.Score,
		Feedback:        payload.Feedback,
		Strengths:       payload.Strengths,
		Weaknesses:      payload.Weaknesses,
		BetterAnswer:    payload.BetterAnswer,
		SoftSkillsScore: payload.SoftSkillsScore,
		TechSkillsScore: payload.TechSkillsScore,
		NPCEmotion:      payload.NPCEmotion,
	}, nil
}

func (s *GeneratorService) GenerateReport(ctx context.Context, history []model.HistoryItem, profile model.Profile) (*model.Report, error) {
	var payload reportPayload
	if err := s.generate(ctx, OpGenerateReport, buildReportPrompt(BuildTranscript(history), profile), reportSchema, &payload); err != nil {
		return nil, err
	}
	if len(payload.RoundScores) != len(model.Rounds) {
		return nil, apperror.NewGenerationError(OpGenerateReport,
			fmt.Errorf("roundScores must have exactly %d keys, got %d", len(model.Rounds), len(payload.RoundScores)))
	}

	scores := make(map[model.Round]float64, len(model.Rounds))
	for _, r := range model.Rounds {
		scores[r] = payload.RoundScores[string(r)]
	}
	return &model.Report{
		OverallScore:      payload.OverallScore,
		RoundScores:       scores,
		SoftSkillsAverage: payload.SoftSkillsAverage,
		TechSkillsAverage: payload.TechSkillsAverage,
		Summary:           payload.Summary,
		ImprovementPlan:   payload.ImprovementPlan,
	}, nil
}

func (s *GeneratorService) generate(ctx context.Context, op, prompt string, schema *genai.Schema, out any) error {
	started := time.Now()
	raw, err := s.backend.GenerateJSON(ctx, prompt, schema)
	if err == nil {
		err = validatePayload(raw, schema)
	}
	if err == nil {
		err = json.Unmarshal([]byte(strings.TrimSpace(raw)), out)
	}
	metrics.ObserveGeneration(op, s.backend.Name(), started, err)

	if err != nil {
		s.logger.Error("generator call failed",
			zap.String("operation", op),
			zap.String("backend", s.backend.Name()),
			zap.Duration("duration", time.Since(started)),
			zap.Error(err),
		)
		return apperror.NewGenerationError(op, err)
	}
	s.logger.Debug("generator call succeeded",
		zap.String("operation", op),
		zap.String("backend", s.backend.Name()),
		zap.Duration("duration", time.Since(started)),
	)
	return nil
}
