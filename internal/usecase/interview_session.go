package usecase

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/fadilmartias/mock-interview/internal/apperror"
	"github.com/fadilmartias/mock-interview/internal/logger"
	"github.com/fadilmartias/mock-interview/internal/metrics"
	"github.com/fadilmartias/mock-interview/internal/model"
	"github.com/fadilmartias/mock-interview/internal/roster"
	"github.com/fadilmartias/mock-interview/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type State string

const (
	StateAwaitingRoundInit State = "AWAITING_ROUND_INIT"
	StateQuestionActive    State = "QUESTION_ACTIVE"
	StateAnswerSubmitted   State = "ANSWER_SUBMITTED"
	StateRoundComplete     State = "ROUND_COMPLETE"
	StateSessionComplete   State = "SESSION_COMPLETE"
)

// ReportAggregator turns a finished history into a report.
type ReportAggregator interface {
	GenerateReport(ctx context.Context, history []model.HistoryItem, profile model.Profile) (*model.Report, error)
}

type Dependencies struct {
	Generator service.GeneratorServiceInterface
	Reports   ReportAggregator
	Roster    *roster.Roster
	Logger    *zap.Logger
}

type SessionOption func(*InterviewSession)

// WithRandSource replaces the persona draw, e.g. with a seeded *rand.Rand.
func WithRandSource(src roster.Source) SessionOption {
	return func(s *InterviewSession) {
		s.rng = src
	}
}

func WithSessionID(id string) SessionOption {
	return func(s *InterviewSession) {
		s.id = id
	}
}

// InterviewSession owns one candidate's interview: the current round, its
// persona and question batch, and the append-only history.
//
// Generator calls run without holding the lock. The pending flag keeps a
// second call from starting until the first has finished.
type InterviewSession struct {
	id        string
	profile   model.Profile
	generator service.GeneratorServiceInterface
	reports   ReportAggregator
	roster    *roster.Roster
	rng       roster.Source
	logger    *zap.Logger
	createdAt time.Time

	mu         sync.Mutex
	pending    bool
	state      State
	round      model.Round
	persona    *model.Persona
	questions  []model.Question
	index      int
	evaluation *model.Evaluation
	emotion    string
	draft      string
	history    []model.HistoryItem
	report     *model.Report
	reportErr  error
	updatedAt  time.Time
}

// NewInterviewSession validates the profile and returns a session waiting for
// the HR round to be initialised.
func NewInterviewSession(profile model.Profile, deps Dependencies, opts ...SessionOption) (*InterviewSession, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if deps.Roster == nil {
		deps.Roster = roster.Default()
	}
	if deps.Reports == nil {
		deps.Reports = NewReportUsecase(deps.Generator, deps.Logger)
	}

	now := time.Now()
	s := &InterviewSession{
		id:        uuid.NewString(),
		profile:   profile,
		generator: deps.Generator,
		reports:   deps.Reports,
		roster:    deps.Roster,
		rng:       rand.New(rand.NewSource(now.UnixNano())),
		logger:    logger.OrNop(deps.Logger),
		createdAt: now,
		updatedAt: now,
		state:     StateAwaitingRoundInit,
		round:     model.RoundHR,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("session_id", s.id))
	return s, nil
}

func (s *InterviewSession) ID() string {
	return s.id
}

func (s *InterviewSession) Profile() model.Profile {
	return s.profile
}

func (s *InterviewSession) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *InterviewSession) Round() model.Round {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

// InitRound picks the round's persona and fetches its question batch. On
// failure persona and batch stay unset and the session keeps waiting for a retry.
func (s *InterviewSession) InitRound(ctx context.Context, round model.Round) error {
	s.mu.Lock()
	if s.state != StateAwaitingRoundInit || round != s.round {
		s.mu.Unlock()
		return apperror.NewInvalidTransition("InitRound("+string(round)+")", string(s.state))
	}
	if s.pending {
		s.mu.Unlock()
		return apperror.ErrSessionBusy
	}
	persona, err := s.roster.Pick(round, s.rng)
	if err != nil {
		s.mu.Unlock()
		return apperror.NewGenerationError(service.OpGenerateQuestions, err)
	}
	s.pending = true
	s.mu.Unlock()

	s.logger.Info("initialising round", zap.String("round", string(round)), zap.String("persona", persona.ID))
	questions, err := s.generator.GenerateQuestions(ctx, round, s.profile, persona.Personality)
	if err == nil && len(questions) == 0 {
		err = errors.New("generator returned no questions")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false
	if err != nil {
		s.logger.Warn("round initialisation failed", zap.String("round", string(round)), zap.Error(err))
		return asGenerationError(service.OpGenerateQuestions, err)
	}

	s.persona = &persona
	s.questions = questions
	s.index = 0
	s.evaluation = nil
	s.emotion = ""
	s.draft = ""
	s.state = StateQuestionActive
	s.touch()
	return nil
}

// TypeAnswer records the candidate's draft for the current question.
func (s *InterviewSession) TypeAnswer(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateQuestionActive {
		return apperror.NewInvalidTransition("TypeAnswer", string(s.state))
	}
	if s.pending {
		return apperror.ErrSessionBusy
	}
	s.draft = text
	s.touch()
	return nil
}

// SubmitAnswer evaluates text against the current question. Only a fully
// successful evaluation appends to the history.
func (s *InterviewSession) SubmitAnswer(ctx context.Context, text string) (*model.Evaluation, error) {
	s.mu.Lock()
	if s.state != StateQuestionActive {
		s.mu.Unlock()
		return nil, apperror.NewInvalidTransition("SubmitAnswer", string(s.state))
	}
	if strings.TrimSpace(text) == "" {
		s.mu.Unlock()
		return nil, apperror.NewValidationError("answer must not be empty", map[string]string{"answer": "answer is required"})
	}
	if s.pending {
		s.mu.Unlock()
		return nil, apperror.ErrSessionBusy
	}
	question := s.questions[s.index]
	persona := *s.persona
	s.pending = true
	s.mu.Unlock()

	eval, err := s.generator.EvaluateAnswer(ctx, question, text, s.profile, persona.Context())
	if err == nil && eval == nil {
		err = errors.New("generator returned no evaluation")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false
	if err != nil {
		s.logger.Warn("answer evaluation failed", zap.String("question_id", question.ID), zap.Error(err))
		return nil, asGenerationError(service.OpEvaluateAnswer, err)
	}

	eval = eval.Clone()
	s.history = append(s.history, model.HistoryItem{
		Question:   question,
		UserAnswer: text,
		Evaluation: eval,
		PersonaID:  persona.ID,
	})
	s.evaluation = eval
	s.emotion = eval.NPCEmotion
	if s.index+1 < len(s.questions) {
		s.state = StateAnswerSubmitted
	} else {
		s.state = StateRoundComplete
	}
	s.touch()
	metrics.AnswersEvaluated.WithLabelValues(string(question.Round)).Inc()
	s.logger.Debug("answer recorded",
		zap.String("question_id", question.ID),
		zap.Int("history_len", len(s.history)),
		zap.String("state", string(s.state)),
	)
	return eval.Clone(), nil
}

// AdvanceQuestion moves to the next question of the current batch. On the
// last question the caller must use AdvanceRound instead.
func (s *InterviewSession) AdvanceQuestion() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAnswerSubmitted {
		return apperror.NewInvalidTransition("AdvanceQuestion", string(s.state))
	}
	s.index++
	s.evaluation = nil
	s.emotion = ""
	s.draft = ""
	s.state = StateQuestionActive
	s.touch()
	return nil
}

// AdvanceRound leaves a completed round. It initialises the next round, or
// completes the session after SITUATION. Calling it on a completed session
// does nothing.
func (s *InterviewSession) AdvanceRound(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateSessionComplete {
		s.mu.Unlock()
		return nil
	}
	if s.state != StateRoundComplete {
		s.mu.Unlock()
		return apperror.NewInvalidTransition("AdvanceRound", string(s.state))
	}

	next, ok := s.round.Next()
	if !ok {
		s.state = StateSessionComplete
		s.evaluation = nil
		s.emotion = ""
		s.draft = ""
		s.touch()
		historyLen := len(s.history)
		s.mu.Unlock()
		metrics.SessionsCompleted.Inc()
		s.logger.Info("session complete", zap.Int("history_len", historyLen))
		return nil
	}

	s.round = next
	s.state = StateAwaitingRoundInit
	s.persona = nil
	s.questions = nil
	s.index = 0
	s.evaluation = nil
	s.emotion = ""
	s.draft = ""
	s.touch()
	s.mu.Unlock()

	return s.InitRound(ctx, next)
}

// Next handles the presentation layer's "next" event.
func (s *InterviewSession) Next(ctx context.Context) error {
	switch s.State() {
	case StateAnswerSubmitted:
		return s.AdvanceQuestion()
	case StateRoundComplete, StateSessionComplete:
		return s.AdvanceRound(ctx)
	default:
		return apperror.NewInvalidTransition("Next", string(s.State()))
	}
}

// Report hands the history to the aggregator the first time it is called on a
// completed session. Later calls return the stored outcome, including a
// failure: a failed report is terminal for the session.
func (s *InterviewSession) Report(ctx context.Context) (*model.Report, error) {
	s.mu.Lock()
	if s.state != StateSessionComplete {
		s.mu.Unlock()
		return nil, apperror.NewInvalidTransition("Report", string(s.state))
	}
	if s.report != nil || s.reportErr != nil {
		defer s.mu.Unlock()
		return s.report, s.reportErr
	}
	if s.pending {
		s.mu.Unlock()
		return nil, apperror.ErrSessionBusy
	}
	history := s.historyCopy()
	s.pending = true
	s.mu.Unlock()

	report, err := s.reports.GenerateReport(ctx, history, s.profile)
	if err == nil && report == nil {
		err = apperror.NewReportUnavailable(errors.New("aggregator returned no report"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false
	if err != nil {
		if !apperror.IsReportUnavailable(err) {
			err = apperror.NewReportUnavailable(err)
		}
		s.reportErr = err
		s.touch()
		return nil, err
	}
	s.report = report
	s.touch()
	return report, nil
}

// History returns a copy of the answered items in answer order.
func (s *InterviewSession) History() []model.HistoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.historyCopy()
}

func (s *InterviewSession) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := SessionSnapshot{
		ID:            s.id,
		Profile:       s.profile,
		State:         s.state,
		Pending:       s.pending,
		Round:         s.round,
		QuestionIndex: s.index,
		Evaluation:    s.evaluation.Clone(),
		Emotion:       s.emotion,
		Draft:         s.draft,
		AnsweredCount: len(s.history),
		Report:        s.report,
		ReportErr:     s.reportErr,
		CreatedAt:     s.createdAt,
		UpdatedAt:     s.updatedAt,
	}
	if s.persona != nil {
		p := *s.persona
		snap.Persona = &p
	}
	if s.questions != nil {
		snap.Questions = make([]model.Question, len(s.questions))
		copy(snap.Questions, s.questions)
	}
	return snap
}

func (s *InterviewSession) historyCopy() []model.HistoryItem {
	out := make([]model.HistoryItem, len(s.history))
	for i, item := range s.history {
		item.Evaluation = item.Evaluation.Clone()
		out[i] = item
	}
	return out
}

func (s *InterviewSession) touch() {
	s.updatedAt = time.Now()
}

func asGenerationError(op string, err error) error {
	if apperror.IsGeneration(err) {
		return err
	}
	return apperror.NewGenerationError(op, err)
}
