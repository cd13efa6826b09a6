package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/fadilmartias/mock-interview/internal/apperror"
	"github.com/fadilmartias/mock-interview/internal/model"
	"github.com/fadilmartias/mock-interview/internal/repository"
	"github.com/fadilmartias/mock-interview/internal/roster"
	"github.com/fadilmartias/mock-interview/internal/service"
	"github.com/fadilmartias/mock-interview/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	mu            sync.Mutex
	batchSize     int
	failQuestions bool
	failReport    bool
	evalCalls     int
	reportCalls   int
}

func (g *stubGenerator) GenerateQuestions(_ context.Context, round model.Round, _ model.Profile, _ string) ([]model.Question, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failQuestions {
		return nil, apperror.NewGenerationError(service.OpGenerateQuestions, errors.New("quota exceeded"))
	}
	out := make([]model.Question, g.batchSize)
	for i := range out {
		out[i] = model.Question{ID: fmt.Sprintf("%s_1_%d", round, i), Round: round, Text: "question", Difficulty: model.DifficultyEasy}
	}
	return out, nil
}

func (g *stubGenerator) EvaluateAnswer(_ context.Context, _ model.Question, _ string, _ model.Profile, _ model.PersonaContext) (*model.Evaluation, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.evalCalls++
	return &model.Evaluation{Score: 8, Feedback: "tốt", NPCEmotion: "Impressed", SoftSkillsScore: 8, TechSkillsScore: 7}, nil
}

func (g *stubGenerator) GenerateReport(_ context.Context, history []model.HistoryItem, _ model.Profile) (*model.Report, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reportCalls++
	if g.failReport {
		return nil, apperror.NewGenerationError(service.OpGenerateReport, errors.New("timeout"))
	}
	return &model.Report{
		OverallScore:      8,
		RoundScores:       map[model.Round]float64{model.RoundHR: 8, model.RoundTechnical: 8, model.RoundSituation: 8},
		SoftSkillsAverage: 8,
		TechSkillsAverage: 7,
		Summary:           fmt.Sprintf("%d answers", len(history)),
		ImprovementPlan:   []string{"ôn tập"},
	}, nil
}

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Code       string          `json:"code"`
	Terminal   bool            `json:"terminal"`
	Data       json.RawMessage `json:"data"`
	Details    json.RawMessage `json:"details"`
	Pagination *struct {
		TotalItems int64 `json:"total_items"`
		HasMore    bool  `json:"has_more"`
	} `json:"pagination"`
}

type sessionData struct {
	ID       string `json:"id"`
	View     string `json:"view"`
	State    string `json:"state"`
	Round    string `json:"round"`
	Question *struct {
		ID string `json:"id"`
	} `json:"question"`
	Persona *struct {
		ID           string `json:"id"`
		EmotionEmoji string `json:"emotion_emoji"`
	} `json:"persona"`
	AnsweredCount int `json:"answered_count"`
}

func newTestApp(gen *stubGenerator) *fiber.App {
	app := fiber.New()
	deps := usecase.Dependencies{
		Generator: gen,
		Reports:   usecase.NewReportUsecase(gen, nil),
		Roster:    roster.Default(),
	}
	uc := usecase.NewInterviewUsecase(deps, usecase.NewSessionStore(10, time.Hour))
	NewInterviewHandler(uc, deps.Roster, nil, nil).RegisterRoutes(app)

	creds := service.NewCredentialService("gemini", "", repository.NewMemoryCredentialRepository())
	NewCredentialHandler(creds).RegisterRoutes(app)
	return app
}

func call(t *testing.T, app *fiber.App, method, path string, body any) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func decodeSession(t *testing.T, raw json.RawMessage) sessionData {
	t.Helper()
	var s sessionData
	require.NoError(t, json.Unmarshal(raw, &s))
	return s
}

var profileBody = map[string]any{
	"name":             "An",
	"experience_level": "Fresher",
	"target_role":      "Kế toán thuế",
	"confidence":       6,
}

func TestInterviewHandler_FullFlow(t *testing.T) {
	gen := &stubGenerator{batchSize: 1}
	app := newTestApp(gen)

	status, env := call(t, app, http.MethodPost, "/api/sessions", profileBody)
	require.Equal(t, http.StatusCreated, status)
	s := decodeSession(t, env.Data)
	assert.Equal(t, "QUESTION_ACTIVE", s.State)
	assert.Equal(t, "HR", s.Round)
	require.NotNil(t, s.Question)
	assert.Equal(t, "HR_1_0", s.Question.ID)

	base := "/api/sessions/" + s.ID
	status, _ = call(t, app, http.MethodPut, base+"/draft", map[string]string{"draft": "Em chào chị"})
	assert.Equal(t, http.StatusOK, status)

	for _, round := range []string{"HR", "TECHNICAL", "SITUATION"} {
		status, env = call(t, app, http.MethodPost, base+"/answer", map[string]string{"answer": "Em chào chị"})
		require.Equal(t, http.StatusOK, status, round)
		s = decodeSession(t, env.Data)
		assert.Equal(t, "ROUND_COMPLETE", s.State)
		require.NotNil(t, s.Persona)
		assert.Equal(t, "🤩", s.Persona.EmotionEmoji)

		status, env = call(t, app, http.MethodPost, base+"/next", nil)
		require.Equal(t, http.StatusOK, status, round)
	}
	s = decodeSession(t, env.Data)
	assert.Equal(t, "SESSION_COMPLETE", s.State)
	assert.Equal(t, "REPORT", s.View)
	assert.Equal(t, 3, s.AnsweredCount)

	status, env = call(t, app, http.MethodGet, base+"/history?page=1&page_size=2", nil)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, int64(3), env.Pagination.TotalItems)
	assert.True(t, env.Pagination.HasMore)

	status, env = call(t, app, http.MethodGet, base+"/report", nil)
	require.Equal(t, http.StatusOK, status)
	var report struct {
		Verdict string `json:"verdict"`
		Summary string `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, "ready", report.Verdict)
	assert.Equal(t, "3 answers", report.Summary)

	status, _ = call(t, app, http.MethodGet, base+"/report", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, gen.reportCalls)

	status, _ = call(t, app, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusOK, status)
	status, env = call(t, app, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", env.Code)
}

func TestInterviewHandler_InvalidProfile(t *testing.T) {
	app := newTestApp(&stubGenerator{batchSize: 3})

	status, env := call(t, app, http.MethodPost, "/api/sessions", map[string]any{"name": "An"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_error", env.Code)
}

func TestInterviewHandler_BlankAnswerAndEarlyNext(t *testing.T) {
	gen := &stubGenerator{batchSize: 3}
	app := newTestApp(gen)

	_, env := call(t, app, http.MethodPost, "/api/sessions", profileBody)
	base := "/api/sessions/" + decodeSession(t, env.Data).ID

	status, env := call(t, app, http.MethodPost, base+"/answer", map[string]string{"answer": "   "})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_error", env.Code)
	assert.Equal(t, 0, gen.evalCalls)

	status, env = call(t, app, http.MethodPost, base+"/next", nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "invalid_transition", env.Code)

	status, env = call(t, app, http.MethodGet, base+"/report", nil)
	assert.Equal(t, http.StatusConflict, status)
}

func TestInterviewHandler_StartFailureCanBeRetried(t *testing.T) {
	gen := &stubGenerator{batchSize: 3, failQuestions: true}
	app := newTestApp(gen)

	status, env := call(t, app, http.MethodPost, "/api/sessions", profileBody)
	require.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "generation_error", env.Code)

	var details struct {
		Session sessionData `json:"session"`
	}
	require.NoError(t, json.Unmarshal(env.Details, &details))
	assert.Equal(t, "AWAITING_ROUND_INIT", details.Session.State)
	assert.Nil(t, details.Session.Persona)

	gen.mu.Lock()
	gen.failQuestions = false
	gen.mu.Unlock()

	status, env = call(t, app, http.MethodPost, "/api/sessions/"+details.Session.ID+"/round", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "QUESTION_ACTIVE", decodeSession(t, env.Data).State)
}

func TestInterviewHandler_ReportFailureIsTerminal(t *testing.T) {
	gen := &stubGenerator{batchSize: 1, failReport: true}
	app := newTestApp(gen)

	_, env := call(t, app, http.MethodPost, "/api/sessions", profileBody)
	base := "/api/sessions/" + decodeSession(t, env.Data).ID
	for i := 0; i < 3; i++ {
		call(t, app, http.MethodPost, base+"/answer", map[string]string{"answer": "ok"})
		call(t, app, http.MethodPost, base+"/next", nil)
	}

	for i := 0; i < 2; i++ {
		status, env := call(t, app, http.MethodGet, base+"/report", nil)
		assert.Equal(t, http.StatusBadGateway, status)
		assert.Equal(t, "report_unavailable", env.Code)
		assert.True(t, env.Terminal)
	}
	assert.Equal(t, 1, gen.reportCalls)
}

func TestInterviewHandler_Roster(t *testing.T) {
	app := newTestApp(&stubGenerator{batchSize: 3})

	status, env := call(t, app, http.MethodGet, "/api/roster", nil)
	require.Equal(t, http.StatusOK, status)
	var rounds []struct {
		Round    string            `json:"round"`
		Personas []json.RawMessage `json:"personas"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rounds))
	require.Len(t, rounds, 3)
	assert.Equal(t, "HR", rounds[0].Round)
	assert.NotEmpty(t, rounds[2].Personas)
}

func TestCredentialHandler(t *testing.T) {
	app := newTestApp(&stubGenerator{batchSize: 3})

	status, env := call(t, app, http.MethodGet, "/api/credential", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"provider":"gemini","configured":false}`, string(env.Data))

	status, env = call(t, app, http.MethodPut, "/api/credential", map[string]string{"api_key": "  "})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_error", env.Code)

	status, env = call(t, app, http.MethodPut, "/api/credential", map[string]string{"api_key": "AIza-test"})
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"provider":"gemini","configured":true,"source":"stored"}`, string(env.Data))

	status, env = call(t, app, http.MethodDelete, "/api/credential", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"provider":"gemini","configured":false}`, string(env.Data))
}
