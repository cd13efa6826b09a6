package usecase

import (
	"context"

	"github.com/fadilmartias/mock-interview/internal/logger"
	"github.com/fadilmartias/mock-interview/internal/metrics"
	"github.com/fadilmartias/mock-interview/internal/model"
	"go.uber.org/zap"
)

// InterviewUsecase creates sessions and looks them up for the HTTP layer.
type InterviewUsecase struct {
	deps  Dependencies
	store *SessionStore
	opts  []SessionOption
}

func NewInterviewUsecase(deps Dependencies, store *SessionStore, opts ...SessionOption) *InterviewUsecase {
	deps.Logger = logger.OrNop(deps.Logger)
	return &InterviewUsecase{deps: deps, store: store, opts: opts}
}

// NewSession builds a session without starting it.
func (uc *InterviewUsecase) NewSession(profile model.Profile) (*InterviewSession, error) {
	session, err := NewInterviewSession(profile, uc.deps, uc.opts...)
	if err != nil {
		return nil, err
	}
	metrics.SessionsStarted.Inc()
	uc.deps.Logger.Info("session created",
		zap.String("session_id", session.ID()),
		zap.String("target_role", profile.TargetRole),
		zap.String("experience_level", string(profile.ExperienceLevel)),
	)
	return session, nil
}

// Create builds a session and stores it so Get can find it later.
func (uc *InterviewUsecase) Create(profile model.Profile) (*InterviewSession, error) {
	session, err := uc.NewSession(profile)
	if err != nil {
		return nil, err
	}
	uc.store.Put(session)
	return session, nil
}

// Start creates and stores a session, then initialises the HR round. The
// session is returned even when initialisation fails so the caller can retry.
func (uc *InterviewUsecase) Start(ctx context.Context, profile model.Profile) (*InterviewSession, error) {
	session, err := uc.Create(profile)
	if err != nil {
		return nil, err
	}
	return session, session.InitRound(ctx, model.RoundHR)
}

func (uc *InterviewUsecase) Get(id string) (*InterviewSession, error) {
	return uc.store.Get(id)
}

// Discard drops a session, which is how a restart begins.
func (uc *InterviewUsecase) Discard(id string) error {
	if err := uc.store.Delete(id); err != nil {
		return err
	}
	uc.deps.Logger.Info("session discarded", zap.String("session_id", id))
	return nil
}
