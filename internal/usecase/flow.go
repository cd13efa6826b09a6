package usecase

import (
	"context"
	"sync"

	"github.com/fadilmartias/mock-interview/internal/apperror"
	"github.com/fadilmartias/mock-interview/internal/model"
)

// View is the screen the presentation layer shows.
type View string

const (
	ViewLanding   View = "LANDING"
	ViewSetup     View = "SETUP"
	ViewInterview View = "INTERVIEW"
	ViewReport    View = "REPORT"
)

// SessionFactory builds a fresh, not yet started session.
type SessionFactory func(profile model.Profile) (*InterviewSession, error)

// Flow drives the screens around one session at a time:
// LANDING -> SETUP -> INTERVIEW -> REPORT, with restart back to SETUP.
type Flow struct {
	newSession SessionFactory

	mu      sync.Mutex
	view    View
	session *InterviewSession
}

func NewFlow(factory SessionFactory) *Flow {
	return &Flow{newSession: factory, view: ViewLanding}
}

func (f *Flow) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view
}

func (f *Flow) Session() *InterviewSession {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}

func (f *Flow) Begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.view != ViewLanding {
		return apperror.NewInvalidTransition("Begin", string(f.view))
	}
	f.view = ViewSetup
	return nil
}

// SubmitProfile starts a session and initialises its HR round. The flow is
// on INTERVIEW whenever a session was created, even if the first round failed.
func (f *Flow) SubmitProfile(ctx context.Context, profile model.Profile) (*InterviewSession, error) {
	f.mu.Lock()
	if f.view != ViewSetup {
		defer f.mu.Unlock()
		return nil, apperror.NewInvalidTransition("SubmitProfile", string(f.view))
	}
	session, err := f.newSession(profile)
	if err != nil {
		f.mu.Unlock()
		return nil, err
	}
	f.session = session
	f.view = ViewInterview
	f.mu.Unlock()

	return session, session.InitRound(ctx, model.RoundHR)
}

// Finish moves to the report screen once the session is complete.
func (f *Flow) Finish() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.view != ViewInterview || f.session == nil || f.session.State() != StateSessionComplete {
		return apperror.NewInvalidTransition("Finish", string(f.view))
	}
	f.view = ViewReport
	return nil
}

// Restart discards the current session and returns to SETUP.
func (f *Flow) Restart() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session = nil
	f.view = ViewSetup
}
