package usecase

import (
	"time"

	"github.com/fadilmartias/mock-interview/internal/apperror"
	"github.com/fadilmartias/mock-interview/internal/metrics"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// SessionStore keeps live sessions in memory. The least recently used
// session is dropped when the store is full, and idle ones expire after ttl.
type SessionStore struct {
	cache *expirable.LRU[string, *InterviewSession]
}

func NewSessionStore(size int, ttl time.Duration) *SessionStore {
	if size <= 0 {
		size = 1000
	}
	onEvict := func(_ string, _ *InterviewSession) {
		metrics.SessionsActive.Dec()
	}
	return &SessionStore{cache: expirable.NewLRU[string, *InterviewSession](size, onEvict, ttl)}
}

func (s *SessionStore) Put(session *InterviewSession) {
	if s.cache.Contains(session.ID()) {
		s.cache.Add(session.ID(), session)
		return
	}
	s.cache.Add(session.ID(), session)
	metrics.SessionsActive.Inc()
}

func (s *SessionStore) Get(id string) (*InterviewSession, error) {
	session, ok := s.cache.Get(id)
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return session, nil
}

func (s *SessionStore) Delete(id string) error {
	if !s.cache.Remove(id) {
		return apperror.ErrNotFound
	}
	return nil
}

func (s *SessionStore) Len() int {
	return s.cache.Len()
}
