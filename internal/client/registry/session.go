package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/acadmate/internal/client/models"
	"github.com/dmitrijs2005/acadmate/internal/kvstore"
)

// Session tracks which account is signed in. The email is persisted as a raw
// string so a restarted process resumes the session.
type Session struct {
	store kvstore.Store

	mu     sync.Mutex
	email  string
	loaded bool
}

func NewSession(store kvstore.Store) *Session {
	return &Session{store: store}
}

// Current returns the active email, reading the store on first use.
func (s *Session) Current(ctx context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		if err := s.reload(ctx); err != nil {
			return "", false, err
		}
	}
	return s.email, s.email != "", nil
}

// Restore re-reads the persisted session, discarding the cached value.
func (s *Session) Restore(ctx context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reload(ctx); err != nil {
		return "", false, err
	}
	return s.email, s.email != "", nil
}

func (s *Session) Start(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(ctx, models.KeySession, email); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	s.email, s.loaded = email, true
	return nil
}

// End clears the session. It succeeds when no session is active.
func (s *Session) End(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Remove(ctx, models.KeySession); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	s.email, s.loaded = "", true
	return nil
}

func (s *Session) reload(ctx context.Context) error {
	v, _, err := s.store.Get(ctx, models.KeySession)
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	s.email, s.loaded = v, true
	return nil
}
