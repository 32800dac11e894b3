package app

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/PranavVetkar/Prototype-MarketingAI/internal/api"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/model"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/storage"
)

// Identity is the opaque token the API issues on login
type Identity string

// LoginResult is a successful login
type LoginResult struct {
	Identity Identity
	Message  string // server greeting, shown to the user
}

// Session holds the current identity, if any. There is no logout: the
// identity is only cleared by removing it from storage before startup.
type Session struct {
	mu       sync.RWMutex
	identity Identity

	backend Backend
	store   storage.Store
	logger  *zap.Logger
}

// NewSession creates an empty session
func NewSession(backend Backend, store storage.Store, logger *zap.Logger) *Session {
	return &Session{backend: backend, store: store, logger: logger}
}

// Identity returns the current identity and whether one is set
func (s *Session) Identity() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity, s.identity != ""
}

// Login sends credentials to the API. On success the identity is kept in
// memory and persisted under model.IdentityKey.
func (s *Session) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if email == "" || password == "" {
		return LoginResult{}, &ValidationError{Message: "Please enter both email and password."}
	}

	resp, err := s.backend.Login(ctx, email, password)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			reason := apiErr.Reason()
			if reason == "" {
				reason = DefaultAuthReason
			}
			s.logger.Info("login rejected", zap.Int("status", apiErr.StatusCode), zap.String("reason", reason))
			return LoginResult{}, &AuthError{Reason: reason, Err: err}
		}
		s.logger.Error("login error", zap.Error(err))
		return LoginResult{}, &AuthError{Network: true, Err: err}
	}

	id := Identity(resp.UID)
	s.mu.Lock()
	s.identity = id
	s.mu.Unlock()

	// The login already happened server side; a storage failure only costs
	// the restore on next startup.
	if err := s.store.Set(model.IdentityKey, resp.UID); err != nil {
		s.logger.Warn("failed to persist identity", zap.Error(err))
	}

	s.logger.Debug("logged in", zap.String("uid", resp.UID))
	return LoginResult{Identity: id, Message: resp.Message}, nil
}

// RestoreSession reads the persisted identity at startup. Only the demo
// sentinel is accepted; any other stored value counts as absent.
func (s *Session) RestoreSession() (Identity, bool) {
	stored, ok, err := s.store.Get(model.IdentityKey)
	if err != nil {
		s.logger.Warn("failed to read persisted identity", zap.Error(err))
		return "", false
	}
	if !ok || stored != model.DemoUID {
		return "", false
	}

	s.mu.Lock()
	s.identity = Identity(stored)
	s.mu.Unlock()
	return Identity(stored), true
}
