package session

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/partner-hub/internal/config"
	"github.com/spec-kit/partner-hub/internal/events"
	"github.com/spec-kit/partner-hub/internal/provider"
)

// ErrNotConfigured is the fixed result of every credential operation when
// the provider settings are absent.
var ErrNotConfigured = errors.New("identity provider is not configured")

// AuthSession wraps the external identity provider. It folds the latest
// session_changed event into local state; updates are whole replacements,
// so the most recent notification always wins.
type AuthSession struct {
	client     provider.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger
	configured bool

	mu          sync.Mutex
	session     *provider.Session
	loading     bool
	closed      bool
	unsubscribe func()
}

// NewAuthSession builds the wrapper. When the provider is unconfigured the
// session starts settled: not loading, never authenticated.
func NewAuthSession(cfg config.ProviderConfig, client provider.Client, dispatcher events.Dispatcher, logger *zap.Logger) *AuthSession {
	configured := cfg.Configured()
	return &AuthSession{
		client:     client,
		dispatcher: dispatcher,
		logger:     logger,
		configured: configured,
		loading:    configured,
	}
}

// Start subscribes to provider change events and kicks off the initial
// session fetch. Safe to call once per session lifetime.
func (s *AuthSession) Start(ctx context.Context) {
	if !s.configured {
		return
	}

	s.mu.Lock()
	if s.closed || s.unsubscribe != nil {
		s.mu.Unlock()
		return
	}
	s.unsubscribe = s.dispatcher.Subscribe(events.EventSessionChanged, s.handleSessionChanged)
	s.mu.Unlock()

	go s.fetchInitialSession(ctx)
}

// Close unsubscribes from provider events. After Close no late fetch result
// or event is applied to session state.
func (s *AuthSession) Close() {
	s.mu.Lock()
	s.closed = true
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (s *AuthSession) fetchInitialSession(ctx context.Context) {
	current, err := s.client.CurrentSession(ctx)
	if err != nil {
		s.logger.Warn("initial session fetch failed", zap.Error(err))
		current = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		// torn down before the fetch resolved; discard the stale value
		return
	}
	s.session = current
	s.loading = false
}

// handleSessionChanged re-reads the provider's latest session so the local
// copy is always the newest state, not a merge.
func (s *AuthSession) handleSessionChanged(ctx context.Context, _ events.Event) error {
	current, err := s.client.CurrentSession(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.session = current
	s.loading = false
	return nil
}

// SignInWithEmail authenticates against the provider. The returned error is
// the provider's message verbatim, or ErrNotConfigured.
func (s *AuthSession) SignInWithEmail(ctx context.Context, email, password string) error {
	if !s.configured {
		return ErrNotConfigured
	}
	if _, err := s.client.SignInWithPassword(ctx, email, password); err != nil {
		return err
	}
	return nil
}

// SignUpWithEmail registers a new account. The provider may require a
// separate confirmation step before the session becomes authenticated.
func (s *AuthSession) SignUpWithEmail(ctx context.Context, name, email, password string) error {
	if !s.configured {
		return ErrNotConfigured
	}
	if _, err := s.client.SignUp(ctx, name, email, password); err != nil {
		return err
	}
	return nil
}

// SignOut clears the provider session.
func (s *AuthSession) SignOut(ctx context.Context) error {
	if !s.configured {
		return ErrNotConfigured
	}
	return s.client.SignOut(ctx)
}

// IsAuthenticated reports whether a session is present.
func (s *AuthSession) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session != nil
}

// IsLoading reports whether the initial session fetch is still pending.
func (s *AuthSession) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Session returns the current provider session, nil when signed out.
func (s *AuthSession) Session() *provider.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}
