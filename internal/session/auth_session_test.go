package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/partner-hub/internal/config"
	"github.com/spec-kit/partner-hub/internal/events"
	"github.com/spec-kit/partner-hub/internal/provider"
)

// fakeClient is a controllable provider.Client for session tests.
type fakeClient struct {
	mu      sync.Mutex
	session *provider.Session
	signErr error
	block   chan struct{}
}

func (f *fakeClient) setSession(session *provider.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session = session
}

func (f *fakeClient) SignInWithPassword(_ context.Context, email, _ string) (*provider.Session, error) {
	if f.signErr != nil {
		return nil, f.signErr
	}
	session := &provider.Session{Identity: provider.Identity{ID: "acc-1", Email: email}}
	f.setSession(session)
	return session, nil
}

func (f *fakeClient) SignUp(_ context.Context, name, email, _ string) (*provider.Session, error) {
	if f.signErr != nil {
		return nil, f.signErr
	}
	session := &provider.Session{Identity: provider.Identity{ID: "acc-1", Email: email, Name: name}}
	f.setSession(session)
	return session, nil
}

func (f *fakeClient) SignOut(context.Context) error {
	f.setSession(nil)
	return nil
}

func (f *fakeClient) CurrentSession(context.Context) (*provider.Session, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session, nil
}

var configuredProvider = config.ProviderConfig{URL: "http://127.0.0.1:9999", AnonKey: "anon"}

func TestUnconfiguredProviderIsSettledAndFixed(t *testing.T) {
	sess := NewAuthSession(config.ProviderConfig{}, &fakeClient{}, events.NewInMemoryDispatcher(), zap.NewNop())
	ctx := context.Background()

	assert.False(t, sess.IsLoading(), "unconfigured session must never hang in loading")
	sess.Start(ctx)

	assert.ErrorIs(t, sess.SignInWithEmail(ctx, "a@b.sk", "pw"), ErrNotConfigured)
	assert.ErrorIs(t, sess.SignUpWithEmail(ctx, "A", "a@b.sk", "pw"), ErrNotConfigured)
	assert.ErrorIs(t, sess.SignOut(ctx), ErrNotConfigured)
	assert.False(t, sess.IsAuthenticated())

	sess.Close()
}

func TestInitialFetchResolvesExistingSession(t *testing.T) {
	client := &fakeClient{}
	client.setSession(&provider.Session{Identity: provider.Identity{ID: "acc-1"}})

	sess := NewAuthSession(configuredProvider, client, events.NewInMemoryDispatcher(), zap.NewNop())
	defer sess.Close()

	assert.True(t, sess.IsLoading())
	sess.Start(context.Background())

	require.Eventually(t, func() bool { return !sess.IsLoading() }, time.Second, 5*time.Millisecond)
	assert.True(t, sess.IsAuthenticated())
	require.NotNil(t, sess.Session())
	assert.Equal(t, "acc-1", sess.Session().Identity.ID)
}

func TestSessionChangedEventIsFolded(t *testing.T) {
	client := &fakeClient{}
	dispatcher := events.NewInMemoryDispatcher()

	sess := NewAuthSession(configuredProvider, client, dispatcher, zap.NewNop())
	defer sess.Close()
	sess.Start(context.Background())

	require.Eventually(t, func() bool { return !sess.IsLoading() }, time.Second, 5*time.Millisecond)
	require.False(t, sess.IsAuthenticated())

	client.setSession(&provider.Session{Identity: provider.Identity{ID: "acc-2"}})
	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventSessionChanged}))
	assert.True(t, sess.IsAuthenticated())

	// last notification wins: a sign-out replaces, never merges
	client.setSession(nil)
	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventSessionChanged}))
	assert.False(t, sess.IsAuthenticated())
}

func TestLateFetchResultDiscardedAfterClose(t *testing.T) {
	client := &fakeClient{block: make(chan struct{})}
	client.setSession(&provider.Session{Identity: provider.Identity{ID: "acc-1"}})

	sess := NewAuthSession(configuredProvider, client, events.NewInMemoryDispatcher(), zap.NewNop())
	sess.Start(context.Background())
	sess.Close()

	close(client.block)
	time.Sleep(20 * time.Millisecond)

	assert.False(t, sess.IsAuthenticated(), "fetch resolving after teardown must be discarded")
}

func TestCloseUnsubscribesFromEvents(t *testing.T) {
	client := &fakeClient{}
	dispatcher := events.NewInMemoryDispatcher()

	sess := NewAuthSession(configuredProvider, client, dispatcher, zap.NewNop())
	sess.Start(context.Background())
	require.Eventually(t, func() bool { return !sess.IsLoading() }, time.Second, 5*time.Millisecond)

	sess.Close()

	client.setSession(&provider.Session{Identity: provider.Identity{ID: "acc-3"}})
	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventSessionChanged}))
	assert.False(t, sess.IsAuthenticated())
}

func TestProviderErrorPassesThroughVerbatim(t *testing.T) {
	client := &fakeClient{signErr: errors.New("Invalid login credentials")}

	sess := NewAuthSession(configuredProvider, client, events.NewInMemoryDispatcher(), zap.NewNop())
	defer sess.Close()

	err := sess.SignInWithEmail(context.Background(), "a@b.sk", "bad")
	require.Error(t, err)
	assert.Equal(t, "Invalid login credentials", err.Error())
}
