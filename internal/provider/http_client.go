package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/partner-hub/internal/config"
	"github.com/spec-kit/partner-hub/internal/events"
)

// HTTPClient talks to a GoTrue-style identity provider over REST. The last
// issued session is held in memory; there is no credential persistence.
type HTTPClient struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger

	mu      sync.Mutex
	session *Session
}

// NewHTTPClient builds a client from provider config.
func NewHTTPClient(cfg config.ProviderConfig, dispatcher events.Dispatcher, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    cfg.URL,
		anonKey:    cfg.AnonKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		dispatcher: dispatcher,
		logger:     logger,
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         struct {
		ID           string         `json:"id"`
		Email        string         `json:"email"`
		UserMetadata map[string]any `json:"user_metadata"`
	} `json:"user"`
}

type errorResponse struct {
	Msg              string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// message extracts whichever error field the provider populated.
func (e errorResponse) message() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.ErrorDescription != "":
		return e.ErrorDescription
	case e.Error != "":
		return e.Error
	}
	return ""
}

// accessClaims is the subset of access-token claims this client reads.
type accessClaims struct {
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
	jwt.RegisteredClaims
}

// SignInWithPassword exchanges credentials for a session.
func (c *HTTPClient) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	session, err := c.requestSession(ctx, "/auth/v1/token?grant_type=password", body)
	if err != nil {
		return nil, err
	}
	c.setSession(ctx, session)
	return session, nil
}

// SignUp registers a new account. The provider may still require email
// confirmation before the returned session becomes usable; that exchange is
// outside this client's control.
func (c *HTTPClient) SignUp(ctx context.Context, name, email, password string) (*Session, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
		"data":     map[string]string{"full_name": name},
	}
	session, err := c.requestSession(ctx, "/auth/v1/signup", body)
	if err != nil {
		return nil, err
	}
	c.setSession(ctx, session)
	return session, nil
}

// SignOut revokes the current session and clears local state.
func (c *HTTPClient) SignOut(ctx context.Context) error {
	c.mu.Lock()
	session := c.session
	c.mu.Unlock()

	if session != nil {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/v1/logout", nil)
		if err != nil {
			return err
		}
		req.Header.Set("apikey", c.anonKey)
		req.Header.Set("Authorization", "Bearer "+session.AccessToken)
		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Warn("provider logout failed", zap.Error(err))
		} else {
			resp.Body.Close()
		}
	}

	c.setSession(ctx, nil)
	return nil
}

// CurrentSession returns the last issued session, nil when signed out.
func (c *HTTPClient) CurrentSession(_ context.Context) (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session, nil
}

func (c *HTTPClient) requestSession(ctx context.Context, path string, body any) (*Session, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		var provErr errorResponse
		_ = json.Unmarshal(raw, &provErr)
		if msg := provErr.message(); msg != "" {
			// provider error text passes through verbatim
			return nil, errors.New(msg)
		}
		return nil, fmt.Errorf("provider request failed with status %d", resp.StatusCode)
	}

	var tokens tokenResponse
	if err := json.Unmarshal(raw, &tokens); err != nil {
		return nil, fmt.Errorf("decode provider response: %w", err)
	}
	if tokens.AccessToken == "" {
		return nil, errors.New("provider returned no access token")
	}

	return c.buildSession(tokens), nil
}

// buildSession merges the token response with claims decoded from the
// access token. The token is not verified locally; the provider signed it
// and this client only reads identity hints from it.
func (c *HTTPClient) buildSession(tokens tokenResponse) *Session {
	session := &Session{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(tokens.ExpiresIn) * time.Second),
		Identity: Identity{
			ID:    tokens.User.ID,
			Email: tokens.User.Email,
			Name:  metadataName(tokens.User.UserMetadata),
		},
	}

	claims := &accessClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokens.AccessToken, claims); err == nil {
		if claims.ExpiresAt != nil {
			session.ExpiresAt = claims.ExpiresAt.Time
		}
		if session.Identity.ID == "" {
			session.Identity.ID = claims.Subject
		}
		if session.Identity.Email == "" {
			session.Identity.Email = claims.Email
		}
		if session.Identity.Name == "" {
			session.Identity.Name = metadataName(claims.UserMetadata)
		}
	}
	return session
}

func metadataName(metadata map[string]any) string {
	if metadata == nil {
		return ""
	}
	if name, ok := metadata["full_name"].(string); ok {
		return name
	}
	return ""
}

// setSession stores the latest session and publishes the change.
func (c *HTTPClient) setSession(ctx context.Context, session *Session) {
	c.mu.Lock()
	c.session = session
	c.mu.Unlock()

	if c.dispatcher == nil {
		return
	}

	payload := events.SessionChangedPayload{Authenticated: session != nil}
	if session != nil {
		payload.UserID = session.Identity.ID
		payload.Email = session.Identity.Email
	}
	_ = c.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSessionChanged,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
