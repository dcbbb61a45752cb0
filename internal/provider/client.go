package provider

import (
	"context"
	"time"
)

// Identity is the authenticated user as reported by the provider.
type Identity struct {
	ID    string
	Email string
	Name  string
}

// Session carries provider-issued credentials plus the decoded identity.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	Identity     Identity
}

// Client is the surface this core consumes from the external identity
// provider. Implementations publish a session_changed event after every
// successful credential mutation.
type Client interface {
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, name, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
	CurrentSession(ctx context.Context) (*Session, error)
}
