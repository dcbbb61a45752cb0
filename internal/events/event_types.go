package events

import (
	"time"

	"github.com/spec-kit/partner-hub/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSessionChanged      EventType = "session_changed"
	EventMemberInvited       EventType = "member_invited"
	EventMemberRoleChanged   EventType = "member_role_changed"
	EventMemberStatusChanged EventType = "member_status_changed"
)

// Event represents a discrete change emitted by the session layer.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	BusinessID string      `json:"business_id,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// SessionChangedPayload payload.
type SessionChangedPayload struct {
	UserID        string `json:"user_id,omitempty"`
	Email         string `json:"email,omitempty"`
	Authenticated bool   `json:"authenticated"`
}

// MemberInvitedPayload payload.
type MemberInvitedPayload struct {
	UserID string      `json:"user_id"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
}

// MemberRoleChangedPayload payload.
type MemberRoleChangedPayload struct {
	UserID  string      `json:"user_id"`
	OldRole domain.Role `json:"old_role"`
	NewRole domain.Role `json:"new_role"`
}

// MemberStatusChangedPayload payload.
type MemberStatusChangedPayload struct {
	UserID    string              `json:"user_id"`
	OldStatus domain.MemberStatus `json:"old_status"`
	NewStatus domain.MemberStatus `json:"new_status"`
}
