package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/partner-hub/internal/authz"
	"github.com/spec-kit/partner-hub/internal/directory"
	"github.com/spec-kit/partner-hub/internal/domain"
	"github.com/spec-kit/partner-hub/internal/events"
)

// BusinessSession tracks which business is active for the current user and
// derives the user's effective role there. Mutation helpers forward the
// selected business id to the directory explicitly.
type BusinessSession struct {
	directory     directory.Directory
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	currentUserID string

	selectedID string
}

// NewBusinessSession builds a session for the given user. The first
// business in directory order is auto-selected when one exists.
func NewBusinessSession(dir directory.Directory, currentUserID string, dispatcher events.Dispatcher, logger *zap.Logger) *BusinessSession {
	s := &BusinessSession{
		directory:     dir,
		dispatcher:    dispatcher,
		logger:        logger,
		currentUserID: currentUserID,
	}
	if businesses := dir.List(); len(businesses) > 0 {
		s.selectedID = businesses[0].ID
	}
	return s
}

// CurrentUserID returns the identity this session acts as.
func (s *BusinessSession) CurrentUserID() string {
	return s.currentUserID
}

// Businesses lists all businesses in the directory.
func (s *BusinessSession) Businesses() []domain.BusinessEntity {
	return s.directory.List()
}

// SelectedBusinessID returns the active business id, empty when none.
func (s *BusinessSession) SelectedBusinessID() string {
	return s.selectedID
}

// SelectedBusiness resolves the active business entity.
func (s *BusinessSession) SelectedBusiness() (domain.BusinessEntity, bool) {
	if s.selectedID == "" {
		return domain.BusinessEntity{}, false
	}
	return s.directory.Find(s.selectedID)
}

// SwitchBusiness moves the session to the given business. The transition is
// rejected, and false returned, when the id does not resolve.
func (s *BusinessSession) SwitchBusiness(id string) bool {
	if _, ok := s.directory.Find(id); !ok {
		s.logger.Debug("rejected switch to unknown business", zap.String("business_id", id))
		return false
	}
	s.selectedID = id
	return true
}

// ActiveRole derives the current user's role within the selected business.
// Recomputed on every read. Missing membership, an unselected business, and
// a disabled membership all fall back to least privilege.
func (s *BusinessSession) ActiveRole() domain.Role {
	business, ok := s.SelectedBusiness()
	if !ok {
		return domain.RoleStaff
	}
	member, ok := business.FindMember(s.currentUserID)
	if !ok || member.Status == domain.MemberStatusDisabled {
		return domain.RoleStaff
	}
	return member.Role
}

// Can reports whether the active role holds the ability.
func (s *BusinessSession) Can(ability domain.Ability) bool {
	return authz.Can(s.ActiveRole(), ability)
}

// InviteMember adds a member to the selected business with status invited.
func (s *BusinessSession) InviteMember(ctx context.Context, invite directory.MemberInvite) error {
	if s.selectedID == "" {
		return directory.ErrBusinessNotFound
	}
	if err := s.directory.AddMember(s.selectedID, invite); err != nil {
		return err
	}

	s.publish(ctx, events.EventMemberInvited, events.MemberInvitedPayload{
		UserID: invite.UserID,
		Name:   invite.Name,
		Email:  invite.Email,
		Role:   invite.Role,
	})
	return nil
}

// UpdateMemberRole replaces a member's role in the selected business.
func (s *BusinessSession) UpdateMemberRole(ctx context.Context, userID string, role domain.Role) error {
	if s.selectedID == "" {
		return directory.ErrBusinessNotFound
	}
	oldRole, _ := s.memberRole(userID)
	if err := s.directory.SetMemberRole(s.selectedID, userID, role); err != nil {
		return err
	}

	s.publish(ctx, events.EventMemberRoleChanged, events.MemberRoleChangedPayload{
		UserID:  userID,
		OldRole: oldRole,
		NewRole: role,
	})
	return nil
}

// SetMemberStatus replaces a member's status in the selected business.
func (s *BusinessSession) SetMemberStatus(ctx context.Context, userID string, status domain.MemberStatus) error {
	if s.selectedID == "" {
		return directory.ErrBusinessNotFound
	}
	oldStatus, _ := s.memberStatus(userID)
	if err := s.directory.SetMemberStatus(s.selectedID, userID, status); err != nil {
		return err
	}

	s.publish(ctx, events.EventMemberStatusChanged, events.MemberStatusChangedPayload{
		UserID:    userID,
		OldStatus: oldStatus,
		NewStatus: status,
	})
	return nil
}

func (s *BusinessSession) memberRole(userID string) (domain.Role, bool) {
	business, ok := s.SelectedBusiness()
	if !ok {
		return "", false
	}
	member, ok := business.FindMember(userID)
	if !ok {
		return "", false
	}
	return member.Role, true
}

func (s *BusinessSession) memberStatus(userID string) (domain.MemberStatus, bool) {
	business, ok := s.SelectedBusiness()
	if !ok {
		return "", false
	}
	member, ok := business.FindMember(userID)
	if !ok {
		return "", false
	}
	return member.Status, true
}

func (s *BusinessSession) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		BusinessID: s.selectedID,
		Timestamp:  time.Now(),
		Payload:    payload,
	})
}
