package directory

import (
	"sync"

	"github.com/spec-kit/partner-hub/internal/domain"
	apperrors "github.com/spec-kit/partner-hub/pkg/util"
)

// Sentinel results for mutations. A failed mutation never changes state;
// callers that want swallow-silently semantics simply discard the error.
var (
	ErrBusinessNotFound = apperrors.NewNotFound("business", nil)
	ErrMemberNotFound   = apperrors.NewNotFound("member", nil)
	ErrDuplicateMember  = apperrors.NewConflict("member already exists", nil)
)

// MemberInvite carries the fields a caller supplies when inviting a member.
// Status is assigned by the directory, never by the caller.
type MemberInvite struct {
	UserID string
	Name   string
	Email  string
	Role   domain.Role
}

// Directory owns the canonical set of business entities and their
// membership lists. Every mutation names its target business explicitly.
type Directory interface {
	List() []domain.BusinessEntity
	Find(id string) (domain.BusinessEntity, bool)
	AddMember(businessID string, invite MemberInvite) error
	SetMemberRole(businessID, userID string, role domain.Role) error
	SetMemberStatus(businessID, userID string, status domain.MemberStatus) error
}

type inMemoryDirectory struct {
	mu         sync.RWMutex
	order      []string
	businesses map[string]*domain.BusinessEntity
}

// NewInMemoryDirectory builds a directory seeded with the given entities.
// Seeding happens once; later change goes through the mutation operations.
func NewInMemoryDirectory(seed []domain.BusinessEntity) Directory {
	d := &inMemoryDirectory{
		businesses: make(map[string]*domain.BusinessEntity, len(seed)),
	}
	for i := range seed {
		if _, exists := d.businesses[seed[i].ID]; exists {
			continue
		}
		entity := seed[i].Clone()
		d.businesses[entity.ID] = &entity
		d.order = append(d.order, entity.ID)
	}
	return d
}

// List returns all businesses in insertion order.
func (d *inMemoryDirectory) List() []domain.BusinessEntity {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]domain.BusinessEntity, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.businesses[id].Clone())
	}
	return out
}

// Find returns a copy of the business with the given id.
func (d *inMemoryDirectory) Find(id string) (domain.BusinessEntity, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	entity, ok := d.businesses[id]
	if !ok {
		return domain.BusinessEntity{}, false
	}
	return entity.Clone(), true
}

// AddMember appends a new member with status invited. Duplicate user ids
// within one business are rejected.
func (d *inMemoryDirectory) AddMember(businessID string, invite MemberInvite) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	entity, ok := d.businesses[businessID]
	if !ok {
		return ErrBusinessNotFound
	}
	if _, exists := entity.FindMember(invite.UserID); exists {
		return ErrDuplicateMember
	}

	entity.Members = append(entity.Members, domain.Member{
		UserID: invite.UserID,
		Name:   invite.Name,
		Email:  invite.Email,
		Role:   invite.Role,
		Status: domain.MemberStatusInvited,
	})
	return nil
}

// SetMemberRole replaces the member's role, leaving status unchanged.
func (d *inMemoryDirectory) SetMemberRole(businessID, userID string, role domain.Role) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	entity, ok := d.businesses[businessID]
	if !ok {
		return ErrBusinessNotFound
	}
	member, ok := entity.FindMember(userID)
	if !ok {
		return ErrMemberNotFound
	}
	member.Role = role
	return nil
}

// SetMemberStatus replaces the member's status, leaving role unchanged.
func (d *inMemoryDirectory) SetMemberStatus(businessID, userID string, status domain.MemberStatus) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	entity, ok := d.businesses[businessID]
	if !ok {
		return ErrBusinessNotFound
	}
	member, ok := entity.FindMember(userID)
	if !ok {
		return ErrMemberNotFound
	}
	member.Status = status
	return nil
}
