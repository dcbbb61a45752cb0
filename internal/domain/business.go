package domain

// MemberStatus represents lifecycle states for a business member.
type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "active"
	MemberStatusInvited  MemberStatus = "invited"
	MemberStatusDisabled MemberStatus = "disabled"
)

// Vertical categorizes a business entity.
type Vertical string

const (
	VerticalGastro  Vertical = "gastro"
	VerticalFitness Vertical = "fitness"
)

// Member associates a user identity with a role and status inside one
// business entity. Status is independent of role; a disabled member keeps
// its last role but holds no effective privileges.
type Member struct {
	UserID string
	Name   string
	Email  string
	Role   Role
	Status MemberStatus
}

// BusinessEntity is a tenant unit with its own membership list. UserID
// values are unique within one entity.
type BusinessEntity struct {
	ID       string
	Name     string
	Vertical Vertical
	City     string
	Members  []Member
}

// FindMember returns the member with the given user id, if present.
func (b *BusinessEntity) FindMember(userID string) (*Member, bool) {
	for i := range b.Members {
		if b.Members[i].UserID == userID {
			return &b.Members[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy so callers can never mutate directory state
// through a returned entity.
func (b *BusinessEntity) Clone() BusinessEntity {
	clone := *b
	clone.Members = append([]Member(nil), b.Members...)
	return clone
}
