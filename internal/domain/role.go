package domain

// Role enumerates privilege tiers a user can hold within one business.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// Ability is a single granular permission checked independently of any
// role hierarchy.
type Ability string

const (
	AbilityProfileEdit         Ability = "profile.edit"
	AbilityOffersCreateDraft   Ability = "offers.create_draft"
	AbilityOffersPublish       Ability = "offers.publish"
	AbilityPricingEditStandard Ability = "pricing.edit_standard"
	AbilityPricingEditCritical Ability = "pricing.edit_critical"
	AbilityReservationsManage  Ability = "reservations.manage"
)

// Roles lists all known roles in privilege order, highest first.
func Roles() []Role {
	return []Role{RoleOwner, RoleManager, RoleStaff}
}

// Abilities lists every ability the registry knows about.
func Abilities() []Ability {
	return []Ability{
		AbilityProfileEdit,
		AbilityOffersCreateDraft,
		AbilityOffersPublish,
		AbilityPricingEditStandard,
		AbilityPricingEditCritical,
		AbilityReservationsManage,
	}
}
