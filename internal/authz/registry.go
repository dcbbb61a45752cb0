package authz

import "github.com/spec-kit/partner-hub/internal/domain"

// roleAbilities is the canonical role→ability table. It is total over the
// role enumeration and immutable at runtime; abilities are explicit per
// role, never inherited.
var roleAbilities = map[domain.Role][]domain.Ability{
	domain.RoleOwner: {
		domain.AbilityProfileEdit,
		domain.AbilityOffersCreateDraft,
		domain.AbilityOffersPublish,
		domain.AbilityPricingEditStandard,
		domain.AbilityPricingEditCritical,
		domain.AbilityReservationsManage,
	},
	domain.RoleManager: {
		domain.AbilityProfileEdit,
		domain.AbilityOffersCreateDraft,
		domain.AbilityOffersPublish,
		domain.AbilityPricingEditStandard,
		domain.AbilityReservationsManage,
	},
	domain.RoleStaff: {
		domain.AbilityOffersCreateDraft,
		domain.AbilityReservationsManage,
	},
}

var roleLabels = map[domain.Role]string{
	domain.RoleOwner:   "Owner",
	domain.RoleManager: "Manager",
	domain.RoleStaff:   "Staff",
}

// Can reports whether the role holds the ability. Pure lookup, defined for
// every (role, ability) pair; unknown roles hold nothing.
func Can(role domain.Role, ability domain.Ability) bool {
	for _, a := range roleAbilities[role] {
		if a == ability {
			return true
		}
	}
	return false
}

// AbilitiesFor returns a copy of the ability set held by the role.
func AbilitiesFor(role domain.Role) []domain.Ability {
	return append([]domain.Ability(nil), roleAbilities[role]...)
}

// RoleLabel returns the human-readable label for a role.
func RoleLabel(role domain.Role) string {
	if label, ok := roleLabels[role]; ok {
		return label
	}
	return string(role)
}

// PermissionPreview describes, per capability area, what each role may do.
// Display-only copy; never consult it to gate an action.
type PermissionPreview struct {
	ID          string
	Title       string
	Description string
	ByRole      map[domain.Role]string
}

var permissionPreview = []PermissionPreview{
	{
		ID:          "profile",
		Title:       "Profil prevadzky",
		Description: "Kontakt, otvaracie hodiny, verejne udaje.",
		ByRole: map[domain.Role]string{
			domain.RoleOwner:   "Plna editacia",
			domain.RoleManager: "Plna editacia",
			domain.RoleStaff:   "Iba citanie",
		},
	},
	{
		ID:          "offers",
		Title:       "Ponuky",
		Description: "Draft, publikovanie a ukoncenie kampani.",
		ByRole: map[domain.Role]string{
			domain.RoleOwner:   "Draft + publish + stop",
			domain.RoleManager: "Draft + publish + stop",
			domain.RoleStaff:   "Iba draft (bez publish)",
		},
	},
	{
		ID:          "pricing",
		Title:       "Ceny",
		Description: "Bezna zmena cien a kriticke zlavy.",
		ByRole: map[domain.Role]string{
			domain.RoleOwner:   "Bezne + kriticke zmeny",
			domain.RoleManager: "Bezne zmeny (kriticke iba po schvaleni)",
			domain.RoleStaff:   "Bez pristupu",
		},
	},
	{
		ID:          "reservations",
		Title:       "Rezervacie",
		Description: "Potvrdenie, check-in, no-show.",
		ByRole: map[domain.Role]string{
			domain.RoleOwner:   "Plna sprava",
			domain.RoleManager: "Plna sprava",
			domain.RoleStaff:   "Operativna sprava",
		},
	},
}

// PermissionPreviews returns the static preview table.
func PermissionPreviews() []PermissionPreview {
	return append([]PermissionPreview(nil), permissionPreview...)
}
