// internal/matching/compatibility.go
package matching

import (
	"strings"

	"stp-connect/internal/models"
)

const (
	highlyCompatibleBonus = 40
	compatibleBonus       = 25
	sameRoleBonus         = 15
	sharedBioTokenBonus   = 12
	sameOrgBonus          = 20
	similarOrgBonus       = 10
	sameLocationBonus     = 10

	compatibilityHighThreshold   = 70
	compatibilityMediumThreshold = 40
)

type roleCompatibility struct {
	highly     []models.Role
	compatible []models.Role
}

// roleCompatibilityTable is keyed by the initiating user's role, so
// compatibility is directional: ScoreCompatibility(a, b) need not equal
// ScoreCompatibility(b, a).
var roleCompatibilityTable = map[models.Role]roleCompatibility{
	models.RoleEntrepreneur: {
		highly:     []models.Role{models.RoleInvestor, models.RoleResearcher},
		compatible: []models.Role{models.RoleSMME, models.RoleTenant, models.RoleStudent},
	},
	models.RoleResearcher: {
		highly:     []models.Role{models.RoleEntrepreneur, models.RoleInvestor},
		compatible: []models.Role{models.RoleStudent, models.RoleTenant},
	},
	models.RoleSMME: {
		highly:     []models.Role{models.RoleInvestor, models.RoleTenant},
		compatible: []models.Role{models.RoleEntrepreneur, models.RoleResearcher},
	},
	models.RoleStudent: {
		highly:     []models.Role{models.RoleResearcher, models.RoleEntrepreneur},
		compatible: []models.Role{models.RoleSMME, models.RoleTenant},
	},
	models.RoleInvestor: {
		highly:     []models.Role{models.RoleEntrepreneur, models.RoleSMME},
		compatible: []models.Role{models.RoleResearcher, models.RoleTenant},
	},
	models.RoleTenant: {
		highly:     []models.Role{models.RoleSMME, models.RoleEntrepreneur},
		compatible: []models.Role{models.RoleInvestor, models.RoleResearcher},
	},
}

// ScoreCompatibility scores how well user2 complements user1. The role
// lookup is keyed by user1's role, which makes the result directional.
func ScoreCompatibility(user1, user2 models.Profile) models.CompatibilityScore {
	score := 0
	var reasons []string

	compat, knownRole := roleCompatibilityTable[user1.Role]
	switch {
	case containsRole(compat.highly, user2.Role):
		score += highlyCompatibleBonus
		reasons = append(reasons, "Highly complementary roles")
	case containsRole(compat.compatible, user2.Role):
		score += compatibleBonus
		reasons = append(reasons, "Complementary roles")
	case knownRole && user1.Role == user2.Role:
		score += sameRoleBonus
		reasons = append(reasons, "Same role - peer networking")
	}

	otherBio := Keywords(user2.Bio)
	var shared []string
	for _, kw := range KeywordList(user1.Bio) {
		if len(kw) > 4 && otherBio[kw] {
			shared = append(shared, kw)
		}
	}
	if len(shared) > 0 {
		score += sharedBioTokenBonus * len(shared)
		reasons = append(reasons, "Shared interests: "+joinFirst(shared, 2))
	}

	if user1.Organization != "" && user2.Organization != "" {
		if strings.EqualFold(user1.Organization, user2.Organization) {
			score += sameOrgBonus
			reasons = append(reasons, "Same organization")
		} else if shareOrgWord(user1.Organization, user2.Organization) {
			score += similarOrgBonus
			reasons = append(reasons, "Similar organizations")
		}
	}

	if user1.Address != "" && user2.Address != "" {
		a := strings.ToLower(user1.Address)
		b := strings.ToLower(user2.Address)
		if strings.Contains(a, b) || strings.Contains(b, a) {
			score += sameLocationBonus
			reasons = append(reasons, "Same location")
		}
	}

	if len(reasons) == 0 {
		reasons = []string{"General compatibility"}
	}

	final := clampScore(score)
	return models.CompatibilityScore{
		Score:   final,
		Reasons: reasons,
		Level:   levelFor(final),
	}
}

func levelFor(score int) models.CompatibilityLevel {
	switch {
	case score >= compatibilityHighThreshold:
		return models.CompatibilityHigh
	case score >= compatibilityMediumThreshold:
		return models.CompatibilityMedium
	default:
		return models.CompatibilityLow
	}
}

func containsRole(roles []models.Role, role models.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// shareOrgWord reports whether the two organization names share a word
// longer than three characters.
func shareOrgWord(org1, org2 string) bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(org1)) {
		if len(w) > 3 {
			words[w] = true
		}
	}
	for _, w := range strings.Fields(strings.ToLower(org2)) {
		if len(w) > 3 && words[w] {
			return true
		}
	}
	return false
}
