// internal/matching/opportunity.go
package matching

import (
	"fmt"
	"strings"
	"time"

	"stp-connect/internal/models"
)

const (
	roleAffinityBonus    = 40
	keywordOverlapBonus  = 8
	industryMatchBonus   = 25
	sectorMatchBonus     = 10
	recencyBonus         = 5
	deadlineUrgencyBonus = 5

	recencyWindow  = 7 * 24 * time.Hour
	deadlineWindow = 14 * 24 * time.Hour
)

// rolePreferredTypes maps each role to the opportunity types it has an
// affinity for. Unknown roles simply miss the table and score zero.
var rolePreferredTypes = map[models.Role][]models.OpportunityType{
	models.RoleEntrepreneur: {models.OpportunityFunding, models.OpportunityPartnership, models.OpportunityIncubation, models.OpportunityMentorship},
	models.RoleResearcher:   {models.OpportunityFunding, models.OpportunityPartnership, models.OpportunityTraining},
	models.RoleSMME:         {models.OpportunityFunding, models.OpportunityTenders, models.OpportunityPartnership, models.OpportunityTraining},
	models.RoleStudent:      {models.OpportunityInternships, models.OpportunityBursaries, models.OpportunityTraining, models.OpportunityEmployment},
	models.RoleInvestor:     {models.OpportunityPartnership, models.OpportunityIncubation},
	models.RoleTenant:       {models.OpportunityTenders, models.OpportunityPartnership, models.OpportunityEmployment},
}

// ScoreOpportunity scores a single (profile, opportunity) pair. It is a
// pure function of its inputs and the supplied evaluation time. Missing
// optional fields contribute zero signal, never an error.
func ScoreOpportunity(profile models.Profile, opp models.Opportunity, now time.Time) models.OpportunityMatch {
	score := 0
	var reasons []string

	if hasAffinity(profile.Role, opp.Type) {
		score += roleAffinityBonus
		reasons = append(reasons, fmt.Sprintf("Perfect match for %ss", profile.Role))
	}

	oppKeywords := Keywords(opp.Description + " " + opp.Title)
	var shared []string
	for _, kw := range KeywordList(profile.Bio) {
		if oppKeywords[kw] {
			shared = append(shared, kw)
		}
	}
	if len(shared) > 0 {
		score += keywordOverlapBonus * len(shared)
		reasons = append(reasons, "Shared interests: "+joinFirst(shared, 3))
	}

	if profile.Organization != "" && opp.Category != "" {
		org := strings.ToLower(profile.Organization)
		cat := strings.ToLower(opp.Category)
		if strings.Contains(org, cat) || strings.Contains(cat, org) {
			score += industryMatchBonus
			reasons = append(reasons, "Industry match")
		}
	}

	if len(opp.Sectors) > 0 && profile.Bio != "" {
		bio := strings.ToLower(profile.Bio)
		var matched []string
		for _, sector := range opp.Sectors {
			if sector != "" && strings.Contains(bio, strings.ToLower(sector)) {
				matched = append(matched, sector)
			}
		}
		if len(matched) > 0 {
			score += sectorMatchBonus * len(matched)
			reasons = append(reasons, "Sector match: "+joinFirst(matched, 2))
		}
	}

	if !opp.CreatedAt.IsZero() && now.Sub(opp.CreatedAt) <= recencyWindow {
		score += recencyBonus
		reasons = append(reasons, "Recently posted")
	}

	if opp.Deadline != nil && opp.Deadline.After(now) && opp.Deadline.Sub(now) <= deadlineWindow {
		score += deadlineUrgencyBonus
		reasons = append(reasons, "Deadline approaching")
	}

	if len(reasons) == 0 {
		reasons = []string{"General match"}
	}

	return models.OpportunityMatch{
		Opportunity: opp,
		Score:       clampScore(score),
		Reasons:     reasons,
	}
}

func hasAffinity(role models.Role, typ models.OpportunityType) bool {
	for _, t := range rolePreferredTypes[role] {
		if t == typ {
			return true
		}
	}
	return false
}

func joinFirst(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}

func clampScore(score int) int {
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}
