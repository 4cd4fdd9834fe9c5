// internal/matching/ranker.go
package matching

import (
	"sort"
	"time"

	"stp-connect/internal/models"
)

const (
	// DefaultLimit is used when the caller does not request a result count.
	DefaultLimit = 5
	// MinScore is the exclusive threshold below which matches are dropped.
	MinScore = 20
)

// RankOpportunities scores every opportunity for the profile, sorts
// descending by score (stable, so input order breaks ties), truncates to
// limit and drops anything scoring MinScore or below.
func RankOpportunities(profile models.Profile, opps []models.Opportunity, limit int, now time.Time) []models.OpportunityMatch {
	if limit <= 0 {
		limit = DefaultLimit
	}

	matches := make([]models.OpportunityMatch, 0, len(opps))
	for _, opp := range opps {
		matches = append(matches, ScoreOpportunity(profile, opp, now))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := matches[:0]
	for _, m := range matches {
		if m.Score > MinScore {
			out = append(out, m)
		}
	}
	return out
}

// RankPeers scores every candidate profile against the requesting user
// and returns the best matches, excluding the user themselves. The same
// sort, truncate and threshold rules as RankOpportunities apply.
func RankPeers(user models.Profile, candidates []models.Profile, limit int) []models.PeerMatch {
	if limit <= 0 {
		limit = DefaultLimit
	}

	matches := make([]models.PeerMatch, 0, len(candidates))
	for _, cand := range candidates {
		if cand.ID == user.ID {
			continue
		}
		matches = append(matches, models.PeerMatch{
			Profile:       cand,
			Compatibility: ScoreCompatibility(user, cand),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Compatibility.Score > matches[j].Compatibility.Score
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := matches[:0]
	for _, m := range matches {
		if m.Compatibility.Score > MinScore {
			out = append(out, m)
		}
	}
	return out
}
