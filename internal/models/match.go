// internal/models/match.go
package models

// CompatibilityLevel is a coarse bucket derived from a compatibility score.
type CompatibilityLevel string

const (
	CompatibilityHigh   CompatibilityLevel = "high"
	CompatibilityMedium CompatibilityLevel = "medium"
	CompatibilityLow    CompatibilityLevel = "low"
)

// OpportunityMatch is a scored (profile, opportunity) pair. Computed per
// request and never persisted.
type OpportunityMatch struct {
	Opportunity Opportunity `json:"opportunity"`
	Score       int         `json:"score"`
	Reasons     []string    `json:"reasons"`
}

// CompatibilityScore is a scored (profile, profile) pair.
type CompatibilityScore struct {
	Score   int                `json:"score"`
	Reasons []string           `json:"reasons"`
	Level   CompatibilityLevel `json:"level"`
}

// PeerMatch pairs a candidate profile with its compatibility to the
// requesting user.
type PeerMatch struct {
	Profile       Profile            `json:"profile"`
	Compatibility CompatibilityScore `json:"compatibility"`
}
