// internal/models/opportunity.go
package models

import "time"

// OpportunityType drives role-affinity scoring.
type OpportunityType string

const (
	OpportunityFunding     OpportunityType = "Funding"
	OpportunityPartnership OpportunityType = "Partnership"
	OpportunityMentorship  OpportunityType = "Mentorship"
	OpportunityIncubation  OpportunityType = "Incubation"
	OpportunityTenders     OpportunityType = "Tenders"
	OpportunityTraining    OpportunityType = "Training"
	OpportunityInternships OpportunityType = "Internships"
	OpportunityBursaries   OpportunityType = "Bursaries"
	OpportunityEmployment  OpportunityType = "Employment"
)

const (
	OpportunityStatusActive = "active"
	OpportunityStatusClosed = "closed"
)

type Opportunity struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Type        OpportunityType `json:"type"`
	Category    string          `json:"category,omitempty"`
	Sectors     []string        `json:"sectors,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	Deadline    *time.Time      `json:"deadline,omitempty"`
}
