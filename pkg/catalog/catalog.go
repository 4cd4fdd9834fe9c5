// pkg/catalog/catalog.go
package catalog

import (
	"encoding/json"
	"os"
)

func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cat Catalog
	err = json.Unmarshal(data, &cat)
	return &cat, err
}

// Default returns the built-in catalog used when no catalog file is
// deployed alongside the service.
func Default() *Catalog {
	return &Catalog{
		Version: "1.0.0",
		OpportunityTypes: []OpportunityType{
			{ID: "Funding", DisplayName: "Funding", Description: "Grants and seed funding", Audience: []string{"Entrepreneur", "Researcher", "SMME"}},
			{ID: "Partnership", DisplayName: "Partnership", Description: "Joint ventures and collaborations", Audience: []string{"Entrepreneur", "Researcher", "SMME", "Investor", "Tenant"}},
			{ID: "Mentorship", DisplayName: "Mentorship", Description: "Guidance programmes", Audience: []string{"Entrepreneur"}},
			{ID: "Incubation", DisplayName: "Incubation", Description: "Incubator and accelerator intake", Audience: []string{"Entrepreneur", "Investor"}},
			{ID: "Tenders", DisplayName: "Tenders", Description: "Procurement opportunities", Audience: []string{"SMME", "Tenant"}},
			{ID: "Training", DisplayName: "Training", Description: "Skills development programmes", Audience: []string{"Researcher", "SMME", "Student"}},
			{ID: "Internships", DisplayName: "Internships", Description: "Workplace experience placements", Audience: []string{"Student"}},
			{ID: "Bursaries", DisplayName: "Bursaries", Description: "Study funding", Audience: []string{"Student"}},
			{ID: "Employment", DisplayName: "Employment", Description: "Open positions in the park", Audience: []string{"Student", "Tenant"}},
		},
		Sectors: []Sector{
			{ID: "agritech", DisplayName: "Agritech"},
			{ID: "aquaculture", DisplayName: "Aquaculture"},
			{ID: "automotive", DisplayName: "Automotive"},
			{ID: "ict", DisplayName: "ICT"},
			{ID: "renewable-energy", DisplayName: "Renewable Energy"},
			{ID: "pharmaceuticals", DisplayName: "Pharmaceuticals"},
			{ID: "manufacturing", DisplayName: "Manufacturing"},
		},
		EnquiryCategories: []string{"general", "tenancy", "funding", "partnership", "media"},
	}
}
