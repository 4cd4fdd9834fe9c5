// pkg/catalog/schema.go
package catalog

// Catalog is the published directory of opportunity types, sectors and
// enquiry categories that clients use to build filter and form controls.
type Catalog struct {
	Version           string            `json:"version"`
	LastUpdated       string            `json:"lastUpdated"`
	OpportunityTypes  []OpportunityType `json:"opportunityTypes"`
	Sectors           []Sector          `json:"sectors"`
	EnquiryCategories []string          `json:"enquiryCategories"`
}

type OpportunityType struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	Description string   `json:"description"`
	Audience    []string `json:"audience"`
}

type Sector struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}
