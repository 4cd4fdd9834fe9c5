// internal/models/profile.go
package models

// Role is a platform user role. Values outside this set are tolerated
// by the matching engine and simply score zero for role affinity.
type Role string

const (
	RoleEntrepreneur Role = "Entrepreneur"
	RoleResearcher   Role = "Researcher"
	RoleSMME         Role = "SMME"
	RoleStudent      Role = "Student"
	RoleInvestor     Role = "Investor"
	RoleTenant       Role = "Tenant"
)

type Profile struct {
	ID           string `json:"id"`
	Role         Role   `json:"role"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Bio          string `json:"bio,omitempty"`
	Organization string `json:"organization,omitempty"`
	Address      string `json:"address,omitempty"`
}
