package orgstructure

// Archetype is the family of role templates a department maps onto.
type Archetype string

const (
	ArchetypeFinance Archetype = "finance"
	ArchetypeTrading Archetype = "trading"
	ArchetypeIT      Archetype = "it"
	ArchetypeGeneric Archetype = "generic"
)

// Department is the parsed form of a free-text organisation description.
type Department struct {
	Name           string   `json:"name"`
	Subdepartments []string `json:"subdepartments"`
	// Lines holds every non-blank input line, department line first.
	Lines []string `json:"lines"`
}

// Role is a recommended functional role for the target identity platform.
// Roles are regenerated on each analysis and never mutated afterwards.
type Role struct {
	BusinessFunction string  `json:"business_function"`
	RoleName         string  `json:"role_name"`
	Description      string  `json:"description"`
	GroupName        string  `json:"group_name"`
	DynamicGroupRule *string `json:"dynamic_group_rule,omitempty"`
}

// HasDynamicRule reports whether membership of the role's group is
// computed from user attributes.
func (r Role) HasDynamicRule() bool { return r.DynamicGroupRule != nil }
