package migration

import (
	"strings"
)

// LicenseRecommendation pairs an application with how its licences are
// handled today and how they should be handled through groups.
type LicenseRecommendation struct {
	Application string `json:"application"`
	Current     string `json:"current"`
	Recommended string `json:"recommended"`
	// LicenseGroup is the group to create, empty when licences stay
	// enterprise-wide.
	LicenseGroup string `json:"license_group,omitempty"`
}

type licensePolicy struct {
	current     string
	group       string
	recommended string
}

var knownLicenses = map[string]licensePolicy{
	"Bloomberg Terminal": {
		current:     "Individual named user licenses manually assigned",
		group:       "LICENSE-Bloomberg",
		recommended: "Create LICENSE-Bloomberg group in Entra ID, assign licenses to the group, and make it a member of relevant role groups",
	},
	"Reuters Eikon": {
		current:     "Individual named user licenses manually assigned",
		group:       "LICENSE-Reuters",
		recommended: "Create LICENSE-Reuters group in Entra ID, assign licenses to the group, and make it a member of relevant role groups",
	},
	"Trading Platform": {
		current:     "Mix of individual and concurrent licenses",
		group:       "LICENSE-Trading-Platform",
		recommended: "Create LICENSE-Trading-Platform group with license assignment, implement license reclamation process for inactive users",
	},
	"SAP Financial Module": {
		current:     "Role-based licenses managed in SAP",
		group:       "LICENSE-SAP-Finance",
		recommended: "Create LICENSE-SAP-Finance group in Entra ID, integrate with SAP using SCIM connector, automate provisioning based on role assignment",
	},
	"Financial Reporting System": {
		current:     "Department-wide license with individual access",
		recommended: "Maintain enterprise license, use Entra ID groups for access control without license management",
	},
	"System Monitoring Tools": {
		current:     "IT department licenses manually assigned",
		group:       "LICENSE-Monitoring",
		recommended: "Create LICENSE-Monitoring group in Entra ID, implement concurrent license pool for optimal utilization",
	},
}

// RecommendLicense returns the recommendation for app. Applications
// without a known policy get a LICENSE-<name> group.
func RecommendLicense(app string) LicenseRecommendation {
	if p, ok := knownLicenses[app]; ok {
		return LicenseRecommendation{Application: app, Current: p.current, Recommended: p.recommended, LicenseGroup: p.group}
	}
	group := "LICENSE-" + strings.Join(strings.Fields(app), "-")
	return LicenseRecommendation{
		Application:  app,
		Current:      "Manual license assignment and tracking",
		Recommended:  "Create " + group + " group in Entra ID, assign licenses to the group instead of individual users",
		LicenseGroup: group,
	}
}
