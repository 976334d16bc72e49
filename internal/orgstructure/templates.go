package orgstructure

import (
	"sort"
	"strings"
)

// Template is a sample organisation input offered to users who want to see
// an analysis without typing their own environment.
type Template struct {
	Name         string   `json:"name"`
	Organization string   `json:"organization"`
	Groups       []string `json:"groups"`
	Applications []string `json:"applications"`
}

// GroupsText returns the groups one per line, as a user would paste them.
func (t Template) GroupsText() string { return strings.Join(t.Groups, "\n") }

// ApplicationsText returns the applications one per line.
func (t Template) ApplicationsText() string { return strings.Join(t.Applications, "\n") }

var templates = map[string]Template{
	"finance": {
		Name:         "finance",
		Organization: "Finance Department\n- Accounting\n- Financial Analysis\n- Treasury\n- Financial Reporting",
		Groups: []string{
			"FIN-Accountants", "FIN-Analysts", "FIN-Treasury", "FIN-Reporting",
			"FIN-Bloomberg-Users", "FIN-SAP-Basic", "FIN-SAP-Advanced",
			"FIN-Reports-Readers", "FIN-Reports-Writers", "FIN-DB-Readers", "FIN-DB-Writers",
		},
		Applications: []string{
			"Bloomberg Terminal", "SAP Financial Module", "Financial Reporting System",
			"Accounting Software", "Treasury Management System", "Internal Financial Database",
		},
	},
	"trading": {
		Name:         "trading",
		Organization: "Trading Department\n- Equities Trading\n- Fixed Income\n- FX Trading\n- Derivatives",
		Groups: []string{
			"Trading-Equities", "Trading-FixedIncome", "Trading-FX", "Trading-Derivatives",
			"Trading-Bloomberg", "Trading-Reuters", "Trading-Platform-Basic",
			"Trading-Platform-Advanced", "Trading-Platform-Admin", "Trading-Risk-Viewers",
			"Trading-DB-Readers", "Trading-DB-Writers",
		},
		Applications: []string{
			"Trading Platform", "Bloomberg Terminal", "Reuters Eikon",
			"Risk Management System", "Trading Database", "Regulatory Reporting Tool",
		},
	},
	"it": {
		Name:         "it",
		Organization: "IT Department\n- Infrastructure\n- Application Support\n- Service Desk\n- Security",
		Groups: []string{
			"IT-Admins", "IT-Infrastructure", "IT-AppSupport", "IT-ServiceDesk",
			"IT-Security", "IT-Dev", "IT-Monitoring", "IT-Network", "IT-Database",
			"IT-Cloud", "IT-Servers", "IT-Storage",
		},
		Applications: []string{
			"System Monitoring Tools", "IT Service Management Platform", "Network Management System",
			"Server Administration Tools", "Security Management Console", "Backup & Recovery System",
		},
	},
}

// LookupTemplate returns the named sample input.
func LookupTemplate(name string) (Template, bool) {
	t, ok := templates[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Template{}, false
	}
	t.Groups = append([]string(nil), t.Groups...)
	t.Applications = append([]string(nil), t.Applications...)
	return t, true
}

// TemplateNames returns the available template names, sorted.
func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
