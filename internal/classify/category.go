// Package classify maps directory group labels onto a fixed, ordered set of
// permission categories.
package classify

import "strings"

// Category is a permission category a group label is classified into.
type Category string

const (
	Administrative   Category = "Administrative"
	ReadOnly         Category = "ReadOnly"
	DataModification Category = "DataModification"
	Database         Category = "Database"
	Application      Category = "Application"
	MarketData       Category = "MarketData"
	Reporting        Category = "Reporting"
	Compliance       Category = "Compliance"
	Trading          Category = "Trading"
	Financial        Category = "Financial"
	Technical        Category = "Technical"
	General          Category = "General"
)

// rule matches a label when any keyword is a substring of the lower-cased label.
type rule struct {
	category Category
	keywords []string
}

// rules are evaluated top to bottom; the first match wins, so a label such as
// "FIN-DB-Readers" lands in ReadOnly rather than Database or Financial.
var rules = []rule{
	{Administrative, []string{"admin", "manage"}},
	{ReadOnly, []string{"read", "view"}},
	{DataModification, []string{"write", "edit"}},
	{Database, []string{"db", "database"}},
	{Application, []string{"app", "application"}},
	{MarketData, []string{"bloomberg", "reuters"}},
	{Reporting, []string{"report"}},
	{Compliance, []string{"compliance", "regul"}},
	{Trading, []string{"trad"}},
	{Financial, []string{"fin"}},
	{Technical, []string{"it", "tech"}},
}

var descriptions = map[Category]string{
	Administrative:   "High-privilege permissions for system administration and management",
	ReadOnly:         "View-only access to data and applications",
	DataModification: "Ability to create, edit, and update data",
	Database:         "Access to specific databases and data stores",
	Application:      "Access to business applications and software",
	MarketData:       "Access to financial market data services and tools",
	Reporting:        "Ability to run and generate reports",
	Compliance:       "Access to compliance-related systems and data",
	Trading:          "Permissions related to trading systems and operations",
	Financial:        "Access to financial systems and data",
	Technical:        "IT systems and technical infrastructure access",
	General:          "General-purpose permissions not falling into other categories",
}

const fallbackDescription = "Group of related permissions"

// Categories returns the closed set of categories in precedence order,
// ending with the General fallback.
func Categories() []Category {
	out := make([]Category, 0, len(rules)+1)
	for _, r := range rules {
		out = append(out, r.category)
	}
	return append(out, General)
}

// Classify returns the category of a single group label.
func Classify(label string) Category {
	lower := strings.ToLower(label)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.category
			}
		}
	}
	return General
}

// Describe returns the human description for a category.
func Describe(c Category) string {
	if d, ok := descriptions[c]; ok {
		return d
	}
	return fallbackDescription
}
