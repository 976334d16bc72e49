package orgstructure

import (
	"fmt"
	"strings"
)

// maxGenericSubroles caps the specialist roles added for a department that
// matches no known archetype.
const maxGenericSubroles = 2

func rule(department, titleFragment string) *string {
	s := fmt.Sprintf(`user.department -eq %q -and user.jobTitle -contains %q`, department, titleFragment)
	return &s
}

// subroleTemplate adds a specialised role when a subdepartment name
// contains keyword (case-sensitive).
type subroleTemplate struct {
	keyword string
	role    Role
}

type archetypeTemplate struct {
	baseline []Role
	subroles []subroleTemplate
}

var archetypeTemplates = map[Archetype]archetypeTemplate{
	ArchetypeFinance: {
		baseline: []Role{
			{"Finance", "Financial Analyst", "Analyzes financial data and creates reports", "ROLE-Finance-Analyst", rule("Finance", "Analyst")},
			{"Finance", "Finance Manager", "Oversees financial operations and approves transactions", "ROLE-Finance-Manager", rule("Finance", "Manager")},
			{"Finance", "Accounting Specialist", "Manages accounting processes and reconciliations", "ROLE-Finance-Accounting", nil},
		},
		subroles: []subroleTemplate{
			{"Treasury", Role{"Treasury", "Treasury Analyst", "Manages cash flow and investments", "ROLE-Treasury-Analyst", nil}},
			{"Report", Role{"Financial Reporting", "Reporting Specialist", "Prepares financial statements and regulatory reports", "ROLE-Finance-Reporting", nil}},
		},
	},
	ArchetypeTrading: {
		baseline: []Role{
			{"Trading", "Trader", "Executes trades and manages positions", "ROLE-Trading-Trader", rule("Trading", "Trader")},
			{"Trading", "Trading Manager", "Oversees trading operations and risk", "ROLE-Trading-Manager", rule("Trading", "Manager")},
			{"Trading", "Trading Assistant", "Supports trading operations and administration", "ROLE-Trading-Assistant", nil},
		},
		subroles: []subroleTemplate{
			{"Equities", Role{"Equities Trading", "Equity Trader", "Specializes in equity market trading", "ROLE-Equity-Trader", nil}},
			{"Fixed Income", Role{"Fixed Income", "Fixed Income Trader", "Specializes in bond and interest rate products", "ROLE-FixedIncome-Trader", nil}},
		},
	},
	ArchetypeIT: {
		baseline: []Role{
			{"IT", "IT Support Specialist", "Provides technical support and troubleshooting", "ROLE-IT-Support", rule("IT", "Support")},
			{"IT", "Systems Administrator", "Manages servers and infrastructure", "ROLE-IT-SysAdmin", rule("IT", "Administrator")},
			{"IT", "IT Manager", "Oversees IT operations and projects", "ROLE-IT-Manager", rule("IT", "Manager")},
		},
		subroles: []subroleTemplate{
			{"Security", Role{"IT Security", "Security Analyst", "Monitors and responds to security threats", "ROLE-IT-Security", nil}},
			{"Infrastructure", Role{"IT Infrastructure", "Infrastructure Engineer", "Designs and maintains IT infrastructure", "ROLE-IT-Infrastructure", nil}},
		},
	},
}

// InferRoles returns the recommended roles for a department: three baseline
// roles for its archetype followed by one role per recognised subdepartment,
// in subdepartment order. subdepartmentLines are the organisation lines after
// the department line; only "-" prefixed lines count. groupLabels are accepted
// alongside the organisation text but no template currently depends on them.
//
// The result is a pure function of the inputs.
func InferRoles(department string, subdepartmentLines, groupLabels []string) []Role {
	department = strings.TrimSpace(department)
	subdepts := Subdepartments(subdepartmentLines)

	tmpl, ok := archetypeTemplates[DetectArchetype(department)]
	if !ok {
		return genericRoles(department, subdepts)
	}

	roles := cloneRoles(tmpl.baseline)
	for _, subdept := range subdepts {
		for _, st := range tmpl.subroles {
			if strings.Contains(subdept, st.keyword) {
				roles = append(roles, cloneRole(st.role))
				break
			}
		}
	}
	return roles
}

// InferDepartmentRoles is InferRoles over an already parsed department.
func InferDepartmentRoles(d Department, groupLabels []string) []Role {
	if len(d.Lines) == 0 {
		return InferRoles(d.Name, nil, groupLabels)
	}
	return InferRoles(d.Name, d.Lines[1:], groupLabels)
}

func genericRoles(department string, subdepts []string) []Role {
	roles := []Role{
		{department, "Department Manager", "Oversees department operations", "ROLE-" + department + "-Manager", rule(department, "Manager")},
		{department, "Specialist", "Subject matter expert in department area", "ROLE-" + department + "-Specialist", nil},
		{department, "Administrator", "Handles administrative tasks for the department", "ROLE-" + department + "-Admin", nil},
	}
	for i, subdept := range subdepts {
		if i >= maxGenericSubroles {
			break
		}
		roles = append(roles, Role{
			BusinessFunction: subdept,
			RoleName:         subdept + " Specialist",
			Description:      "Works within the " + subdept + " area",
			GroupName:        "ROLE-" + strings.Join(strings.Fields(subdept), "") + "-Specialist",
		})
	}
	return roles
}

func cloneRoles(in []Role) []Role {
	out := make([]Role, len(in))
	for i, r := range in {
		out[i] = cloneRole(r)
	}
	return out
}

// cloneRole copies the rule pointer so callers cannot alter the templates.
func cloneRole(r Role) Role {
	if r.DynamicGroupRule != nil {
		s := *r.DynamicGroupRule
		r.DynamicGroupRule = &s
	}
	return r
}
