package migration

import (
	"fmt"
	"strings"
)

// Step is one phase of the migration plan.
type Step struct {
	Number    int      `json:"number"`
	Title     string   `json:"title"`
	Tasks     []string `json:"tasks"`
	Timeframe string   `json:"timeframe"`
}

// TotalTimeframe is the overall estimate for a complete migration.
const TotalTimeframe = "Approximately 6-8 weeks for complete implementation, with parallel operations during transition"

var timeframes = []string{"1-2 weeks", "1 week", "2-3 weeks", "2-3 weeks", "1 week"}

// Timeframe returns the estimate for the zero-based step index.
func Timeframe(index int) string {
	if index < 0 || index >= len(timeframes) {
		return "1-2 weeks"
	}
	return timeframes[index]
}

// Plan returns the five migration phases for department. The role design
// phase names the first two applications.
func Plan(department string, applications []string) []Step {
	apps := applications[:min(2, len(applications))]
	phases := []struct {
		title string
		tasks []string
	}{
		{"Discovery & Analysis", []string{
			"Document all existing AD groups and their members",
			"Map existing applications and required permissions",
			"Interview key stakeholders to understand workflows",
			"Identify license dependencies and usage patterns",
		}},
		{"Entra ID Foundation Setup", []string{
			`Create "` + department + `" Administrative Unit in Entra ID`,
			"Establish naming conventions for all security groups",
			"Set up attribute synchronization between on-premises AD and Entra ID",
			"Configure Entra ID Connect sync settings for the department",
		}},
		{"Role Design & Implementation", []string{
			"Create security groups for each identified role",
			"Define dynamic membership rules where applicable",
			"Set up permission inheritance hierarchy",
			fmt.Sprintf("Implement license groups for %s applications", strings.Join(apps, " and ")),
		}},
		{"Migration Execution", []string{
			"Perform parallel assignment for a pilot group of users",
			"Validate access and troubleshoot permission issues",
			"Gradually migrate remaining users by role",
			"Monitor access logs to ensure proper permission translation",
		}},
		{"Decommissioning & Governance", []string{
			"Document the new permission structure",
			"Create onboarding templates for new users",
			"Establish regular review process for roles and permissions",
			"Set up automated reporting for license usage and access patterns",
		}},
	}

	steps := make([]Step, len(phases))
	for i, p := range phases {
		steps[i] = Step{Number: i + 1, Title: p.title, Tasks: p.tasks, Timeframe: Timeframe(i)}
	}
	return steps
}
