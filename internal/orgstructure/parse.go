package orgstructure

import "strings"

// Lines splits free text into trimmed, non-blank lines.
func Lines(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// ParseDepartment parses an organisation description. The first non-blank
// line names the department; following lines prefixed with "-" are its
// subdepartments. Other lines are kept in Lines but otherwise ignored.
func ParseDepartment(content string) Department {
	lines := Lines(content)
	if len(lines) == 0 {
		return Department{}
	}
	return Department{
		Name:           lines[0],
		Subdepartments: Subdepartments(lines[1:]),
		Lines:          lines,
	}
}

// Subdepartments extracts the "-" prefixed entries from lines, with the
// marker and surrounding whitespace removed.
func Subdepartments(lines []string) []string {
	var out []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "-") {
			continue
		}
		out = append(out, strings.TrimSpace(line[1:]))
	}
	return out
}

// DetectArchetype maps a department name onto a role archetype using
// case-insensitive substring tests, checked in the order finance, trading, it.
//
// Matching is substring based, so "it" also matches names such as
// "Digital Marketing".
func DetectArchetype(name string) Archetype {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "financ"):
		return ArchetypeFinance
	case strings.Contains(lower, "trad"):
		return ArchetypeTrading
	case strings.Contains(lower, "it"):
		return ArchetypeIT
	default:
		return ArchetypeGeneric
	}
}
