// Package diagrams exports view graphs as mermaid flowcharts.
package diagrams

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/rolemap/internal/graph"
	"github.com/ziadkadry99/rolemap/internal/render"
)

// Mermaid generates a mermaid graph TD flowchart from g. Node shapes follow
// the SVG renderer: identity platforms, business functions and licence
// types are stadiums, users are circles and everything else is a box.
// Dashed edges become dotted links; edges with a missing endpoint are left
// out. When palette is non-nil each node type gets a class with its colour.
func Mermaid(g *graph.Graph, palette *render.Palette) string {
	var b strings.Builder
	b.WriteString("graph TD\n")

	for _, n := range g.Nodes {
		b.WriteString(fmt.Sprintf("    %s%s\n", sanitizeID(n.ID), shape(n)))
	}

	for _, e := range g.Edges {
		if _, _, ok := g.Resolve(e); !ok {
			continue
		}
		arrow := "-->"
		if e.Dashed {
			arrow = "-.->"
		}
		b.WriteString(fmt.Sprintf("    %s %s %s\n", sanitizeID(e.Source), arrow, sanitizeID(e.Target)))
	}

	if palette != nil {
		for _, t := range g.Types() {
			members := make([]string, 0)
			for _, n := range g.Nodes {
				if n.Type == t {
					members = append(members, sanitizeID(n.ID))
				}
			}
			class := "t_" + sanitizeID(string(t))
			b.WriteString(fmt.Sprintf("    classDef %s fill:%s,color:#fff\n", class, palette.TypeColor(t)))
			b.WriteString(fmt.Sprintf("    class %s %s\n", strings.Join(members, ","), class))
		}
	}

	return b.String()
}

func shape(n *graph.Node) string {
	label := escapeMermaid(n.Label)
	switch n.Type {
	case graph.TypeCloud, graph.TypeBusiness, graph.TypeLicenseType:
		return fmt.Sprintf("([\"%s\"])", label)
	case graph.TypeUser:
		return fmt.Sprintf("((\"%s\"))", label)
	default:
		if n.Description != "" {
			return fmt.Sprintf("[\"%s<br/>%s\"]", label, escapeMermaid(n.Description))
		}
		return fmt.Sprintf("[\"%s\"]", label)
	}
}

// sanitizeID converts a string into a safe mermaid node ID.
func sanitizeID(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		".", "_",
		"-", "_",
		" ", "_",
		"(", "_",
		")", "_",
		"[", "_",
		"]", "_",
		"{", "_",
		"}", "_",
		":", "_",
	)
	return replacer.Replace(s)
}

// escapeMermaid escapes characters that have special meaning in mermaid labels.
func escapeMermaid(s string) string {
	s = strings.ReplaceAll(s, "\"", "#quot;")
	s = strings.ReplaceAll(s, "(", "#lpar;")
	s = strings.ReplaceAll(s, ")", "#rpar;")
	s = strings.ReplaceAll(s, "[", "#lsqb;")
	s = strings.ReplaceAll(s, "]", "#rsqb;")
	s = strings.ReplaceAll(s, "{", "#lbrace;")
	s = strings.ReplaceAll(s, "}", "#rbrace;")
	s = strings.ReplaceAll(s, "<", "#lt;")
	s = strings.ReplaceAll(s, ">", "#gt;")
	return s
}
