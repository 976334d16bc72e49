package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/rolemap/internal/config"
	"github.com/ziadkadry99/rolemap/internal/diagrams"
	"github.com/ziadkadry99/rolemap/internal/explorer"
	"github.com/ziadkadry99/rolemap/internal/migration"
	"github.com/ziadkadry99/rolemap/internal/orgstructure"
	"github.com/ziadkadry99/rolemap/internal/render"
	"github.com/ziadkadry99/rolemap/internal/server"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3A86FF"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF006E")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#8338EC")).
			Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyse a department and print its migration plan",
	Long: `Classifies the department's directory groups, recommends functional roles,
permission sets and licence groups, and prints a phased migration plan.

Input comes from a built-in template (--template), an interactive template picker
(--interactive) or three text files with one entry per line (--org, --groups, --apps).`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("template", "", "use a sample input (finance, it, trading)")
	analyzeCmd.Flags().Bool("interactive", false, "pick a sample input interactively")
	analyzeCmd.Flags().String("org", "", "file with the department on the first line and sub-departments below")
	analyzeCmd.Flags().String("groups", "", "file with one directory group per line")
	analyzeCmd.Flags().String("apps", "", "file with one application per line")
	analyzeCmd.Flags().String("out", "", "directory to write the structure diagrams (SVG and Mermaid) to")
	analyzeCmd.Flags().Bool("json", false, "print the analysis as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	in, err := analysisInput(cmd)
	if err != nil {
		return err
	}

	a, err := migration.Analyze(in)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	}
	printAnalysis(w, a)

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := writeStructureDiagrams(cmd, cfg, out, a); err != nil {
			return err
		}
	}
	return nil
}

func analysisInput(cmd *cobra.Command) (migration.Input, error) {
	if name, _ := cmd.Flags().GetString("template"); name != "" {
		return migration.FromTemplate(name)
	}
	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		prompt := promptui.Select{
			Label: "Select a sample department",
			Items: orgstructure.TemplateNames(),
		}
		_, name, err := prompt.Run()
		if err != nil {
			return migration.Input{}, errors.Wrap(err, "template selection")
		}
		return migration.FromTemplate(name)
	}

	var in migration.Input
	for _, f := range []struct {
		flag string
		dst  *string
	}{
		{"org", &in.Organization},
		{"groups", &in.Groups},
		{"apps", &in.Applications},
	} {
		path, _ := cmd.Flags().GetString(f.flag)
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return migration.Input{}, errors.Wrapf(err, "reading --%s", f.flag)
		}
		*f.dst = string(data)
	}
	return in, nil
}

func printAnalysis(w io.Writer, a *migration.Analysis) {
	fmt.Fprintln(w, titleStyle.Render("Migration plan: "+a.Department.Name))
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("analysis %s, %s archetype", a.ID, a.Archetype)))

	s := a.Summary
	fmt.Fprintln(w, boxStyle.Render(fmt.Sprintf(
		"%d units  %d groups  %d applications\n%d roles  %d permission categories",
		s.Units, s.Groups, s.Applications, s.Roles, s.Categories)))

	fmt.Fprintln(w, headerStyle.Render("Roles"))
	for _, r := range a.Roles {
		fmt.Fprintf(w, "  %s  %s\n", r.RoleName, mutedStyle.Render(r.GroupName))
		if r.HasDynamicRule() {
			fmt.Fprintf(w, "    rule: %s\n", *r.DynamicGroupRule)
		}
	}

	fmt.Fprintln(w, headerStyle.Render("Permission sets"))
	for _, p := range a.Permissions {
		fmt.Fprintf(w, "  %s (%d groups)  %s\n", p.Name, len(p.Groups), mutedStyle.Render(p.Description))
	}

	fmt.Fprintln(w, headerStyle.Render("Licences"))
	for _, l := range a.Licenses {
		group := l.LicenseGroup
		if group == "" {
			group = "enterprise-wide"
		}
		fmt.Fprintf(w, "  %s -> %s\n", l.Application, group)
	}

	fmt.Fprintln(w, headerStyle.Render("Plan"))
	for _, step := range a.Plan {
		fmt.Fprintf(w, "  %d. %s %s\n", step.Number, step.Title, mutedStyle.Render("("+step.Timeframe+")"))
		for _, task := range step.Tasks {
			fmt.Fprintf(w, "     - %s\n", task)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, mutedStyle.Render(a.Total))
}

func writeStructureDiagrams(cmd *cobra.Command, cfg *config.Config, dir string, a *migration.Analysis) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	b := server.Builders(cfg)()
	pipeline := server.Pipeline(cfg)
	for _, d := range explorer.StructureDiagrams(b, a) {
		scene := render.NewScene(b.Width, b.Height)
		pipeline.Draw(cmd.Context(), d, scene)
		if err := writeSVG(filepath.Join(dir, d.Name+".svg"), scene); err != nil {
			return err
		}
		mmd := filepath.Join(dir, d.Name+".mmd")
		if err := os.WriteFile(mmd, []byte(diagrams.Mermaid(d.Graph, d.Render.Palette)), 0o644); err != nil {
			return errors.Wrapf(err, "writing %s", mmd)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Structure diagrams written to %s\n", dir)
	return nil
}
