package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/rolemap/internal/config"
	"github.com/ziadkadry99/rolemap/internal/diagrams"
	"github.com/ziadkadry99/rolemap/internal/progress"
	"github.com/ziadkadry99/rolemap/internal/render"
	"github.com/ziadkadry99/rolemap/internal/server"
	"github.com/ziadkadry99/rolemap/internal/site"
	"github.com/ziadkadry99/rolemap/internal/views"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render every fixed view and role diagram to SVG files",
	Long: `Renders the architecture, licence workflow, onboarding and switchable views plus
one sunburst per role into the output directory. Optionally writes Mermaid exports
and the complete explainer page.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("output", "", "override output directory (defaults to output_dir)")
	renderCmd.Flags().Bool("mermaid", false, "also write a Mermaid export next to each graph view")
	renderCmd.Flags().Bool("page", false, "also write the explainer page with inline diagrams")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	mermaid, _ := cmd.Flags().GetBool("mermaid")

	n, err := renderAll(cmd.Context(), cfg, outputDir, mermaid, progress.NewReporter())
	if err != nil {
		return err
	}
	logger.Info("diagrams rendered", "count", n, "dir", outputDir)

	if page, _ := cmd.Flags().GetBool("page"); page {
		gen := site.NewGenerator(cfg.Server.Title, cfg.Canvas.Width, cfg.Canvas.Height)
		gen.NewBuilder = server.Builders(cfg)
		gen.Pipeline = server.Pipeline(cfg)
		gen.Logger = logger
		path, err := gen.Generate(cmd.Context(), filepath.Join(outputDir, "site"))
		if err != nil {
			return errors.Wrap(err, "generating page")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Explainer page written to %s\n", path)
	}
	return nil
}

// renderAll writes every fixed view and role diagram to outputDir and
// returns the number of SVG files written.
func renderAll(ctx context.Context, cfg *config.Config, outputDir string, mermaid bool, rep progress.Reporter) (int, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return 0, err
	}

	builders := server.Builders(cfg)
	pipeline := server.Pipeline(cfg)
	fixed := views.Fixed()
	roles := views.RoleIDs()
	total := len(fixed) + len(roles)

	rep.Start(total)
	defer rep.Finish()

	done := 0
	for _, name := range fixed {
		b := builders()
		d := b.Build(name)
		scene := render.NewScene(b.Width, b.Height)
		pipeline.Draw(ctx, d, scene)

		file := name + ".svg"
		if err := writeSVG(filepath.Join(outputDir, file), scene); err != nil {
			return done, err
		}
		if mermaid && !d.Graphless() {
			path := filepath.Join(outputDir, name+".mmd")
			if err := os.WriteFile(path, []byte(diagrams.Mermaid(d.Graph, d.Render.Palette)), 0o644); err != nil {
				return done, errors.Wrapf(err, "writing %s", path)
			}
		}
		done++
		rep.Update(done, file)
	}

	for _, role := range roles {
		b := builders()
		scene := render.NewScene(b.Width, b.Height)
		pipeline.DrawRole(b.RolePermissions(role), scene)

		file := "role-" + role + ".svg"
		if err := writeSVG(filepath.Join(outputDir, file), scene); err != nil {
			return done, err
		}
		done++
		rep.Update(done, file)
	}
	return done, nil
}
