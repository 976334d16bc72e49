// Package site renders the explainer page: markdown content with the
// diagrams drawn inline into the mounts the page declares.
package site

import (
	"bytes"
	"context"
	_ "embed"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ziadkadry99/rolemap/internal/render"
	"github.com/ziadkadry99/rolemap/internal/telemetry"
	"github.com/ziadkadry99/rolemap/internal/viewcontrol"
	"github.com/ziadkadry99/rolemap/internal/views"
)

//go:embed content/index.md
var defaultContent []byte

// Generator renders the explainer page.
type Generator struct {
	Title   string
	Content []byte
	// NewBuilder returns the diagram builder for one render.
	NewBuilder func() *views.Builder
	Pipeline   viewcontrol.Pipeline
	Logger     *log.Logger
	Metrics    *telemetry.Metrics

	once    sync.Once
	initErr error
	md      goldmark.Markdown
	tmpl    *template.Template
}

// NewGenerator creates a Generator for the built-in page content.
func NewGenerator(title string, width, height float64) *Generator {
	return &Generator{
		Title:      title,
		Content:    defaultContent,
		NewBuilder: func() *views.Builder { return views.NewBuilder(width, height) },
		Pipeline:   viewcontrol.DefaultPipeline(),
		Logger:     telemetry.Discard(),
	}
}

// pageData holds the data passed to the HTML template.
type pageData struct {
	Title   string
	Content template.HTML
}

func (g *Generator) init() error {
	g.once.Do(func() { g.initErr = g.setup() })
	return g.initErr
}

func (g *Generator) setup() error {
	if g.NewBuilder == nil {
		g.NewBuilder = func() *views.Builder { return views.NewBuilder(960, 640) }
	}
	if g.Logger == nil {
		g.Logger = telemetry.Discard()
	}
	if g.Pipeline.Driver == nil {
		g.Pipeline = viewcontrol.DefaultPipeline()
	}
	g.md = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return errors.Wrap(err, "parsing page template")
	}
	g.tmpl = tmpl
	return nil
}

// mountPattern matches an empty diagram mount point in the rendered content.
var mountPattern = regexp.MustCompile(`<div class="diagram" data-mount="([a-z-]+)"></div>`)

// DeclaredMounts returns the mount points present in rendered page HTML.
func DeclaredMounts(page string) views.MountSet {
	var ids []string
	for _, m := range mountPattern.FindAllStringSubmatch(page, -1) {
		ids = append(ids, m[1])
	}
	return views.NewMountSet(ids...)
}

// Render produces the complete page.
func (g *Generator) Render(ctx context.Context) ([]byte, error) {
	if err := g.init(); err != nil {
		return nil, err
	}

	var body bytes.Buffer
	if err := g.md.Convert(g.Content, &body); err != nil {
		return nil, errors.Wrap(err, "converting markdown")
	}

	content, err := g.fillMounts(ctx, body.String())
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := g.tmpl.Execute(&out, pageData{Title: g.Title, Content: template.HTML(content)}); err != nil {
		return nil, errors.Wrap(err, "executing page template")
	}
	return out.Bytes(), nil
}

// fillMounts draws every diagram whose mount the page declares. Mounts
// filled by the browser later, such as the analysis views, stay empty.
func (g *Generator) fillMounts(ctx context.Context, page string) (string, error) {
	host := DeclaredMounts(page)
	b := g.NewBuilder()

	ctrl := viewcontrol.New(viewcontrol.Options{
		Builder:  b,
		Host:     host,
		Pipeline: g.Pipeline,
		Logger:   g.Logger,
		Metrics:  g.Metrics,
	})
	ctrl.Init(ctx)

	scenes := map[string]*render.Scene{}
	for _, m := range []string{views.MountArchitecture, views.MountSwitchable, views.MountRolePermissions} {
		if host.HasMount(m) {
			scenes[m] = ctrl.MountScene(m)
		}
	}
	for _, name := range []string{views.LicenseWorkflow, views.Onboarding, views.LicenseMetrics} {
		d := b.Build(name)
		if !host.HasMount(d.Mount) {
			continue
		}
		scene := render.NewScene(b.Width, b.Height)
		g.Pipeline.Draw(ctx, d, scene)
		scenes[d.Mount] = scene
	}

	var firstErr error
	filled := mountPattern.ReplaceAllStringFunc(page, func(div string) string {
		id := mountPattern.FindStringSubmatch(div)[1]
		scene, ok := scenes[id]
		if !ok || scene == nil {
			return div
		}
		svg, err := render.InlineSVG(scene)
		if err != nil {
			if firstErr == nil {
				firstErr = errors.Wrapf(err, "rendering mount %s", id)
			}
			return div
		}
		return strings.TrimSuffix(div, "</div>") + string(svg) + "</div>"
	})
	g.Logger.Debug("page mounts filled", "declared", len(host), "drawn", len(scenes))
	return filled, firstErr
}

// Generate writes the page and its assets to outputDir and returns the
// path of the page.
func (g *Generator) Generate(ctx context.Context, outputDir string) (string, error) {
	page, err := g.Render(ctx)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(outputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(outputDir, "script.js"), []byte(jsContent), 0o644); err != nil {
		return "", err
	}
	path := filepath.Join(outputDir, "index.html")
	if err := os.WriteFile(path, page, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Handler serves the page at / and its assets. The page is rendered per
// request so each visitor gets fresh sample data.
func (g *Generator) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/style.css", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		_, _ = w.Write([]byte(cssContent))
	})
	mux.HandleFunc("/script.js", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/javascript")
		_, _ = w.Write([]byte(jsContent))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" && r.URL.Path != "/index.html" {
			http.NotFound(w, r)
			return
		}
		page, err := g.Render(r.Context())
		if err != nil {
			g.Logger.Error("rendering page", "err", err)
			http.Error(w, "rendering page failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	})
	return mux
}
