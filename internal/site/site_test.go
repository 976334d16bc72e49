package site

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ziadkadry99/rolemap/internal/layout"
	"github.com/ziadkadry99/rolemap/internal/viewcontrol"
	"github.com/ziadkadry99/rolemap/internal/views"
)

type constSampler struct{}

func (constSampler) Intn(int) int     { return 0 }
func (constSampler) Float64() float64 { return 0.5 }

func newTestGenerator(content string) *Generator {
	g := NewGenerator("Identity migration", 960, 640)
	g.Pipeline = viewcontrol.Pipeline{
		Driver: layout.NewDriver(layout.Budget{MaxIterations: 20, Timeout: time.Second}),
		Params: layout.DefaultParams(),
	}
	g.NewBuilder = func() *views.Builder {
		b := views.NewBuilder(960, 640)
		b.Sampler = constSampler{}
		return b
	}
	if content != "" {
		g.Content = []byte(content)
	}
	return g
}

func TestDeclaredMounts(t *testing.T) {
	page := `<p>x</p>
<div class="diagram" data-mount="architecture-diagram"></div>
<div class="diagram" data-mount="role-permission-visualization"></div>`

	host := DeclaredMounts(page)
	if !host.HasMount(views.MountArchitecture) || !host.HasMount(views.MountRolePermissions) {
		t.Errorf("expected both mounts, got %v", host)
	}
	if host.HasMount(views.MountSwitchable) {
		t.Error("switchable mount should not be declared")
	}
}

func TestRenderDefaultPage(t *testing.T) {
	g := newTestGenerator("")

	page, err := g.Render(t.Context())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := string(page)

	if !strings.Contains(html, "<title>Identity migration</title>") {
		t.Error("missing page title")
	}
	if !strings.Contains(html, `id="how-the-pieces-fit"`) {
		t.Error("expected auto heading ids")
	}
	for _, m := range []string{
		views.MountArchitecture, views.MountSwitchable, views.MountRolePermissions,
		views.MountLicenseWorkflow, views.MountOnboarding, views.MountLicenseMetrics,
	} {
		if !strings.Contains(html, `data-mount="`+m+`"><svg`) {
			t.Errorf("mount %s was not filled", m)
		}
	}
	// Analysis mounts are filled by the browser after a submission.
	if !strings.Contains(html, `data-mount="`+views.MountCurrentStructure+`"></div>`) {
		t.Error("current structure mount should stay empty")
	}
	if !strings.Contains(html, `class="chroma"`) && !strings.Contains(html, "<pre") {
		t.Error("expected the code block to be rendered")
	}
}

func TestRenderOnlyDeclaredMounts(t *testing.T) {
	g := newTestGenerator("# Roles\n\n<div class=\"diagram\" data-mount=\"role-permission-visualization\"></div>\n")

	page, err := g.Render(t.Context())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := string(page)

	if strings.Count(html, "<svg") != 1 {
		t.Errorf("expected exactly one inline svg, got %d", strings.Count(html, "<svg"))
	}
	if !strings.Contains(html, `data-mount="role-permission-visualization"><svg`) {
		t.Error("role mount was not filled")
	}
}

func TestGenerate(t *testing.T) {
	g := newTestGenerator("")
	dir := t.TempDir()

	path, err := g.Generate(t.Context(), dir)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if path != filepath.Join(dir, "index.html") {
		t.Errorf("unexpected page path %s", path)
	}
	for _, name := range []string{"index.html", "style.css", "script.js"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestHandler(t *testing.T) {
	h := newTestGenerator("").Handler()

	tests := []struct {
		path        string
		status      int
		contentType string
	}{
		{"/", http.StatusOK, "text/html; charset=utf-8"},
		{"/style.css", http.StatusOK, "text/css; charset=utf-8"},
		{"/script.js", http.StatusOK, "application/javascript"},
		{"/missing", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if w.Code != tt.status {
			t.Errorf("%s: expected %d, got %d", tt.path, tt.status, w.Code)
		}
		if tt.contentType != "" && w.Header().Get("Content-Type") != tt.contentType {
			t.Errorf("%s: expected content type %q, got %q", tt.path, tt.contentType, w.Header().Get("Content-Type"))
		}
	}
}
