package explorer

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/rolemap/internal/layout"
	"github.com/ziadkadry99/rolemap/internal/migration"
	"github.com/ziadkadry99/rolemap/internal/render"
	"github.com/ziadkadry99/rolemap/internal/viewcontrol"
	"github.com/ziadkadry99/rolemap/internal/views"
)

type constSampler struct{}

func (constSampler) Intn(int) int     { return 0 }
func (constSampler) Float64() float64 { return 0.9 }

func setupTest(t *testing.T) *Explorer {
	t.Helper()
	return New(Options{
		NewBuilder: func() *views.Builder {
			b := views.NewBuilder(960, 640)
			b.Sampler = constSampler{}
			return b
		},
		Pipeline: viewcontrol.Pipeline{
			Driver: layout.NewDriver(layout.Budget{MaxIterations: 30, Timeout: time.Second}),
			Params: layout.DefaultParams(),
		},
		Analyzer: migration.Analyzer{
			NewID: func() string { return "analysis-1" },
			Now:   func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		},
	})
}

func setupRouter(e *Explorer) chi.Router {
	r := chi.NewRouter()
	e.RegisterRoutes(r)
	return r
}

func get(t *testing.T, r http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListViews(t *testing.T) {
	r := setupRouter(setupTest(t))

	w := get(t, r, "/api/views")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp listResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Views) != len(views.Catalog()) {
		t.Errorf("expected %d views, got %d", len(views.Catalog()), len(resp.Views))
	}
	if len(resp.Roles) != 5 {
		t.Errorf("expected 5 roles, got %d", len(resp.Roles))
	}
	if len(resp.Signals) != 5 {
		t.Errorf("expected 5 signals, got %d", len(resp.Signals))
	}
}

func TestViewEndpoint(t *testing.T) {
	r := setupRouter(setupTest(t))

	w := get(t, r, "/api/views/overview")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Name  string `json:"name"`
		Mount string `json:"mount"`
		Graph struct {
			Nodes []json.RawMessage `json:"nodes"`
			Edges []json.RawMessage `json:"edges"`
		} `json:"graph"`
		Run *struct {
			Ticks int `json:"ticks"`
		} `json:"run"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Mount != views.MountSwitchable {
		t.Errorf("expected mount %q, got %q", views.MountSwitchable, resp.Mount)
	}
	if len(resp.Graph.Nodes) != 23 || len(resp.Graph.Edges) != 22 {
		t.Errorf("expected 23 nodes and 22 edges, got %d and %d", len(resp.Graph.Nodes), len(resp.Graph.Edges))
	}
	if resp.Run == nil || resp.Run.Ticks == 0 {
		t.Errorf("expected a force run to be reported, got %+v", resp.Run)
	}
}

func TestLicenseMetricsView(t *testing.T) {
	r := setupRouter(setupTest(t))

	w := get(t, r, "/api/views/license-metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Mount string        `json:"mount"`
		Radar *render.Radar `json:"radar"`
		Run   json.RawMessage
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Mount != views.MountLicenseMetrics {
		t.Errorf("expected mount %q, got %q", views.MountLicenseMetrics, resp.Mount)
	}
	if resp.Radar == nil || len(resp.Radar.Axes) != 4 || len(resp.Radar.Series) != 2 {
		t.Fatalf("expected 4 axes and 2 series, got %+v", resp.Radar)
	}
	if resp.Run != nil {
		t.Errorf("radar view should not report a force run, got %s", resp.Run)
	}

	svg := get(t, r, "/api/views/license-metrics/svg").Body.String()
	if strings.Count(svg, "<polygon") != 6 {
		t.Errorf("expected 4 grid rings and 2 series polygons, got %d", strings.Count(svg, "<polygon"))
	}
}

func TestViewEndpointNotFound(t *testing.T) {
	r := setupRouter(setupTest(t))

	for _, path := range []string{
		"/api/views/nope",
		"/api/views/current-structure",
		"/api/views/nope/svg",
		"/api/views/proposed-structure/mermaid",
	} {
		if w := get(t, r, path); w.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", path, w.Code)
		}
	}
}

func TestViewSVG(t *testing.T) {
	r := setupRouter(setupTest(t))

	for _, name := range views.Fixed() {
		w := get(t, r, "/api/views/"+name+"/svg")
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d: %s", name, w.Code, w.Body.String())
		}
		if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
			t.Errorf("%s: expected svg content type, got %q", name, ct)
		}
		if !strings.Contains(w.Body.String(), "<svg") {
			t.Errorf("%s: body is not an svg document", name)
		}
	}
}

func TestViewMermaid(t *testing.T) {
	r := setupRouter(setupTest(t))

	w := get(t, r, "/api/views/licensing/mermaid")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, "graph TD") {
		t.Errorf("expected mermaid flowchart, got %q", body)
	}
	if !strings.Contains(body, "-.->") {
		t.Error("expected dashed license edges in mermaid output")
	}
}

func TestRoleSVG(t *testing.T) {
	r := setupRouter(setupTest(t))

	for _, role := range []string{"trading-manager", "unknown-role"} {
		w := get(t, r, "/api/roles/"+role+"/svg")
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", role, w.Code)
		}
		if !strings.Contains(w.Body.String(), "<path") {
			t.Errorf("%s: expected sunburst arcs", role)
		}
	}
}

func TestTemplates(t *testing.T) {
	r := setupRouter(setupTest(t))

	w := get(t, r, "/api/templates")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "finance") {
		t.Fatalf("unexpected template listing: %d %s", w.Code, w.Body.String())
	}

	w = get(t, r, "/api/templates/trading")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var in migration.Input
	if err := json.NewDecoder(w.Body).Decode(&in); err != nil {
		t.Fatalf("decoding template: %v", err)
	}
	if !strings.HasPrefix(in.Organization, "Trading Department") {
		t.Errorf("unexpected organization %q", in.Organization)
	}

	if w := get(t, r, "/api/templates/nope"); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestAnalysisEndpoint(t *testing.T) {
	r := setupRouter(setupTest(t))

	in, err := migration.FromTemplate("finance")
	if err != nil {
		t.Fatalf("loading template: %v", err)
	}
	body, _ := json.Marshal(in)

	req := httptest.NewRequest(http.MethodPost, "/api/analysis", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp analysisResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Analysis.ID != "analysis-1" {
		t.Errorf("expected fixed id, got %q", resp.Analysis.ID)
	}
	if resp.Analysis.Department.Name != "Finance Department" {
		t.Errorf("unexpected department %q", resp.Analysis.Department.Name)
	}
	for _, name := range []string{views.CurrentStructure, views.ProposedStructure} {
		if !strings.Contains(resp.SVG[name], "<svg") {
			t.Errorf("missing %s diagram", name)
		}
	}
	if !strings.Contains(resp.SVG[views.ProposedStructure], "Entra ID") {
		t.Error("expected the proposed structure to show the directory node")
	}
}

func TestAnalysisIncompleteInput(t *testing.T) {
	r := setupRouter(setupTest(t))

	body := `{"organization": "Finance Department", "groups": "  ", "applications": "SAP"}`
	req := httptest.NewRequest(http.MethodPost, "/api/analysis", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var resp map[string]string
	json.NewDecoder(w.Body).Decode(&resp)
	if resp["error"] != migration.ErrIncompleteInput.Error() {
		t.Errorf("unexpected error %q", resp["error"])
	}

	req = httptest.NewRequest(http.MethodPost, "/api/analysis", strings.NewReader("{"))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed body, got %d", w.Code)
	}
}

func dialSignals(t *testing.T) *websocket.Conn {
	t.Helper()
	server := httptest.NewServer(setupRouter(setupTest(t)))
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/signals"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestCheckOrigin(t *testing.T) {
	e := New(Options{AllowedOrigins: []string{"http://localhost:*", "https://docs.example.com"}})

	tests := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"http://rolemap.test", true},
		{"http://localhost:5173", true},
		{"HTTP://LOCALHOST:3000", true},
		{"https://docs.example.com", true},
		{"https://evil.example.com", false},
		{"http://127.0.0.1:8080", false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "http://rolemap.test/ws/signals", nil)
		if tt.origin != "" {
			req.Header.Set("Origin", tt.origin)
		}
		if got := e.checkOrigin(req); got != tt.want {
			t.Errorf("origin %q: expected %v, got %v", tt.origin, tt.want, got)
		}
	}

	open := New(Options{AllowedOrigins: []string{"*"}})
	req := httptest.NewRequest(http.MethodGet, "http://rolemap.test/ws/signals", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	if !open.checkOrigin(req) {
		t.Error("wildcard should accept any origin")
	}
}

func TestWebSocketRejectsForeignOrigin(t *testing.T) {
	server := httptest.NewServer(setupRouter(setupTest(t)))
	t.Cleanup(server.Close)
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/signals"

	header := http.Header{"Origin": []string{"https://evil.example.com"}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err == nil {
		t.Fatal("expected the handshake to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403, got %+v", resp)
	}

	header = http.Header{"Origin": []string{server.URL}}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		t.Fatalf("same-origin dial: %v", err)
	}
	conn.Close()
}

func readResponse(t *testing.T, conn *websocket.Conn) signalResponse {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	var resp signalResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("reading response: %v", err)
	}
	return resp
}

func TestWebSocketInitialState(t *testing.T) {
	conn := dialSignals(t)

	resp := readResponse(t, conn)
	if resp.Type != "state" {
		t.Fatalf("expected state message, got %q", resp.Type)
	}
	if resp.State.View != views.Overview {
		t.Errorf("expected overview, got %q", resp.State.View)
	}
	for _, m := range []string{views.MountArchitecture, views.MountSwitchable, views.MountRolePermissions} {
		if !strings.Contains(resp.SVG[m], "<svg") {
			t.Errorf("missing svg for mount %s", m)
		}
	}
}

func TestWebSocketChangeView(t *testing.T) {
	conn := dialSignals(t)
	readResponse(t, conn)

	conn.WriteJSON(map[string]interface{}{
		"type":   "change-visualization-view",
		"detail": map[string]string{"view": "detailed"},
	})
	resp := readResponse(t, conn)
	if resp.Type != "update" {
		t.Fatalf("expected update, got %q: %s", resp.Type, resp.Error)
	}
	if resp.Update.State.View != views.Detailed {
		t.Errorf("expected detailed, got %q", resp.Update.State.View)
	}
	if _, ok := resp.SVG[views.MountSwitchable]; !ok || len(resp.SVG) != 1 {
		t.Errorf("expected only the switchable mount, got %v", keys(resp.SVG))
	}
	if !strings.Contains(resp.SVG[views.MountSwitchable], "Finance Manager") {
		t.Error("expected the detailed view to be drawn")
	}
}

func TestWebSocketZoom(t *testing.T) {
	conn := dialSignals(t)
	readResponse(t, conn)

	conn.WriteJSON(map[string]string{"type": "diagram-zoom-in"})
	resp := readResponse(t, conn)
	if resp.Type != "update" {
		t.Fatalf("expected update, got %q: %s", resp.Type, resp.Error)
	}
	if resp.Update.Transition == nil {
		t.Fatal("expected a zoom transition")
	}
	if got := resp.Update.Transition.To.K; got != 1.2 {
		t.Errorf("expected scale 1.2, got %v", got)
	}
	if !strings.Contains(resp.SVG[views.MountArchitecture], "scale(1.2)") {
		t.Error("expected the architecture diagram to be zoomed")
	}
}

func TestWebSocketDrag(t *testing.T) {
	conn := dialSignals(t)
	readResponse(t, conn)

	conn.WriteJSON(map[string]interface{}{
		"type":   "change-visualization-view",
		"detail": map[string]string{"view": "detailed"},
	})
	readResponse(t, conn)

	conn.WriteJSON(map[string]interface{}{
		"type":   "drag",
		"detail": map[string]interface{}{"id": "analyst", "x": 123, "y": 45},
	})
	resp := readResponse(t, conn)
	if resp.Type != "update" {
		t.Fatalf("expected update, got %q: %s", resp.Type, resp.Error)
	}

	conn.WriteJSON(map[string]interface{}{
		"type":   "drag",
		"detail": map[string]interface{}{"id": "missing", "x": 1, "y": 1},
	})
	if resp := readResponse(t, conn); resp.Type != "error" {
		t.Errorf("expected error for unknown node, got %q", resp.Type)
	}
}

func TestWebSocketErrors(t *testing.T) {
	conn := dialSignals(t)
	readResponse(t, conn)

	conn.WriteMessage(websocket.TextMessage, []byte("not json"))
	if resp := readResponse(t, conn); resp.Type != "error" || resp.Error != "invalid message format" {
		t.Errorf("expected format error, got %+v", resp)
	}

	conn.WriteJSON(map[string]string{"type": "diagram-spin"})
	if resp := readResponse(t, conn); resp.Type != "error" || !strings.Contains(resp.Error, "unknown signal") {
		t.Errorf("expected unknown signal error, got %+v", resp)
	}
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
