package explorer

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/rolemap/internal/render"
	"github.com/ziadkadry99/rolemap/internal/viewcontrol"
	"github.com/ziadkadry99/rolemap/internal/views"
)

// checkOrigin applies the same origin policy as the HTTP CORS handler.
func (e *Explorer) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if u, err := url.Parse(origin); err == nil && strings.EqualFold(u.Host, r.Host) {
		return true
	}
	origin = strings.ToLower(origin)
	for _, pattern := range e.opts.AllowedOrigins {
		if matchOrigin(strings.ToLower(pattern), origin) {
			return true
		}
	}
	return false
}

func matchOrigin(pattern, origin string) bool {
	if pattern == "*" {
		return true
	}
	prefix, suffix, wild := strings.Cut(pattern, "*")
	if !wild {
		return pattern == origin
	}
	return len(origin) >= len(prefix)+len(suffix) &&
		strings.HasPrefix(origin, prefix) && strings.HasSuffix(origin, suffix)
}

// signalRequest is the incoming WebSocket message format.
type signalRequest struct {
	Type   string          `json:"type"`   // a signal type, or "drag"
	Detail json.RawMessage `json:"detail"` // {"view": ...}, {"role": ...} or a dragRequest
}

type dragRequest struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// signalResponse is the outgoing WebSocket message format.
type signalResponse struct {
	Type   string              `json:"type"` // "state", "update" or "error"
	State  *viewcontrol.State  `json:"state,omitempty"`
	Update *viewcontrol.Update `json:"update,omitempty"`
	SVG    map[string]string   `json:"svg,omitempty"`
	Error  string              `json:"error,omitempty"`
}

const dragMessage = "drag"

// handleWebSocket runs one view controller per connection. The first
// message sent is the full state; every signal after that is answered with
// the mounts it redrew.
func (e *Explorer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := e.upgrader.Upgrade(w, r, nil)
	if err != nil {
		e.opts.Logger.Error("websocket upgrade", "err", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	ctrl := e.controller()
	ctrl.Init(ctx)

	state := ctrl.State()
	e.sendResponse(conn, signalResponse{
		Type:  "state",
		State: &state,
		SVG:   e.mountSVGs(ctrl, views.MountArchitecture, views.MountSwitchable, views.MountRolePermissions),
	})

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				e.opts.Logger.Warn("websocket read", "err", err)
			}
			return
		}

		var req signalRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			e.sendError(conn, "invalid message format")
			continue
		}

		if req.Type == dragMessage {
			e.handleDrag(conn, ctrl, req)
			continue
		}

		sig, err := viewcontrol.ParseSignal(req.Type, req.Detail)
		if err != nil {
			e.sendError(conn, err.Error())
			continue
		}
		up, err := ctrl.Apply(ctx, sig)
		if err != nil {
			e.sendError(conn, err.Error())
			continue
		}
		e.sendResponse(conn, signalResponse{
			Type:   "update",
			Update: &up,
			SVG:    e.mountSVGs(ctrl, up.Mounts...),
		})
	}
}

func (e *Explorer) handleDrag(conn *websocket.Conn, ctrl *viewcontrol.Controller, req signalRequest) {
	var d dragRequest
	if err := json.Unmarshal(req.Detail, &d); err != nil || d.ID == "" {
		e.sendError(conn, "drag requires a node id")
		return
	}
	if !ctrl.Drag(d.ID, d.X, d.Y) {
		e.sendError(conn, "node not draggable: "+d.ID)
		return
	}
	up := viewcontrol.Update{State: ctrl.State(), Mounts: []string{views.MountSwitchable}}
	e.sendResponse(conn, signalResponse{
		Type:   "update",
		Update: &up,
		SVG:    e.mountSVGs(ctrl, up.Mounts...),
	})
}

// mountSVGs encodes the controller's scenes for the given mounts. Mounts
// with nothing drawn are left out.
func (e *Explorer) mountSVGs(ctrl *viewcontrol.Controller, mounts ...string) map[string]string {
	out := make(map[string]string, len(mounts))
	for _, m := range mounts {
		scene := ctrl.MountScene(m)
		if scene == nil || scene.Empty() {
			continue
		}
		svg, err := render.InlineSVG(scene)
		if err != nil {
			e.opts.Logger.Error("encoding scene", "mount", m, "err", err)
			continue
		}
		out[m] = string(svg)
	}
	return out
}

func (e *Explorer) sendResponse(conn *websocket.Conn, resp signalResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		e.opts.Logger.Warn("websocket write", "err", err)
	}
}

func (e *Explorer) sendError(conn *websocket.Conn, errMsg string) {
	e.sendResponse(conn, signalResponse{Type: "error", Error: errMsg})
}
