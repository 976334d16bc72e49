package render

// Stage is one step of a before/after process timeline.
type Stage struct {
	Name    string  `json:"name"`
	Old     string  `json:"old"`
	New     string  `json:"new"`
	OldTime string  `json:"old_time"`
	NewTime string  `json:"new_time"`
	X       float64 `json:"x"`
}

const (
	oldColor = "#dc3545"
	newColor = "#198754"
)

// DrawTimeline clears scene and draws stages along a horizontal axis, with
// the current process above and the new process below. Stage X values are
// fractions of the scene width.
func DrawTimeline(scene *Scene, stages []Stage) Result {
	scene.Clear()
	w, h := scene.Width, scene.Height
	axisY := h * 0.5
	oldY := h * 0.15
	newY := h * 0.85
	wrapWidth := w * 0.12

	scene.Lines = append(scene.Lines, LineShape{X1: w * 0.1, Y1: axisY, X2: w * 0.9, Y2: axisY, Stroke: "#ccc", Width: 3})

	for _, st := range stages {
		x := w * st.X
		scene.Dots = append(scene.Dots, DotShape{X: x, Y: axisY, R: 8, Fill: "#3A86FF"})
		scene.Overlay = append(scene.Overlay,
			TextShape{X: x, Y: axisY - 35, Lines: []string{st.Name}, Size: 12, Bold: true, Anchor: "middle", Fill: "#333"},
			TextShape{X: x + 12, Y: oldY, Lines: Wrap(st.Old, 10, wrapWidth), LineHeight: 1.1, Size: 10, Anchor: "start", Fill: oldColor},
			TextShape{X: x + 12, Y: oldY + 30, Lines: []string{st.OldTime}, Size: 9, Anchor: "start", Fill: oldColor},
			TextShape{X: x + 12, Y: newY, Lines: Wrap(st.New, 10, wrapWidth), LineHeight: 1.1, Size: 10, Anchor: "start", Fill: newColor},
			TextShape{X: x + 12, Y: newY + 30, Lines: []string{st.NewTime}, Size: 9, Anchor: "start", Fill: newColor},
		)
	}

	scene.Overlay = append(scene.Overlay,
		TextShape{X: w * 0.05, Y: oldY, Lines: []string{"Current:"}, Bold: true, Anchor: "start", Fill: oldColor},
		TextShape{X: w * 0.05, Y: newY, Lines: []string{"New:"}, Bold: true, Anchor: "start", Fill: newColor},
	)
	return Result{Nodes: len(stages)}
}
