package render

import (
	"bytes"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/samber/lo"
)

// errWriter keeps the first write error; svgo itself does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

func px(f float64) int { return int(math.Round(f)) }

func attr(name, value string) string { return fmt.Sprintf(`%s="%s"`, name, value) }

func attrf(name string, f float64) string { return attr(name, num(f)) }

// Encode writes scene as a standalone SVG document.
func Encode(w io.Writer, scene *Scene) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	width, height := px(scene.Width), px(scene.Height)
	canvas.Startview(width, height, 0, 0, width, height)

	if len(scene.Markers) > 0 {
		canvas.Def()
		for _, m := range scene.Markers {
			canvas.Marker(m.ID, px(m.RefX), 0, 6, 6, `viewBox="0 -5 10 10"`, `orient="auto"`)
			canvas.Path("M0,-5L10,0L0,5", attr("fill", m.Color))
			canvas.MarkerEnd()
		}
		canvas.DefEnd()
	}

	canvas.Group(`class="viewport"`, attr("transform", scene.Transform.String()))
	for _, e := range scene.Edges {
		style := []string{
			`class="link"`, `fill="none"`,
			attr("stroke", e.Stroke), attrf("stroke-width", e.StrokeWidth),
			attr("data-source", e.Source), attr("data-target", e.Target),
		}
		if e.Dashed {
			style = append(style, `stroke-dasharray="5,5"`)
		}
		if e.MarkerID != "" {
			style = append(style, attr("marker-end", "url(#"+e.MarkerID+")"))
		}
		canvas.Path(e.Path, style...)
	}
	for _, n := range scene.Nodes {
		encodeNode(canvas, n)
	}
	if len(scene.Arcs) > 0 {
		canvas.Group(`class="sunburst"`, attr("transform", fmt.Sprintf("translate(%s,%s)", num(scene.ArcOriginX), num(scene.ArcOriginY))))
		for _, a := range scene.Arcs {
			canvas.Group(`class="arc"`, fmt.Sprintf(`data-depth="%d"`, a.Depth))
			canvas.Title(a.Tooltip)
			canvas.Path(a.Path, attr("fill", a.Fill), `stroke="white"`, `stroke-width="1"`, `opacity="0.8"`)
			canvas.Gend()
		}
		for _, t := range scene.ArcLabels {
			encodeText(canvas, t)
		}
		canvas.Gend()
	}
	canvas.Gend()

	for _, p := range scene.Polygons {
		style := []string{attr("fill", p.Fill), attr("stroke", p.Stroke), attrf("stroke-width", p.StrokeWidth)}
		if p.FillOpacity > 0 {
			style = append(style, attrf("fill-opacity", p.FillOpacity))
		}
		if p.Name != "" {
			style = append(style, attr("data-series", p.Name))
		}
		canvas.Polygon(lo.Map(p.Xs, func(x float64, _ int) int { return px(x) }),
			lo.Map(p.Ys, func(y float64, _ int) int { return px(y) }), style...)
	}
	for _, l := range scene.Lines {
		canvas.Line(px(l.X1), px(l.Y1), px(l.X2), px(l.Y2), attr("stroke", l.Stroke), attrf("stroke-width", l.Width))
	}
	for _, d := range scene.Dots {
		canvas.Circle(px(d.X), px(d.Y), px(d.R), attr("fill", d.Fill))
	}
	for _, t := range scene.Overlay {
		encodeText(canvas, t)
	}
	if len(scene.Legend) > 0 {
		canvas.Group(`class="legend"`)
		for i, entry := range scene.Legend {
			y := 40 + i*20
			canvas.Rect(10, y-10, 12, 12, attr("fill", entry.Color))
			canvas.Text(28, y, entry.Label, `font-size="11"`, `fill="#333"`)
		}
		canvas.Gend()
	}

	canvas.End()
	return ew.err
}

// SVG encodes scene into a byte slice.
func SVG(scene *Scene) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, scene); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeNode(canvas *svg.SVG, n NodeShape) {
	canvas.Group(`class="node"`, attr("data-id", n.ID), attr("data-type", string(n.Type)),
		attr("transform", fmt.Sprintf("translate(%s,%s)", num(n.X), num(n.Y))))
	canvas.Title(n.Tooltip)

	shape := []string{attr("fill", n.Fill), `stroke="white"`, `stroke-width="2"`}
	if n.Opacity > 0 && n.Opacity < 1 {
		shape = append(shape, attrf("opacity", n.Opacity))
	}
	switch n.Kind {
	case ShapeEllipse:
		canvas.Ellipse(0, 0, px(n.Width/2), px(n.Height/2), shape...)
	case ShapeCircle:
		canvas.Circle(0, 0, px(n.Radius), shape...)
	default:
		canvas.Roundrect(px(-n.Width/2), px(-n.Height/2), px(n.Width), px(n.Height), px(n.RX), px(n.RX), shape...)
	}

	label := []string{`text-anchor="middle"`, `fill="white"`, `font-weight="bold"`, attrf("font-size", n.FontSize)}
	if len(n.Lines) == 1 {
		canvas.Text(0, 0, n.Lines[0], append(label, attrf("dy", n.LineDY[0]))...)
	} else {
		canvas.Textspan(0, 0, "", label...)
		for i, line := range n.Lines {
			canvas.Span(line, `x="0"`, attrf("dy", n.LineDY[i]))
		}
		canvas.TextEnd()
	}
	if n.Caption != "" {
		canvas.Text(0, 0, n.Caption, `text-anchor="middle"`, `fill="white"`, `font-size="10"`, `dy="25"`)
	}
	canvas.Gend()
}

func encodeText(canvas *svg.SVG, t TextShape) {
	style := []string{}
	if t.Anchor != "" {
		style = append(style, attr("text-anchor", t.Anchor))
	}
	if t.Size > 0 {
		style = append(style, attrf("font-size", t.Size))
	}
	if t.Bold {
		style = append(style, `font-weight="bold"`)
	}
	if t.Fill != "" {
		style = append(style, attr("fill", t.Fill))
	}
	if t.Transform != "" {
		style = append(style, attr("transform", t.Transform))
	}
	if t.DY != "" {
		style = append(style, attr("dy", t.DY))
	}
	switch len(t.Lines) {
	case 0:
		return
	case 1:
		canvas.Text(px(t.X), px(t.Y), t.Lines[0], style...)
	default:
		canvas.Textspan(px(t.X), px(t.Y), "", style...)
		lh := t.LineHeight
		if lh == 0 {
			lh = 1.1
		}
		for i, line := range t.Lines {
			canvas.Span(line, attr("x", num(float64(px(t.X)))), attr("dy", num(float64(min(i, 1))*lh)+"em"))
		}
		canvas.TextEnd()
	}
}

// InlineSVG encodes scene without the XML prolog so it can be embedded in
// an HTML document.
func InlineSVG(scene *Scene) ([]byte, error) {
	doc, err := SVG(scene)
	if err != nil {
		return nil, err
	}
	if i := bytes.Index(doc, []byte("<svg")); i > 0 {
		doc = doc[i:]
	}
	return doc, nil
}
