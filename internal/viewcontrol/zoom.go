package viewcontrol

import (
	"math"
	"time"

	"github.com/ziadkadry99/rolemap/internal/render"
)

const (
	DefaultMinScale = 0.5
	DefaultMaxScale = 3.0

	zoomInFactor  = 1.2
	zoomOutFactor = 0.8

	// TransitionDuration is how long zoom animations take on the page.
	TransitionDuration = 300 * time.Millisecond
)

// Transition animates a viewport change.
type Transition struct {
	From     render.Transform `json:"from"`
	To       render.Transform `json:"to"`
	Duration time.Duration    `json:"duration"`
}

// At returns the viewport elapsed into the transition, eased cubic in-out.
func (t Transition) At(elapsed time.Duration) render.Transform {
	if t.Duration <= 0 || elapsed >= t.Duration {
		return t.To
	}
	if elapsed <= 0 {
		return t.From
	}
	return t.From.Interpolate(t.To, easeCubicInOut(float64(elapsed)/float64(t.Duration)))
}

func easeCubicInOut(u float64) float64 {
	u *= 2
	if u <= 1 {
		return u * u * u / 2
	}
	u -= 2
	return (u*u*u + 2) / 2
}

// Zoom is a pan/zoom viewport with a bounded scale. Scaling keeps the
// centre of the canvas fixed.
type Zoom struct {
	Min, Max      float64
	width, height float64
	current       render.Transform
}

// NewZoom returns an identity viewport for a canvas of the given size.
func NewZoom(width, height, minScale, maxScale float64) *Zoom {
	return &Zoom{Min: minScale, Max: maxScale, width: width, height: height, current: render.Identity()}
}

// Current is the viewport after the last change.
func (z *Zoom) Current() render.Transform { return z.current }

// ScaleBy multiplies the scale by f, clamped to [Min, Max].
func (z *Zoom) ScaleBy(f float64) Transition {
	from := z.current
	k := math.Min(math.Max(from.K*f, z.Min), z.Max)
	cx, cy := z.width/2, z.height/2
	z.current = render.Transform{
		X: cx - (cx-from.X)/from.K*k,
		Y: cy - (cy-from.Y)/from.K*k,
		K: k,
	}
	return Transition{From: from, To: z.current, Duration: TransitionDuration}
}

// In zooms in one step.
func (z *Zoom) In() Transition { return z.ScaleBy(zoomInFactor) }

// Out zooms out one step.
func (z *Zoom) Out() Transition { return z.ScaleBy(zoomOutFactor) }

// Reset returns to the identity viewport.
func (z *Zoom) Reset() Transition {
	from := z.current
	z.current = render.Identity()
	return Transition{From: from, To: z.current, Duration: TransitionDuration}
}
