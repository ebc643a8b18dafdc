// Package signature captures a hand drawn signature from pointer events and
// turns it into a PNG artifact.
package signature

import (
	"errors"
)

// ErrNotSigned is returned by Submit when nothing has been drawn.
var ErrNotSigned = errors.New("please provide your signature before approving")

// Default pad dimensions, in pixels.
const (
	DefaultWidth  = 400
	DefaultHeight = 150
)

// Phase is the stage of a pointer gesture.
type Phase string

const (
	PhaseDown  Phase = "down"
	PhaseMove  Phase = "move"
	PhaseUp    Phase = "up"
	PhaseLeave Phase = "leave"
)

// Source tells mouse events apart from touch events.
type Source string

const (
	SourceMouse Source = "mouse"
	SourceTouch Source = "touch"
)

// PointerEvent is one input event from the signing surface. Mouse events
// carry offsets relative to the surface; touch events carry client
// coordinates plus the surface's client rectangle origin.
type PointerEvent struct {
	Phase   Phase   `json:"phase"`
	Source  Source  `json:"source"`
	OffsetX float64 `json:"offset_x,omitempty"`
	OffsetY float64 `json:"offset_y,omitempty"`
	ClientX float64 `json:"client_x,omitempty"`
	ClientY float64 `json:"client_y,omitempty"`
	RectX   float64 `json:"rect_x,omitempty"`
	RectY   float64 `json:"rect_y,omitempty"`
}

// Point is a position on the signing surface.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Position normalises the event to surface coordinates.
func (e PointerEvent) Position() Point {
	if e.Source == SourceTouch {
		return Point{X: e.ClientX - e.RectX, Y: e.ClientY - e.RectY}
	}
	return Point{X: e.OffsetX, Y: e.OffsetY}
}

// Capture is the signing pad state machine. It is Idle until a pointer goes
// down and Drawing until it is released or leaves the surface.
type Capture struct {
	width     int
	height    int
	strokes   [][]Point
	drawing   bool
	hasSigned bool
}

// NewCapture returns an idle pad of the given size. Non-positive dimensions
// fall back to the defaults.
func NewCapture(width, height int) *Capture {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Capture{width: width, height: height}
}

// Handle feeds one pointer event into the pad.
func (c *Capture) Handle(e PointerEvent) {
	switch e.Phase {
	case PhaseDown:
		c.strokes = append(c.strokes, []Point{e.Position()})
		c.drawing = true
		c.hasSigned = true
	case PhaseMove:
		if !c.drawing {
			return
		}
		last := len(c.strokes) - 1
		c.strokes[last] = append(c.strokes[last], e.Position())
	case PhaseUp, PhaseLeave:
		c.drawing = false
	}
}

// Replay feeds a recorded event sequence.
func (c *Capture) Replay(events []PointerEvent) {
	for _, e := range events {
		c.Handle(e)
	}
}

// Clear wipes the pad. It is the only way HasSigned becomes false again.
func (c *Capture) Clear() {
	c.strokes = nil
	c.drawing = false
	c.hasSigned = false
}

// HasSigned reports whether a stroke was started since the last Clear.
func (c *Capture) HasSigned() bool { return c.hasSigned }

// Drawing reports whether a stroke is in progress.
func (c *Capture) Drawing() bool { return c.drawing }

// Strokes returns a copy of the recorded strokes.
func (c *Capture) Strokes() [][]Point {
	out := make([][]Point, len(c.strokes))
	for i, s := range c.strokes {
		out[i] = append([]Point(nil), s...)
	}
	return out
}

// Submit rasterises the signature and hands it to onApprove exactly once.
// Without a signature, or when every stroke lies off the pad, it returns
// ErrNotSigned and changes nothing.
func (c *Capture) Submit(onApprove func(Artifact) error) error {
	if !c.hasSigned {
		return ErrNotSigned
	}
	artifact, img, err := rasterize(c.strokes, c.width, c.height)
	if err != nil {
		return err
	}
	if Empty(img) {
		return ErrNotSigned
	}
	return onApprove(artifact)
}
