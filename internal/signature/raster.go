package signature

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"math"

	"golang.org/x/image/vector"
)

// Stroke styling of the pad.
var (
	InkColor = color.RGBA{R: 0x33, G: 0x41, B: 0x55, A: 0xff}
	InkWidth = 2.0
)

// Artifact is the rasterised signature.
type Artifact struct {
	PNG    []byte
	Width  int
	Height int
}

// DataURL encodes the PNG as a data URL.
func (a Artifact) DataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(a.PNG)
}

// Rasterize draws strokes with round caps and joins onto a transparent image
// and encodes it as PNG.
func Rasterize(strokes [][]Point, width, height int) (Artifact, error) {
	artifact, _, err := rasterize(strokes, width, height)
	return artifact, err
}

func rasterize(strokes [][]Point, width, height int) (Artifact, *image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	ink := image.NewUniform(InkColor)
	brush := &pen{z: vector.NewRasterizer(width, height), w: float64(width), h: float64(height)}
	radius := InkWidth / 2

	// Each shape is filled on its own so overlapping shapes of opposite
	// winding never cancel out.
	fill := func(build func()) {
		brush.z.Reset(width, height)
		build()
		brush.z.Draw(img, img.Bounds(), ink, image.Point{})
	}

	for _, stroke := range strokes {
		for i, p := range stroke {
			fill(func() { brush.disc(p, radius) })
			if i == 0 {
				continue
			}
			a, b, ok := brush.clip(stroke[i-1], p)
			if !ok {
				continue
			}
			fill(func() { brush.segment(a, b, radius) })
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Artifact{}, nil, err
	}
	return Artifact{PNG: buf.Bytes(), Width: width, Height: height}, img, nil
}

// Empty reports whether img has no inked pixels.
func Empty(img image.Image) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0 {
				return false
			}
		}
	}
	return true
}

// Decode parses an artifact's PNG back into an image.
func Decode(a Artifact) (image.Image, error) {
	return png.Decode(bytes.NewReader(a.PNG))
}

type pen struct {
	z    *vector.Rasterizer
	w, h float64
}

// clip trims the segment a-b to the canvas rectangle (Liang-Barsky). It
// reports false when no part of the segment lies on the canvas.
func (p *pen) clip(a, b Point) (Point, Point, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, a.X},
		{dx, p.w - a.X},
		{-dy, a.Y},
		{dy, p.h - a.Y},
	}
	for _, e := range edges {
		q, r := e[0], e[1]
		if q == 0 {
			if r < 0 {
				return Point{}, Point{}, false
			}
			continue
		}
		t := r / q
		if q < 0 {
			t0 = math.Max(t0, t)
		} else {
			t1 = math.Min(t1, t)
		}
		if t0 > t1 {
			return Point{}, Point{}, false
		}
	}
	return Point{X: a.X + t0*dx, Y: a.Y + t0*dy}, Point{X: a.X + t1*dx, Y: a.Y + t1*dy}, true
}

// clamp keeps polygon corners inside the rasterizer's bounds. Centre lines
// are clipped first, so clamping moves a corner by at most the pen radius.
func (p *pen) clamp(x, y float64) (float32, float32) {
	return float32(math.Min(math.Max(x, 0), p.w)), float32(math.Min(math.Max(y, 0), p.h))
}

func (p *pen) moveTo(x, y float64) { p.z.MoveTo(p.clamp(x, y)) }
func (p *pen) lineTo(x, y float64) { p.z.LineTo(p.clamp(x, y)) }

func (p *pen) disc(c Point, r float64) {
	const sides = 12
	p.moveTo(c.X+r, c.Y)
	for i := 1; i < sides; i++ {
		angle := 2 * math.Pi * float64(i) / sides
		p.lineTo(c.X+r*math.Cos(angle), c.Y+r*math.Sin(angle))
	}
	p.z.ClosePath()
}

func (p *pen) segment(a, b Point, r float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	nx, ny := -dy/length*r, dx/length*r
	p.moveTo(a.X+nx, a.Y+ny)
	p.lineTo(b.X+nx, b.Y+ny)
	p.lineTo(b.X-nx, b.Y-ny)
	p.lineTo(a.X-nx, a.Y-ny)
	p.z.ClosePath()
}
