// Package aclock draws an analog clock face onto an immediate-mode 2D surface.
package aclock

import (
	"math"
	"time"
)

const (
	oneDegree = math.Pi / 180

	// 6/1000 of a degree per millisecond of second hand travel.
	secondConst = 6.0 / 1000
)

// Point is a position in surface coordinates.
type Point struct {
	X, Y float64
}

// Surface is the drawing target. Angles are radians, clockwise from 3 o'clock.
type Surface interface {
	Size() (w, h float64)
	Clear(w, h float64)
	StrokeArc(center Point, radius, start, end float64, color string, width float64)
	StrokeLine(from, to Point, color string, width float64)
}

// Frame is the geometry of a single draw call.
type Frame struct {
	Width  float64
	Height float64
	Center Point
	Radius float64
}

// NewFrame computes the frame for a w×h surface. The radius is half of the
// shorter axis scaled by radiusLen.
func NewFrame(w, h, radiusLen float64) Frame {
	f := Frame{
		Width:  w,
		Height: h,
		Center: Point{X: w / 2, Y: h / 2},
	}
	if w > h {
		f.Radius = f.Center.Y
	} else {
		f.Radius = f.Center.X
	}
	f.Radius *= radiusLen
	return f
}

// Polar converts an angle and distance from the center into surface
// coordinates.
func (f Frame) Polar(angle, r float64) Point {
	return Point{
		X: f.Center.X + r*math.Cos(angle),
		Y: f.Center.Y + r*math.Sin(angle),
	}
}

// Hands holds hand positions in whole degrees clockwise from 12 o'clock.
type Hands struct {
	Hour   float64
	Minute float64
	Second float64
}

// HandDegrees decomposes t on a 12 hour dial. Each hand is rounded to a whole
// degree, so the minute and hour hands advance in visible steps.
func HandDegrees(t time.Time, subSeconds bool) Hands {
	hour := float64(t.Hour() % 12)
	minute := float64(t.Minute())
	sec := float64(t.Second())
	mil := float64(t.Nanosecond() / int(time.Millisecond))

	h := Hands{
		Hour:   math.Round(hour*30 + minute/2),
		Minute: math.Round(minute*6 + sec/10),
		Second: sec * 6,
	}
	if subSeconds {
		h.Second += math.Round(mil * secondConst)
	}
	return h
}

// handAngle turns dial degrees into a surface angle; 12 o'clock is -π/2.
func handAngle(degrees float64) float64 {
	return -math.Pi/2 + oneDegree*degrees
}

// Renderer draws one clock onto one surface.
type Renderer struct {
	surface Surface
	style   Style
	frame   Frame
}

// New returns a renderer for surface. A nil surface panics.
func New(surface Surface, style Style) *Renderer {
	if surface == nil {
		panic("aclock: nil surface")
	}
	return &Renderer{surface: surface, style: style}
}

// Style returns the renderer configuration.
func (r *Renderer) Style() Style { return r.style }

// Frame returns the geometry of the last draw.
func (r *Renderer) Frame() Frame { return r.frame }

// Draw fully redraws the surface for the moment now.
func (r *Renderer) Draw(now time.Time) {
	s := r.style
	w, h := r.surface.Size()
	r.frame = NewFrame(w, h, s.Lengths.Radius)
	radius := r.frame.Radius

	r.surface.Clear(w, h)

	if s.Features.MinuteTicks {
		r.ticks(60, math.Pi/30, s.Colors.MinuteTick, s.Widths.MinuteTick, radius*s.Lengths.MinuteTick)
	}
	if s.Features.MinorTicks {
		r.ticks(12, math.Pi/6, s.Colors.MinorTick, s.Widths.MinorTick, radius*s.Lengths.MinorTick)
	}
	if s.Features.MajorTicks {
		r.ticks(4, math.Pi/2, s.Colors.MajorTick, s.Widths.MajorTick, radius*s.Lengths.MajorTick)
	}

	if s.Features.Ring {
		r.surface.StrokeArc(r.frame.Center, radius, 0, 2*math.Pi, s.Colors.Ring, s.Widths.Ring)
	}

	hands := HandDegrees(now, s.Features.SubSeconds)
	if s.Features.HourHand {
		r.line(handAngle(hands.Hour), s.Colors.Hour, s.Widths.Hour, 0, radius*s.Lengths.Hour)
	}
	if s.Features.MinuteHand {
		r.line(handAngle(hands.Minute), s.Colors.Minute, s.Widths.Minute, 0, radius*s.Lengths.Minute)
	}
	if s.Features.SecondHand {
		r.line(handAngle(hands.Second), s.Colors.Second, s.Widths.Second, 0, radius*s.Lengths.Second)
	}

	if s.Features.Center {
		r.surface.StrokeArc(r.frame.Center, s.Lengths.CenterRadius, 0, 2*math.Pi, s.Colors.Center, s.Widths.Center)
	}
}

// ticks draws n radial marks starting at angle 0 (3 o'clock) spaced by step.
func (r *Renderer) ticks(n int, step float64, color string, width, inner float64) {
	theta := 0.0
	for i := 0; i < n; i++ {
		r.line(theta, color, width, inner, r.frame.Radius)
		theta += step
	}
}

func (r *Renderer) line(angle float64, color string, width, rStart, rEnd float64) {
	r.surface.StrokeLine(r.frame.Polar(angle, rStart), r.frame.Polar(angle, rEnd), color, width)
}
