package tui

import (
	"math"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/graph"
	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/trainclock/internal/aclock"
)

// Braille cells are 2 dots wide and 4 dots tall.
const (
	dotsX = 2
	dotsY = 4

	// Surface widths are tuned for a pixel canvas; a dot is much coarser.
	dotsPerWidth = 3.0
)

// brailleSurface rasterizes clock strokes into a braille dot grid and renders
// it through an ntcharts canvas. The last stroke touching a cell sets its color.
type brailleSurface struct {
	cols, rows int
	dots       *runes.PatternDotsGrid
	colors     []string
	canvas     canvas.Model
}

func newBrailleSurface(cols, rows int) *brailleSurface {
	s := &brailleSurface{}
	s.resize(cols, rows)
	return s
}

func (s *brailleSurface) resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	s.cols = cols
	s.rows = rows
	s.dots = runes.NewPatternDotsGrid(cols*dotsX, rows*dotsY)
	s.colors = make([]string, cols*rows)
	s.canvas = canvas.New(cols, rows)
}

// Size reports the dot grid.
func (s *brailleSurface) Size() (float64, float64) {
	return float64(s.cols * dotsX), float64(s.rows * dotsY)
}

func (s *brailleSurface) Clear(_, _ float64) {
	s.dots.Reset()
	for i := range s.colors {
		s.colors[i] = ""
	}
}

func (s *brailleSurface) StrokeLine(from, to aclock.Point, color string, width float64) {
	brush := brushSize(width)
	for _, p := range graph.GetLinePoints(dotPoint(from.X, from.Y), dotPoint(to.X, to.Y)) {
		s.stamp(p, color, brush)
	}
}

func (s *brailleSurface) StrokeArc(center aclock.Point, radius, start, end float64, color string, width float64) {
	brush := brushSize(width)
	c := dotPoint(center.X, center.Y)
	if radius < 1 {
		s.stamp(c, color, brush)
		return
	}
	r := int(math.Round(radius))
	full := end-start >= 2*math.Pi-1e-6
	for _, p := range graph.GetCirclePoints(c, r) {
		if !full && !onArc(p.Sub(c), start, end) {
			continue
		}
		s.stamp(p, color, brush)
	}
}

// onArc reports whether the offset d from an arc's center lies between the
// start and end angles, measured clockwise from the positive x axis.
func onArc(d canvas.Point, start, end float64) bool {
	a := math.Atan2(float64(d.Y), float64(d.X))
	for a < start {
		a += 2 * math.Pi
	}
	for a > start+2*math.Pi {
		a -= 2 * math.Pi
	}
	return a <= end
}

func dotPoint(x, y float64) canvas.Point {
	return canvas.Point{X: int(math.Round(x)), Y: int(math.Round(y))}
}

func brushSize(width float64) int {
	n := int(math.Round(width / dotsPerWidth))
	if n < 1 {
		return 1
	}
	return n
}

// stamp sets a brush×brush square of dots centered on p.
func (s *brailleSurface) stamp(p canvas.Point, color string, brush int) {
	off := (brush - 1) / 2
	for oy := 0; oy < brush; oy++ {
		for ox := 0; ox < brush; ox++ {
			s.set(p.X-off+ox, p.Y-off+oy, color)
		}
	}
}

func (s *brailleSurface) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.cols*dotsX && y < s.rows*dotsY
}

func (s *brailleSurface) set(x, y int, color string) {
	if !s.inBounds(x, y) {
		return
	}
	s.dots.Set(x, y)
	s.colors[(y/dotsY)*s.cols+x/dotsX] = color
}

// dot reports whether the dot at (x, y) is set.
func (s *brailleSurface) dot(x, y int) bool {
	if !s.inBounds(x, y) {
		return false
	}
	single := runes.NewPatternDotsGrid(dotsX, dotsY)
	single.Set(x%dotsX, y%dotsY)
	mask := single.BraillePatterns()[0][0] &^ runes.BrailleBlockOffset
	cell := s.dots.BraillePatterns()[y/dotsY][x/dotsX] &^ runes.BrailleBlockOffset
	return cell&mask != 0
}

// inked counts the cells holding at least one dot.
func (s *brailleSurface) inked() int {
	n := 0
	for _, row := range s.dots.BraillePatterns() {
		for _, r := range row {
			if r != runes.BrailleBlockOffset {
				n++
			}
		}
	}
	return n
}

func (s *brailleSurface) View() string {
	s.canvas.Clear()
	for y, row := range s.dots.BraillePatterns() {
		for x, r := range row {
			if r == runes.BrailleBlockOffset {
				continue
			}
			graph.DrawBrailleRune(&s.canvas, canvas.Point{X: x, Y: y}, r, inkStyle(s.colors[y*s.cols+x]))
		}
	}
	return s.canvas.View()
}

// inkStyle maps a stroke color onto the terminal. Black ink would vanish on
// dark backgrounds, so it uses the default foreground instead.
func inkStyle(color string) lipgloss.Style {
	switch strings.ToLower(color) {
	case "", "#000", "#000000", "black":
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// clockModel is the analog clock with the digital time beneath it.
type clockModel struct {
	surface  *brailleSurface
	renderer *aclock.Renderer
	style    aclock.Style
	now      time.Time
}

func newClockModel(style aclock.Style) clockModel {
	surface := newBrailleSurface(24, 12)
	return clockModel{
		surface:  surface,
		renderer: aclock.New(surface, style),
		style:    style,
	}
}

// setSize fits a round face into the available area. A terminal cell is about
// twice as tall as it is wide, so the face needs two columns per row.
func (c *clockModel) setSize(w, h int) {
	rows := clamp(h/2, 6, 20)
	cols := rows * 2
	if cols > w-4 && w > 16 {
		cols = w - 4
		rows = cols / 2
	}
	c.surface.resize(cols, rows)
	c.draw()
}

func (c *clockModel) setSubSeconds(on bool) {
	c.style.Features.SubSeconds = on
	c.renderer = aclock.New(c.surface, c.style)
	c.draw()
}

func (c clockModel) subSeconds() bool {
	return c.style.Features.SubSeconds
}

// tick advances the clock to t and redraws it.
func (c *clockModel) tick(t time.Time) {
	c.now = t
	c.draw()
}

func (c *clockModel) draw() {
	if c.now.IsZero() {
		c.now = time.Now()
	}
	c.renderer.Draw(c.now)
}

func (c clockModel) view() string {
	face := c.surface.View()
	digital := digitalStyle.Width(c.surface.cols).Render(formatClock(c.now))
	return lipgloss.JoinVertical(lipgloss.Center, face, digital)
}
