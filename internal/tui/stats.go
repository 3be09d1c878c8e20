package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/trainclock/internal/board"
	"github.com/sadopc/trainclock/internal/schedule"
)

// statsHours is the chart horizon.
const statsHours = 12

type statsModel struct {
	board    *board.Board
	upcoming int
	width    int
	height   int

	now    time.Time
	counts []int
	chart  barchart.Model
}

func newStatsModel(b *board.Board, upcoming int) statsModel {
	return statsModel{
		board:    b,
		upcoming: upcoming,
		chart:    barchart.New(60, 12),
	}
}

func (s *statsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

// refresh recounts departures from now and rebuilds the chart.
func (s *statsModel) refresh(now time.Time) {
	s.now = now
	s.counts = s.board.DeparturesPerHour(now, statsHours)
	s.buildChart()
}

func (s *statsModel) buildChart() {
	chartWidth := s.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if s.height > 30 {
		chartHeight = 16
	}

	s.chart = barchart.New(chartWidth, chartHeight)

	start := s.now.Truncate(time.Minute)
	var bars []barchart.BarData
	for i, n := range s.counts {
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if i == 0 {
			style = lipgloss.NewStyle().Foreground(colorSecondary)
		}
		bars = append(bars, barchart.BarData{
			Label: start.Add(time.Duration(i) * time.Hour).Format("3PM"),
			Values: []barchart.BarValue{{
				Name:  "departures",
				Value: float64(n),
				Style: style,
			}},
		})
	}

	s.chart.PushAll(bars)
	s.chart.Draw()
}

func (s statsModel) total() int {
	n := 0
	for _, c := range s.counts {
		n += c
	}
	return n
}

func (s statsModel) view() string {
	w := s.width - 4

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Departures per hour"), "  ",
		mutedStyle.Render(fmt.Sprintf("next %d hours, %d total", statsHours, s.total())),
	)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", s.chart.View(), "", s.renderUpcoming(),
		),
	)
}

func (s statsModel) renderUpcoming() string {
	rows := s.board.Rows()
	if len(rows) == 0 {
		return mutedStyle.Render("  No trains scheduled")
	}
	if s.upcoming <= 0 {
		return ""
	}

	lines := []string{subtitleStyle.Render("Upcoming")}
	for _, r := range rows {
		times, err := schedule.Upcoming(r.Train.Recurrence(), s.now, s.upcoming)
		if err != nil {
			lines = append(lines, errorStyle.Render(fmt.Sprintf("  %s: %v", r.Train.Name, err)))
			continue
		}
		labels := make([]string, len(times))
		for i, t := range times {
			labels[i] = formatArrival(t)
		}
		lines = append(lines, fmt.Sprintf("  %s %s",
			highlightStyle.Render(fmt.Sprintf("%-16s", truncate(r.Train.Name, 16))),
			strings.Join(labels, "  "),
		))
	}
	return strings.Join(lines, "\n")
}
