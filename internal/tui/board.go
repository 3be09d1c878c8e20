package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/trainclock/internal/board"
	"github.com/sadopc/trainclock/internal/store"
)

type boardModel struct {
	store  *store.Store
	board  *board.Board
	clock  clockModel
	width  int
	height int

	cursor int
}

func newBoardModel(s *store.Store, b *board.Board, clock clockModel) boardModel {
	return boardModel{
		store: s,
		board: b,
		clock: clock,
	}
}

func (m *boardModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.clock.setSize(w/2, h-4)
}

// clampCursor keeps the cursor on a row after the board shrinks.
func (m *boardModel) clampCursor() {
	n := m.board.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m boardModel) selected() (board.Row, bool) {
	rows := m.board.Rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return board.Row{}, false
	}
	return rows[m.cursor], true
}

func (m boardModel) update(msg tea.Msg) (boardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < m.board.Len()-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Delete):
			row, ok := m.selected()
			if !ok {
				return m, nil
			}
			return m, m.removeTrain(row.Train)
		}
	}
	return m, nil
}

func (m boardModel) removeTrain(t store.Train) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.Remove(t.Key); err != nil {
			return statusMsg{text: fmt.Sprintf("Remove error: %v", err), isError: true}
		}
		return trainRemovedMsg{key: t.Key}
	}
}

func (m boardModel) view() string {
	clock := panelStyle.Render(m.clock.view())
	table := m.renderTable(m.width - lipgloss.Width(clock) - 6)

	if m.width < lipgloss.Width(clock)+60 {
		return lipgloss.JoinVertical(lipgloss.Left, clock, panelStyle.Width(m.width-4).Render(table))
	}
	tableW := m.width - lipgloss.Width(clock) - 2
	return lipgloss.JoinHorizontal(lipgloss.Top, clock, panelStyle.Width(tableW).Render(table))
}

func (m boardModel) renderTable(w int) string {
	rows := m.board.Rows()

	title := titleStyle.Render("Departures")
	if len(rows) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			title, "",
			mutedStyle.Render("No trains yet. Press 2 or n to add one."),
		)
	}

	lines := []string{title, ""}
	lines = append(lines, mutedStyle.Render(fmt.Sprintf("  %-16s %-16s %6s %10s %10s", "Train", "Destination", "Freq", "Next", "Away")))
	lines = append(lines, mutedStyle.Render("  "+strings.Repeat("─", clamp(w-4, 10, 62))))

	for i, r := range rows {
		cursor := "  "
		rowStyle := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			rowStyle = selectedItemStyle
		}
		away := countdownStyle.Render(fmt.Sprintf("%10s", r.Countdown.String()))
		if r.Countdown.Imminent {
			away = imminentStyle.Render(fmt.Sprintf("%10s", r.Countdown.String()))
		}
		lines = append(lines, cursor+rowStyle.Render(fmt.Sprintf("%-16s", truncate(r.Train.Name, 16)))+
			fmt.Sprintf(" %-16s %6s %10s ", truncate(r.Train.Dest, 16), fmt.Sprintf("%dm", r.Train.Freq), formatArrival(r.Next))+
			away)
	}

	if imm := m.board.Imminent(); len(imm) > 0 {
		lines = append(lines, "", warningStyle.Render(fmt.Sprintf("%d departing within a minute", len(imm))))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
