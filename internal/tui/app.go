package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/trainclock/internal/aclock"
	"github.com/sadopc/trainclock/internal/board"
	"github.com/sadopc/trainclock/internal/config"
	"github.com/sadopc/trainclock/internal/export"
	"github.com/sadopc/trainclock/internal/logger"
	"github.com/sadopc/trainclock/internal/store"
)

// eventBuffer is the store subscription buffer.
const eventBuffer = 64

var exportFormats = []string{"CSV", "JSON", "ICS"}

// Options configures the application.
type Options struct {
	Style            aclock.Style
	ClockRefresh     time.Duration
	CountdownRefresh time.Duration
	Upcoming         int
}

// OptionsFromConfig derives the application options from cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Style:            cfg.Clock.Style(),
		ClockRefresh:     cfg.ClockRefresh(),
		CountdownRefresh: cfg.CountdownInterval(),
		Upcoming:         cfg.Upcoming,
	}
}

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	board  *board.Board
	opts   Options
	now    func() time.Time
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	departures boardModel
	add        addModel
	stats      statsModel

	events      <-chan store.Event
	unsubscribe func()

	help        help.Model
	status      string
	statusError bool
}

func NewApp(s *store.Store, opts Options) App {
	h := help.New()
	h.ShowAll = false

	if opts.ClockRefresh <= 0 {
		opts.ClockRefresh = config.DefaultClockRefresh
	}
	if opts.CountdownRefresh <= 0 {
		opts.CountdownRefresh = config.DefaultCountdownRefresh
	}

	style := opts.Style
	if v, err := s.GetSetting(store.SettingSubSeconds); err == nil {
		if on, err := strconv.ParseBool(v); err == nil {
			style.Features.SubSeconds = on
		}
	}

	b := board.New()
	events, unsubscribe := s.Subscribe(eventBuffer)

	return App{
		store:       s,
		board:       b,
		opts:        opts,
		now:         time.Now,
		activeView:  viewBoard,
		departures:  newBoardModel(s, b, newClockModel(style)),
		add:         newAddModel(s),
		stats:       newStatsModel(b, opts.Upcoming),
		events:      events,
		unsubscribe: unsubscribe,
		help:        h,
	}
}

// Close stops listening to the store.
func (a App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.loadTrains(),
		waitForEvent(a.events),
		clockTickCmd(a.opts.ClockRefresh),
	)
}

func clockTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

func countdownCmd(key string, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return countdownTickMsg{key: key, at: t}
	})
}

// waitForEvent blocks on the store subscription. A closed channel ends the
// listener.
func waitForEvent(ch <-chan store.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return storeEventMsg(e)
	}
}

func (a App) loadTrains() tea.Cmd {
	return func() tea.Msg {
		trains, err := a.store.List()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		return trainsLoadedMsg{trains: trains}
	}
}

// addRow puts t on the board and starts its countdown chain. Trains already
// on the board keep their existing chain.
func (a *App) addRow(t store.Train) tea.Cmd {
	if !a.board.Add(t, a.now()) {
		return nil
	}
	return countdownCmd(t.Key, a.opts.CountdownRefresh)
}

func (a *App) removeRow(key string) {
	a.board.Remove(key)
	a.departures.clampCursor()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.departures.setSize(a.width, contentHeight)
		a.add.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		a.stats.refresh(a.now())
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.SubSeconds):
			on := !a.departures.clock.subSeconds()
			a.departures.clock.setSubSeconds(on)
			return a, a.saveSubSeconds(on)
		case key.Matches(msg, keys.New):
			a.activeView = viewAdd
			var cmd tea.Cmd
			a.add, cmd = a.add.showForm()
			return a, cmd
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewBoard
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewAdd
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewStats
			a.stats.refresh(a.now())
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			if a.activeView == viewStats {
				a.stats.refresh(a.now())
			}
			return a, nil
		}

	case clockTickMsg:
		a.departures.clock.tick(time.Time(msg))
		return a, clockTickCmd(a.opts.ClockRefresh)

	case countdownTickMsg:
		if _, ok := a.board.Refresh(msg.key, msg.at); !ok {
			// Removed: let the chain end.
			return a, nil
		}
		return a, countdownCmd(msg.key, a.opts.CountdownRefresh)

	case trainsLoadedMsg:
		for _, t := range msg.trains {
			cmds = append(cmds, a.addRow(t))
		}
		a.stats.refresh(a.now())
		return a, tea.Batch(cmds...)

	case storeEventMsg:
		cmds = append(cmds, waitForEvent(a.events))
		switch msg.Type {
		case store.ChildAdded:
			cmds = append(cmds, a.addRow(msg.Train))
		case store.ChildRemoved:
			a.removeRow(msg.Train.Key)
		}
		if a.activeView == viewStats {
			a.stats.refresh(a.now())
		}
		return a, tea.Batch(cmds...)

	case trainAddedMsg:
		a.activeView = viewBoard
		a.setStatus(fmt.Sprintf("Added %s to %s", msg.train.Name, msg.train.Dest), false)
		return a, a.addRow(*msg.train)

	case trainRemovedMsg:
		a.removeRow(msg.key)
		a.setStatus("Train removed", false)
		return a, nil

	case statusMsg:
		a.setStatus(msg.text, msg.isError)
		return a, nil

	case exportDoneMsg:
		a.setStatus("Exported to "+msg.path, false)
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a *App) setStatus(text string, isError bool) {
	a.status = text
	a.statusError = isError
	if isError {
		logger.Log.WithField("view", viewNames[a.activeView]).Warn(text)
	}
}

func (a App) saveSubSeconds(on bool) tea.Cmd {
	return func() tea.Msg {
		if err := a.store.SetSetting(store.SettingSubSeconds, strconv.FormatBool(on)); err != nil {
			return statusMsg{text: fmt.Sprintf("Settings error: %v", err), isError: true}
		}
		if on {
			return statusMsg{text: "Smooth seconds on"}
		}
		return statusMsg{text: "Smooth seconds off"}
	}
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewBoard:
		a.departures, cmd = a.departures.update(msg)
	case viewAdd:
		a.add, cmd = a.add.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	return a.activeView == viewAdd && a.add.formActive
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewBoard:
		content = a.departures.view()
	case viewAdd:
		content = a.add.view()
	case viewStats:
		content = a.stats.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("trainclock")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusError {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	// Imminent departures indicator
	imminent := ""
	if n := len(a.board.Imminent()); n > 0 {
		imminent = imminentStyle.Render(fmt.Sprintf(" ● %d departing", n))
	}

	left := footerStyle.Render(helpView)
	right := imminent + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// exportDir is the stored export directory, or the home directory.
func (a App) exportDir() string {
	if dir, err := a.store.GetSetting(store.SettingExportDir); err == nil && dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return home
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		trains, err := a.store.List()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		now := a.now()
		base := filepath.Join(a.exportDir(), "trainclock-export-"+now.Format("2006-01-02"))

		var path string
		switch format {
		case 0:
			path = base + ".csv"
			err = export.ToCSV(trains, now, path)
		case 1:
			path = base + ".json"
			err = export.ToJSON(trains, now, a.opts.Upcoming, path)
		default:
			path = base + ".ics"
			err = export.ToICS(trains, now, path)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("%s error: %v", exportFormats[min(format, len(exportFormats)-1)], err), isError: true}
		}

		return exportDoneMsg{path: path}
	}
}
