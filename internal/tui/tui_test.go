package tui

import (
	"math"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/trainclock/internal/aclock"
	"github.com/sadopc/trainclock/internal/board"
	"github.com/sadopc/trainclock/internal/schedule"
	"github.com/sadopc/trainclock/internal/store"
)

var fixed = time.Date(2025, 6, 14, 8, 7, 0, 0, time.UTC)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestApp(t *testing.T, s *store.Store) App {
	t.Helper()
	app := NewApp(s, Options{Style: aclock.DefaultStyle(), Upcoming: 3})
	app.now = func() time.Time { return fixed }
	t.Cleanup(app.Close)
	return app
}

func mustPush(t *testing.T, s *store.Store, name string, hour, minute, freq int) *store.Train {
	t.Helper()
	tr, err := s.Push(schedule.Recurrence{Name: name, Dest: "Boston", Hour: hour, Minute: minute, Interval: freq})
	if err != nil {
		t.Fatal(err)
	}
	return tr
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// ============================================================
// Braille surface
// ============================================================

func TestBrailleSurfaceSize(t *testing.T) {
	s := newBrailleSurface(10, 5)
	w, h := s.Size()
	if w != 20 || h != 20 {
		t.Fatalf("size = %vx%v, want 20x20", w, h)
	}
}

func TestBrailleBits(t *testing.T) {
	s := newBrailleSurface(1, 1)
	s.set(0, 0, "#ff0000")
	s.set(1, 3, "#00ff00")
	if r := s.dots.BraillePatterns()[0][0]; r != 0x2881 {
		t.Fatalf("pattern = %#x, want 0x2881", r)
	}
	if s.colors[0] != "#00ff00" {
		t.Fatalf("color = %q, last stroke should win", s.colors[0])
	}
	if !s.dot(0, 0) || !s.dot(1, 3) || s.dot(1, 0) {
		t.Fatal("dot should report exactly the set positions")
	}
	if !strings.ContainsRune(s.View(), rune(0x2881)) {
		t.Fatal("view should contain the braille rune for the set dots")
	}
}

func TestBrailleOutOfBoundsIgnored(t *testing.T) {
	s := newBrailleSurface(2, 2)
	s.set(-1, 0, "#fff")
	s.set(0, 8, "#fff")
	s.set(4, 0, "#fff")
	if n := s.inked(); n != 0 {
		t.Fatalf("%d cells touched by out of bounds dots", n)
	}
}

func TestBrailleStrokeLine(t *testing.T) {
	s := newBrailleSurface(10, 2)
	s.StrokeLine(aclock.Point{X: 0, Y: 2}, aclock.Point{X: 19, Y: 2}, "#fff", 1)
	for x := 0; x < 20; x++ {
		if !s.dot(x, 2) {
			t.Fatalf("dot (%d, 2) not set", x)
		}
	}
	if s.dot(5, 6) {
		t.Fatal("thin line should not touch other rows")
	}
}

func TestBrailleStrokeArc(t *testing.T) {
	s := newBrailleSurface(20, 10)
	center := aclock.Point{X: 20, Y: 20}
	s.StrokeArc(center, 10, 0, 2*3.14159265, "#fff", 1)
	for _, p := range [][2]int{{30, 20}, {10, 20}, {20, 10}, {20, 30}} {
		if !s.dot(p[0], p[1]) {
			t.Fatalf("ring dot %v not set", p)
		}
	}
	if s.dot(20, 20) {
		t.Fatal("ring should not fill the center")
	}

	s.Clear(0, 0)
	s.StrokeArc(center, 0.5, 0, 2*3.14159265, "#fff", 1)
	if !s.dot(20, 20) {
		t.Fatal("sub-dot radius should stamp the center")
	}
}

func TestBrailleStrokePartialArc(t *testing.T) {
	s := newBrailleSurface(20, 10)
	s.StrokeArc(aclock.Point{X: 20, Y: 20}, 10, 0, math.Pi/2, "#fff", 1)
	if !s.dot(30, 20) {
		t.Fatal("arc start should be drawn")
	}
	if s.dot(10, 20) || s.dot(20, 10) {
		t.Fatal("points outside the arc should stay clear")
	}
}

func TestBrailleClear(t *testing.T) {
	s := newBrailleSurface(4, 2)
	s.StrokeLine(aclock.Point{X: 0, Y: 0}, aclock.Point{X: 7, Y: 7}, "#fff", 1)
	if s.inked() == 0 {
		t.Fatal("line should ink some cells")
	}
	s.Clear(0, 0)
	if s.inked() != 0 || s.colors[0] != "" {
		t.Fatal("clear should reset dots and colors")
	}
}

func TestBrushSize(t *testing.T) {
	tests := []struct {
		width float64
		want  int
	}{
		{0, 1},
		{1, 1},
		{2, 1},
		{5, 2},
		{6, 2},
		{9, 3},
	}
	for _, tt := range tests {
		if got := brushSize(tt.width); got != tt.want {
			t.Errorf("brushSize(%v) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestInkStyleBlack(t *testing.T) {
	if _, ok := inkStyle("#000000").GetForeground().(lipgloss.NoColor); !ok {
		t.Fatal("black ink should use the terminal foreground")
	}
	if _, ok := inkStyle("#ff0000").GetForeground().(lipgloss.NoColor); ok {
		t.Fatal("red ink should keep its color")
	}
}

// ============================================================
// Clock model
// ============================================================

func TestClockModelSize(t *testing.T) {
	c := newClockModel(aclock.DefaultStyle())
	c.setSize(200, 30)
	if c.surface.cols != c.surface.rows*2 {
		t.Fatalf("cols = %d, rows = %d; face should be round", c.surface.cols, c.surface.rows)
	}
	if c.surface.rows != 15 {
		t.Fatalf("rows = %d, want 15", c.surface.rows)
	}

	c.setSize(200, 100)
	if c.surface.rows != 20 {
		t.Fatalf("rows = %d, want capped at 20", c.surface.rows)
	}
}

func TestClockModelView(t *testing.T) {
	c := newClockModel(aclock.DefaultStyle())
	c.setSize(80, 24)
	c.tick(time.Date(2025, 6, 14, 15, 4, 5, 0, time.UTC))

	out := c.view()
	if !strings.Contains(out, "03:04:05 PM") {
		t.Fatal("view should show the digital time")
	}
	if c.surface.inked() == 0 {
		t.Fatal("clock face should set some dots")
	}
}

func TestClockRedrawIsIdempotent(t *testing.T) {
	c := newClockModel(aclock.DefaultStyle())
	c.setSize(80, 24)
	c.tick(fixed)
	first := c.surface.View()
	c.tick(fixed)
	if got := c.surface.View(); got != first {
		t.Fatal("identical draws should render the same face")
	}
}

func TestClockSubSecondsToggle(t *testing.T) {
	c := newClockModel(aclock.DefaultStyle())
	if !c.subSeconds() {
		t.Fatal("default style sweeps seconds")
	}
	c.setSubSeconds(false)
	if c.subSeconds() || c.renderer.Style().Features.SubSeconds {
		t.Fatal("toggle should reach the renderer")
	}
}

// ============================================================
// Helpers
// ============================================================

func TestFormatClock(t *testing.T) {
	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "12:00:00 AM"},
		{time.Date(2025, 1, 1, 8, 5, 9, 0, time.UTC), "08:05:09 AM"},
		{time.Date(2025, 1, 1, 23, 59, 59, 0, time.UTC), "11:59:59 PM"},
	}
	for _, tt := range tests {
		if got := formatClock(tt.t); got != tt.want {
			t.Errorf("formatClock(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestFormatArrival(t *testing.T) {
	if got := formatArrival(time.Date(2025, 1, 1, 13, 5, 0, 0, time.UTC)); got != "01:05 PM" {
		t.Fatalf("formatArrival = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if truncate("Express", 16) != "Express" {
		t.Fatal("short strings are kept")
	}
	if got := truncate("Northeast Regional", 10); got != "Northeast…" {
		t.Fatalf("truncate = %q", got)
	}
}

// ============================================================
// Add form
// ============================================================

func TestAddValidators(t *testing.T) {
	if required(schedule.ErrEmptyName)("  ") != schedule.ErrEmptyName {
		t.Fatal("blank name should fail")
	}
	if required(schedule.ErrEmptyName)("Express") != nil {
		t.Fatal("name should pass")
	}
	for _, in := range []string{"24:00", "8", "ab:cd"} {
		if validFirstTime(in) == nil {
			t.Fatalf("first time %q should fail", in)
		}
	}
	if validFirstTime("23:59") != nil {
		t.Fatal("23:59 should pass")
	}
	for _, in := range []string{"0", "-5", "x"} {
		if validInterval(in) == nil {
			t.Fatalf("interval %q should fail", in)
		}
	}
	if validInterval("15") != nil {
		t.Fatal("15 should pass")
	}
}

func TestAddSubmitInvalid(t *testing.T) {
	s := newTestStore(t)
	a := newAddModel(s)
	*a.name = "Express"
	*a.dest = ""
	*a.first = "24:00"
	*a.freq = "0"

	msg := a.submit()()
	st, ok := msg.(statusMsg)
	if !ok || !st.isError {
		t.Fatalf("msg = %#v, want error status", msg)
	}
	for _, field := range []string{"dest", "first", "freq"} {
		if !strings.Contains(st.text, field) {
			t.Fatalf("status %q should mention %s", st.text, field)
		}
	}
	trains, _ := s.List()
	if len(trains) != 0 {
		t.Fatal("invalid train reached the store")
	}
}

func TestAddSubmitValid(t *testing.T) {
	s := newTestStore(t)
	a := newAddModel(s)
	*a.name = " Express "
	*a.dest = "Boston"
	*a.first = "08:00"
	*a.freq = "15"

	msg, ok := a.submit()().(trainAddedMsg)
	if !ok {
		t.Fatal("valid form should push the train")
	}
	if msg.train.Name != "Express" || msg.train.Freq != 15 {
		t.Fatalf("train = %+v", msg.train)
	}
	if _, err := s.Get(msg.train.Key); err != nil {
		t.Fatal(err)
	}
}

func TestAddShowAndCancelForm(t *testing.T) {
	a := newAddModel(newTestStore(t))
	a, _ = a.showForm()
	if !a.formActive || a.form == nil {
		t.Fatal("form should be active")
	}
	a, _ = a.update(tea.KeyMsg{Type: tea.KeyEsc})
	if a.formActive || a.form != nil {
		t.Fatal("esc should cancel the form")
	}
}

// ============================================================
// Board view
// ============================================================

func TestBoardViewDelete(t *testing.T) {
	s := newTestStore(t)
	tr := mustPush(t, s, "Express", 8, 0, 15)
	b := board.New()
	b.Add(*tr, fixed)

	m := newBoardModel(s, b, newClockModel(aclock.DefaultStyle()))
	_, cmd := m.update(keyPress('d'))
	if cmd == nil {
		t.Fatal("delete should return a command")
	}
	msg, ok := cmd().(trainRemovedMsg)
	if !ok || msg.key != tr.Key {
		t.Fatalf("msg = %#v", msg)
	}
	if _, err := s.Get(tr.Key); err == nil {
		t.Fatal("train should be gone from the store")
	}
}

func TestBoardViewDeleteEmpty(t *testing.T) {
	m := newBoardModel(newTestStore(t), board.New(), newClockModel(aclock.DefaultStyle()))
	if _, cmd := m.update(keyPress('d')); cmd != nil {
		t.Fatal("delete on an empty board should do nothing")
	}
}

func TestBoardViewCursor(t *testing.T) {
	b := board.New()
	for _, k := range []string{"a", "b", "c"} {
		b.Add(store.Train{Key: k, Name: k, Dest: "x", Hours: 8, Freq: 10}, fixed)
	}
	m := newBoardModel(newTestStore(t), b, newClockModel(aclock.DefaultStyle()))
	m, _ = m.update(keyPress('j'))
	m, _ = m.update(keyPress('j'))
	m, _ = m.update(keyPress('j'))
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", m.cursor)
	}
	b.Remove("a")
	m.clampCursor()
	if m.cursor != 1 {
		t.Fatalf("cursor = %d after shrink, want 1", m.cursor)
	}
}

func TestBoardViewRendersRows(t *testing.T) {
	b := board.New()
	b.Add(store.Train{Key: "a", Name: "Express", Dest: "Boston", Hours: 8, Freq: 15}, fixed)
	m := newBoardModel(newTestStore(t), b, newClockModel(aclock.DefaultStyle()))
	m.setSize(140, 36)

	out := m.view()
	for _, want := range []string{"Express", "Boston", "15m", "08:15 AM", "00:08:00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("board view missing %q", want)
		}
	}
}

// ============================================================
// Stats view
// ============================================================

func TestStatsRefresh(t *testing.T) {
	b := board.New()
	b.Add(store.Train{Key: "a", Name: "Express", Dest: "Boston", Hours: 8, Freq: 15}, fixed)
	st := newStatsModel(b, 3)
	st.setSize(100, 30)
	st.refresh(time.Date(2025, 6, 14, 8, 0, 0, 0, time.UTC))

	if len(st.counts) != statsHours {
		t.Fatalf("counts = %d hours", len(st.counts))
	}
	if st.counts[0] != 3 || st.counts[1] != 4 {
		t.Fatalf("counts = %v", st.counts)
	}
	if !strings.Contains(st.view(), "08:15 AM") {
		t.Fatal("stats should list upcoming departures")
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	app := newTestApp(t, newTestStore(t))

	if app.activeView != viewBoard {
		t.Fatal("default view should be the board")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
	if app.opts.ClockRefresh <= 0 || app.opts.CountdownRefresh <= 0 {
		t.Fatal("refresh intervals should default")
	}
	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestNewAppReadsSubSecondsSetting(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetSetting(store.SettingSubSeconds, "false"); err != nil {
		t.Fatal(err)
	}
	app := newTestApp(t, s)
	if app.departures.clock.subSeconds() {
		t.Fatal("stored setting should override the style")
	}
}

func TestAppLoadsTrains(t *testing.T) {
	s := newTestStore(t)
	mustPush(t, s, "Express", 8, 0, 15)
	mustPush(t, s, "Local", 8, 0, 60)
	app := newTestApp(t, s)

	msg := app.loadTrains()()
	m, cmd := app.Update(msg)
	app = m.(App)
	if app.board.Len() != 2 {
		t.Fatalf("board len = %d", app.board.Len())
	}
	if cmd == nil {
		t.Fatal("loaded trains should start countdowns")
	}

	// Loading again must not start duplicate chains.
	_, cmd = app.Update(msg)
	if cmd != nil {
		t.Fatal("reloading existing trains should not start new countdowns")
	}
}

func TestAppCountdownChain(t *testing.T) {
	s := newTestStore(t)
	tr := mustPush(t, s, "Express", 8, 0, 15)
	app := newTestApp(t, s)
	app.board.Add(*tr, fixed)

	at := fixed.Add(7*time.Minute + 30*time.Second)
	m, cmd := app.Update(countdownTickMsg{key: tr.Key, at: at})
	app = m.(App)
	if cmd == nil {
		t.Fatal("active train should re-arm its countdown")
	}
	r, _ := app.board.Get(tr.Key)
	if !r.Countdown.Imminent || r.Countdown.String() != "00:00:30" {
		t.Fatalf("countdown = %+v", r.Countdown)
	}

	app.board.Remove(tr.Key)
	if _, cmd := app.Update(countdownTickMsg{key: tr.Key, at: at}); cmd != nil {
		t.Fatal("removed train should end its countdown chain")
	}
}

func TestAppFollowsStoreEvents(t *testing.T) {
	s := newTestStore(t)
	app := newTestApp(t, s)

	tr := mustPush(t, s, "Express", 8, 0, 15)
	e := <-app.events
	m, _ := app.Update(storeEventMsg(e))
	app = m.(App)
	if !app.board.Has(tr.Key) {
		t.Fatal("child_added should put the train on the board")
	}

	if err := s.Remove(tr.Key); err != nil {
		t.Fatal(err)
	}
	e = <-app.events
	m, _ = app.Update(storeEventMsg(e))
	app = m.(App)
	if app.board.Has(tr.Key) {
		t.Fatal("child_removed should take the train off the board")
	}
}

func TestAppTrainAdded(t *testing.T) {
	s := newTestStore(t)
	app := newTestApp(t, s)
	app.activeView = viewAdd
	tr := mustPush(t, s, "Express", 8, 0, 15)

	m, cmd := app.Update(trainAddedMsg{train: tr})
	app = m.(App)
	if app.activeView != viewBoard || !app.board.Has(tr.Key) || cmd == nil {
		t.Fatal("added train should show on the board with a countdown")
	}
	if !strings.Contains(app.status, "Express") {
		t.Fatalf("status = %q", app.status)
	}
}

func TestAppSubSecondsToggle(t *testing.T) {
	s := newTestStore(t)
	app := newTestApp(t, s)

	m, cmd := app.Update(keyPress('s'))
	app = m.(App)
	if app.departures.clock.subSeconds() {
		t.Fatal("toggle should turn sweeping off")
	}
	if cmd == nil {
		t.Fatal("toggle should persist the setting")
	}
	if st, ok := cmd().(statusMsg); !ok || st.isError {
		t.Fatalf("save = %#v", st)
	}
	if v, _ := s.GetSetting(store.SettingSubSeconds); v != "false" {
		t.Fatalf("stored = %q", v)
	}
}

func TestAppTabs(t *testing.T) {
	app := newTestApp(t, newTestStore(t))
	for _, want := range []viewState{viewAdd, viewStats, viewBoard} {
		m, _ := app.Update(tea.KeyMsg{Type: tea.KeyTab})
		app = m.(App)
		if app.activeView != want {
			t.Fatalf("view = %d, want %d", app.activeView, want)
		}
	}
}

func TestAppNewOpensForm(t *testing.T) {
	app := newTestApp(t, newTestStore(t))
	m, _ := app.Update(keyPress('n'))
	app = m.(App)
	if app.activeView != viewAdd || !app.isFormActive() {
		t.Fatal("n should open the add form")
	}

	// Keys go to the form while it is active.
	m, _ = app.Update(keyPress('q'))
	app = m.(App)
	if !app.isFormActive() {
		t.Fatal("typing q into the form should not quit")
	}
}

func TestAppViewStates(t *testing.T) {
	s := newTestStore(t)
	mustPush(t, s, "Express", 8, 0, 15)
	app := newTestApp(t, s)
	m, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app = m.(App)
	m, _ = app.Update(app.loadTrains()())
	app = m.(App)

	// Test all views render without panic
	for _, v := range []viewState{viewBoard, viewAdd, viewStats} {
		app.activeView = v
		if app.View() == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	app := newTestApp(t, newTestStore(t))
	app.width = 120
	app.height = 40

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppLoadingState(t *testing.T) {
	app := newTestApp(t, newTestStore(t))
	// Width 0 means not yet sized
	if output := app.View(); output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppStatusMessage(t *testing.T) {
	app := newTestApp(t, newTestStore(t))
	app.width = 120
	app.height = 40

	m, _ := app.Update(statusMsg{text: "test status"})
	app = m.(App)
	if !strings.Contains(app.renderFooter(), "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppFooterShowsImminent(t *testing.T) {
	app := newTestApp(t, newTestStore(t))
	app.width = 160
	app.board.Add(store.Train{Key: "a", Name: "Express", Dest: "Boston", Hours: 8, Freq: 15}, fixed.Add(7*time.Minute+30*time.Second))
	if !strings.Contains(app.renderFooter(), "1 departing") {
		t.Fatal("footer should flag imminent departures")
	}
}

// ============================================================
// Export picker
// ============================================================

func TestExportPickerBounds(t *testing.T) {
	app := newTestApp(t, newTestStore(t))
	m, _ := app.Update(keyPress('e'))
	app = m.(App)
	if !app.exportPicking {
		t.Fatal("e should open the export picker")
	}
	for i := 0; i < 5; i++ {
		m, _ = app.Update(keyPress('j'))
		app = m.(App)
	}
	if app.exportCursor != len(exportFormats)-1 {
		t.Fatalf("cursor = %d", app.exportCursor)
	}
	m, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = m.(App)
	if app.exportPicking {
		t.Fatal("esc should close the picker")
	}
}

func TestDoExport(t *testing.T) {
	s := newTestStore(t)
	mustPush(t, s, "Express", 8, 0, 15)
	dir := t.TempDir()
	if err := s.SetSetting(store.SettingExportDir, dir); err != nil {
		t.Fatal(err)
	}
	app := newTestApp(t, s)

	for i, ext := range []string{".csv", ".json", ".ics"} {
		msg, ok := app.doExport(i)().(exportDoneMsg)
		if !ok {
			t.Fatalf("export %s failed", ext)
		}
		if !strings.HasPrefix(msg.path, dir) || !strings.HasSuffix(msg.path, ext) {
			t.Fatalf("path = %q", msg.path)
		}
		if _, err := os.Stat(msg.path); err != nil {
			t.Fatal(err)
		}
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	bindings := keys.ShortHelp()
	if len(bindings) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test, render without panicking)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"digital", func() string { return digitalStyle.Render("test") }},
		{"countdown", func() string { return countdownStyle.Render("test") }},
		{"imminent", func() string { return imminentStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"subtitle", func() string { return subtitleStyle.Render("test") }},
		{"success", func() string { return successStyle.Render("test") }},
		{"warning", func() string { return warningStyle.Render("test") }},
		{"error", func() string { return errorStyle.Render("test") }},
		{"muted", func() string { return mutedStyle.Render("test") }},
		{"highlight", func() string { return highlightStyle.Render("test") }},
		{"header", func() string { return headerStyle.Render("test") }},
		{"footer", func() string { return footerStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
		{"normalItem", func() string { return normalItemStyle.Render("test") }},
	}

	for _, s := range styles {
		if s.fn() == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}
