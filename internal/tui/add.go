package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/trainclock/internal/schedule"
	"github.com/sadopc/trainclock/internal/store"
)

type addModel struct {
	store  *store.Store
	width  int
	height int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	name  *string
	dest  *string
	first *string
	freq  *string
}

func newAddModel(s *store.Store) addModel {
	name, dest, first, freq := "", "", "", ""
	return addModel{
		store: s,
		name:  &name,
		dest:  &dest,
		first: &first,
		freq:  &freq,
	}
}

func (a *addModel) setSize(w, h int) {
	a.width = w
	a.height = h
}

func required(err error) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return err
		}
		return nil
	}
}

func validFirstTime(s string) error {
	_, _, err := schedule.ParseFirstTime(s)
	return err
}

func validInterval(s string) error {
	_, err := schedule.ParseInterval(s)
	return err
}

func (a addModel) showForm() (addModel, tea.Cmd) {
	*a.name = ""
	*a.dest = ""
	*a.first = ""
	*a.freq = ""

	a.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Train Name").Placeholder("Express").
				Value(a.name).Validate(required(schedule.ErrEmptyName)),
			huh.NewInput().Title("Destination").Placeholder("Boston").
				Value(a.dest).Validate(required(schedule.ErrEmptyDest)),
			huh.NewInput().Title("First Train Time (HH:MM)").Placeholder("08:00").
				Value(a.first).Validate(validFirstTime),
			huh.NewInput().Title("Frequency (min)").Placeholder("15").
				Value(a.freq).Validate(validInterval),
		),
	).WithShowHelp(true).WithShowErrors(true)

	a.formActive = true
	return a, a.form.Init()
}

func (a addModel) update(msg tea.Msg) (addModel, tea.Cmd) {
	if a.formActive && a.form != nil {
		return a.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return a.showForm()
		}
	}
	return a, nil
}

func (a addModel) updateForm(msg tea.Msg) (addModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			a.formActive = false
			a.form = nil
			return a, nil
		}
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	if a.form.State == huh.StateCompleted {
		a.formActive = false
		return a, a.submit()
	}

	return a, cmd
}

// submit validates the form values once more and pushes the train. Invalid
// values never reach the store.
func (a addModel) submit() tea.Cmd {
	rec, fe := schedule.ParseForm(*a.name, *a.dest, *a.first, *a.freq)
	if fe != nil {
		return func() tea.Msg {
			return statusMsg{text: "Invalid train: " + fe.Error(), isError: true}
		}
	}
	return func() tea.Msg {
		t, err := a.store.Push(rec)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Add error: %v", err), isError: true}
		}
		return trainAddedMsg{train: t}
	}
}

func (a addModel) view() string {
	w := a.width - 4
	title := titleStyle.Render("Add Train")

	if a.formActive && a.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", a.form.View()),
		)
	}

	hint := mutedStyle.Render("Press enter or n to add a train")
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", hint))
}
