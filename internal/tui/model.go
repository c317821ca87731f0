// Package tui provides a terminal user interface for exploring a list view's
// query state.
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wesm/browsestate/internal/browse"
	"github.com/wesm/browsestate/internal/catalog"
)

// flashDuration is how long a flash message stays in the footer.
const flashDuration = 4 * time.Second

// Options configures the TUI.
type Options struct {
	URL     string   // Starting URL; the view's path when empty
	Rows    []string // Row identifiers shown as selectable rows
	Version string
	Logger  *slog.Logger
}

// itemKind identifies what a cursor line controls.
type itemKind int

const (
	itemColumn itemKind = iota // sortable column header
	itemOption                 // one option of a select filter
	itemRange                  // one bound of a range filter
	itemRow                    // a selectable row
)

// item is one cursor line. For an option, name is the filter and value the
// option; for a range, name is the control; for a column or row, name is the
// column or row id.
type item struct {
	kind  itemKind
	name  string
	value string
	label string
}

// inputMode is what the text input is collecting.
type inputMode int

const (
	inputNone inputMode = iota
	inputSearch
	inputPage
	inputRange
)

// Model is the bubbletea model for one view.
type Model struct {
	view       *catalog.View
	controller *browse.Controller
	history    *browse.Recorder
	rows       *browse.RowSet
	version    string

	items  []item
	cursor int

	input       textinput.Model
	mode        inputMode
	inputTarget string // range control being edited

	width  int
	height int

	flashMessage   string
	flashExpiresAt time.Time

	quitting bool
}

// New creates a model for v.
func New(v *catalog.View, opts Options) Model {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 50

	m := Model{
		view:    v,
		history: &browse.Recorder{},
		rows:    browse.NewRowSet(opts.Rows...),
		version: opts.Version,
		input:   ti,
	}
	browseOpts := []browse.Option{browse.WithRows(m.rows)}
	if opts.Logger != nil {
		browseOpts = append(browseOpts, browse.WithLogger(opts.Logger))
	}
	m.controller = v.Controller(opts.URL, m.history, browseOpts...)
	m.items = buildItems(v, opts.Rows)
	return m
}

func buildItems(v *catalog.View, rows []string) []item {
	var items []item
	for _, c := range v.Columns {
		if c.Sortable {
			items = append(items, item{kind: itemColumn, name: c.Name, label: c.Label})
		}
	}
	for _, f := range v.Filters {
		switch f.Kind {
		case catalog.KindSelect:
			for _, opt := range f.Options {
				items = append(items, item{kind: itemOption, name: f.Name, value: opt, label: f.Label + ": " + opt})
			}
		case catalog.KindRange:
			for _, control := range f.Controls {
				items = append(items, item{kind: itemRange, name: control, label: control})
			}
		}
	}
	for _, id := range rows {
		items = append(items, item{kind: itemRow, name: id, label: "row " + id})
	}
	return items
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Controller returns the controller the model drives.
func (m Model) Controller() *browse.Controller { return m.controller }

// History returns every URL the model navigated to, oldest first.
func (m Model) History() []string { return m.history.URLs }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode != inputNone {
			return m.handleInputKeys(msg)
		}
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = max(msg.Width, 0)
		m.height = max(msg.Height, 0)
		return m, nil
	}
	return m, nil
}

func (m *Model) flash(msg string) {
	m.flashMessage = msg
	m.flashExpiresAt = time.Now().Add(flashDuration)
}

func (m Model) currentFlash() string {
	if m.flashMessage == "" || time.Now().After(m.flashExpiresAt) {
		return ""
	}
	return m.flashMessage
}

func (m Model) selected() (item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return item{}, false
	}
	return m.items[m.cursor], true
}

// Run starts the TUI on the alternate screen and blocks until the user
// quits or ctx is cancelled.
func Run(ctx context.Context, v *catalog.View, opts Options) error {
	p := tea.NewProgram(New(v, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
