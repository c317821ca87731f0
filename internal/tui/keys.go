package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wesm/browsestate/internal/viewstate"
)

// handleKeyPress handles keys while no input is open.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.controller
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "home":
		m.cursor = 0
	case "end":
		m.cursor = max(len(m.items)-1, 0)

	case "enter", " ":
		return m.activate()

	case "r":
		if it, ok := m.selected(); ok && it.kind == itemRange {
			return m.openRangeInput(it.name)
		}

	case "/":
		return m.openInput(inputSearch, "search", strings.Join(c.State().SearchTerms, " "))
	case "g":
		return m.openInput(inputPage, "page", "")

	case "p":
		m.cyclePageSize()

	case "a":
		if c.FilterButtonsEnabled() {
			c.ApplyFilters()
		}
	case "c":
		if c.FilterButtonsEnabled() {
			c.ClearFilters()
		}
	case "s":
		if c.SearchActive() {
			c.ClearSearch()
		}
	case "x":
		if c.SortActive() {
			c.ClearSorts()
		}
	case "C":
		c.ClearAll()

	case "A":
		sel := c.Selection()
		sel.SetAllPages(!sel.AllPages())
	case "*":
		m.toggleAllOnPage()
	case "d":
		sel := c.Selection()
		if !sel.DeleteEnabled() {
			m.flash("nothing selected")
			break
		}
		m.flash("delete: " + sel.ActionURL(c.Base()+"/delete"))
	}
	return m, nil
}

// activate runs the command for the line under the cursor.
func (m Model) activate() (tea.Model, tea.Cmd) {
	it, ok := m.selected()
	if !ok {
		return m, nil
	}
	c := m.controller
	switch it.kind {
	case itemColumn:
		ind := c.ToggleSort(it.name)
		m.flash(fmt.Sprintf("sort %s: %s", it.name, ind))
	case itemOption:
		c.ToggleFilterValue(it.name, it.value)
	case itemRange:
		return m.openRangeInput(it.name)
	case itemRow:
		if c.Selection().RowsEnabled() {
			c.Selection().Toggle(it.name)
		}
	}
	return m, nil
}

func (m *Model) cyclePageSize() {
	sizes := m.view.PageSizes
	if len(sizes) == 0 {
		return
	}
	current, err := strconv.Atoi(m.controller.State().PageSize)
	if err != nil {
		current = m.view.PageSize
	}
	next := sizes[0]
	if i := slices.Index(sizes, current); i >= 0 && i+1 < len(sizes) {
		next = sizes[i+1]
	}
	m.controller.SetPageSize(strconv.Itoa(next))
}

func (m *Model) toggleAllOnPage() {
	sel := m.controller.Selection()
	if !sel.RowsEnabled() {
		return
	}
	ids := m.rows.IDs()
	all := len(ids) > 0
	for _, id := range ids {
		if !m.rows.Checked(id) {
			all = false
			break
		}
	}
	sel.ToggleAllOnPage(!all)
}

func (m Model) openRangeInput(control string) (tea.Model, tea.Cmd) {
	value, _ := m.controller.Filters().Range(control)
	m.inputTarget = control
	return m.openInput(inputRange, control, value)
}

func (m Model) openInput(mode inputMode, prompt, value string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.input.Prompt = prompt + ": "
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	return m, textinput.Blink
}

// handleInputKeys handles keys while the text input is open.
func (m Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.commitInput()
	case "esc":
		m.closeInput()
		return m, nil
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) commitInput() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	c := m.controller
	switch m.mode {
	case inputSearch:
		c.Search(text)
	case inputPage:
		c.GotoPage(text)
	case inputRange:
		c.SetRangeFilter(m.inputTarget, strings.TrimSpace(text))
	}
	m.closeInput()
	return m, nil
}

func (m *Model) closeInput() {
	m.mode = inputNone
	m.inputTarget = ""
	m.input.Blur()
	m.input.SetValue("")
}

// indicatorSymbol renders a column's sort indicator.
func indicatorSymbol(ind viewstate.Indicator) string {
	switch ind {
	case viewstate.IndicatorAsc:
		return "▲"
	case viewstate.IndicatorDesc:
		return "▼"
	}
	return " "
}
