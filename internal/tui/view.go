package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Monochrome theme, adaptive for light and dark terminals.
var (
	bgBase   = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#000000"}
	bgCursor = lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#282828"}

	titleBarStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#333333"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"}).
			Padding(0, 1)

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#999999"}).
			Padding(0, 1)

	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	cursorRowStyle = lipgloss.NewStyle().
			Background(bgCursor)

	normalRowStyle = lipgloss.NewStyle().
			Background(bgBase)

	buttonStyle = lipgloss.NewStyle().
			Bold(true)

	disabledButtonStyle = lipgloss.NewStyle().
				Faint(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#999999"}).
			Padding(0, 1)
)

const defaultWidth = 80

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	var b strings.Builder
	b.WriteString(m.headerView(width))
	b.WriteString(m.itemsView(width))
	b.WriteString(m.footerView(width))
	return b.String()
}

func (m Model) headerView(width int) string {
	c := m.controller
	var b strings.Builder

	title := "browsestate · " + m.view.Name
	if m.version != "" {
		title += " " + m.version
	}
	b.WriteString(titleBarStyle.Render(padRight(title, width-2)))
	b.WriteString("\n")
	b.WriteString(urlStyle.Render(truncateRunes(c.URL(), width-2)))
	b.WriteString("\n")

	if hidden := c.HiddenFilters(); len(hidden) > 0 {
		msg := "⚠ active filters not shown here: " + strings.Join(hidden, ", ")
		b.WriteString(warningStyle.Render(truncateRunes(msg, width-2)))
		b.WriteString("\n")
	}

	filtersEnabled := c.FilterButtonsEnabled()
	buttons := []string{
		onOff("s clear search", c.SearchActive()),
		onOff("x clear sorts", c.SortActive()),
		onOff("c clear filters", filtersEnabled),
		onOff("a apply", filtersEnabled),
		onOff("d delete", c.Selection().DeleteEnabled()),
	}
	b.WriteString(" " + strings.Join(buttons, "  "))
	b.WriteString("\n")

	if terms := c.State().SearchTerms; len(terms) > 0 {
		b.WriteString(urlStyle.Render("search: " + truncateRunes(strings.Join(terms, " "), width-12)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) itemsView(width int) string {
	var b strings.Builder
	prev := itemKind(-1)
	for i, it := range m.items {
		if it.kind != prev {
			b.WriteString(sectionStyle.Render(sectionTitle(it.kind)))
			b.WriteString("\n")
			prev = it.kind
		}
		line := "  " + m.itemLine(it)
		style := normalRowStyle
		if i == m.cursor {
			line = "> " + m.itemLine(it)
			style = cursorRowStyle
		}
		b.WriteString(style.Render(padRight(line, width)))
		b.WriteString("\n")
	}
	return b.String()
}

func sectionTitle(kind itemKind) string {
	switch kind {
	case itemColumn:
		return "Sort"
	case itemOption:
		return "Filters"
	case itemRange:
		return "Ranges"
	default:
		return "Rows"
	}
}

func (m Model) itemLine(it item) string {
	c := m.controller
	switch it.kind {
	case itemColumn:
		ind, pos := c.State().Sort.Indicator(it.name), ""
		for _, cs := range c.SortIndicators() {
			if cs.Column == it.name {
				pos = strconv.Itoa(cs.Position)
			}
		}
		return fmt.Sprintf("%s %s %s", indicatorSymbol(ind), it.label, pos)
	case itemOption:
		return checkbox(slices.Contains(c.Filters().Selected(it.name), it.value)) + " " + it.label
	case itemRange:
		value, _ := c.Filters().Range(it.name)
		return fmt.Sprintf("%s = %s", it.label, value)
	default:
		sel := c.Selection()
		if sel.AllPages() {
			return "[*] " + it.label
		}
		return checkbox(m.rows.Checked(it.name)) + " " + it.label
	}
}

func (m Model) footerView(width int) string {
	c := m.controller
	var b strings.Builder
	b.WriteString("\n")
	if m.mode != inputNone {
		b.WriteString(m.input.View())
		b.WriteString("\n")
		return b.String()
	}

	state := c.State()
	page := max(state.PageNumber, 1)
	size := state.PageSize
	if size == "" {
		size = strconv.Itoa(m.view.PageSize)
	}
	status := fmt.Sprintf("page %s  size %s", formatPageWindow(c.PageWindow(), page), size)
	if c.Selection().AllPages() {
		status += "  all pages selected"
	}
	if flash := m.currentFlash(); flash != "" {
		status = flash
	}
	b.WriteString(footerStyle.Render(truncateRunes(status, width-2)))
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(truncateRunes("enter toggle · / search · g page · p size · r range · A all pages · * page rows · C reset · q quit", width-2)))
	return b.String()
}
