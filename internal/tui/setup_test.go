package tui

import (
	"regexp"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/wesm/browsestate/internal/catalog/catalogtest"
)

// colorProfileMu serializes tests that mutate the global lipgloss color profile.
var colorProfileMu sync.Mutex

// forceColorProfile sets lipgloss to ANSI color output for tests that assert
// on styled output, restoring the original profile via t.Cleanup.
func forceColorProfile(t *testing.T) {
	t.Helper()
	colorProfileMu.Lock()
	orig := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.ANSI)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(orig)
		colorProfileMu.Unlock()
	})
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// Cursor positions of the products fixture's lines.
const (
	lineSortName  = 0
	lineSortPrice = 1
	lineColorRed  = 2
	lineSizeM     = 6
	linePriceMin  = 8
	lineFirstRow  = 14
)

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	m := New(catalogtest.MustView(t), opts)
	mm, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return mm.(Model)
}

func sendKey(t *testing.T, m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	mm, cmd := m.Update(k)
	return mm.(Model), cmd
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyEnter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }
func keyEsc() tea.KeyMsg   { return tea.KeyMsg{Type: tea.KeyEsc} }
func keySpace() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}} }

// moveTo moves the cursor to line with repeated down presses.
func moveTo(t *testing.T, m Model, line int) Model {
	t.Helper()
	for m.cursor < line {
		m, _ = sendKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != line {
		t.Fatalf("cursor = %d, want %d", m.cursor, line)
	}
	return m
}

// typeInput sends text to the open input and commits it.
func typeInput(t *testing.T, m Model, text string) Model {
	t.Helper()
	if m.mode == inputNone {
		t.Fatal("input is not open")
	}
	if text != "" {
		m, _ = sendKey(t, m, keyRunes(text))
	}
	m, _ = sendKey(t, m, keyEnter())
	return m
}

func assertURL(t *testing.T, m Model, want string) {
	t.Helper()
	if got := m.Controller().URL(); got != want {
		t.Errorf("URL = %q, want %q", got, want)
	}
}

func assertNavigations(t *testing.T, m Model, want int) {
	t.Helper()
	if got := len(m.History()); got != want {
		t.Errorf("navigations = %d (%v), want %d", got, m.History(), want)
	}
}
