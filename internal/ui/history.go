package ui

import (
	"fmt"
	"strings"

	"rihla/internal/model"
	"rihla/internal/util"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HistoryModel renders the journal of previously composed circuits.
type HistoryModel struct {
	entries []model.HistoryEntry
	cursor  int
}

// NewHistoryModel creates the history screen.
func NewHistoryModel(entries []model.HistoryEntry) *HistoryModel {
	return &HistoryModel{entries: entries}
}

// SetEntries replaces the listing, clamping the cursor.
func (m *HistoryModel) SetEntries(entries []model.HistoryEntry) {
	m.entries = entries
	if m.cursor >= len(entries) {
		m.cursor = len(entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Update handles input for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	}
	return m, nil
}

// View renders the history screen.
func (m HistoryModel) View(width, height int) string {
	var b strings.Builder
	b.WriteString(LabelStyle.Render("Circuit history") + "\n\n")

	if len(m.entries) == 0 {
		b.WriteString(MutedStyle.Render("No circuits composed yet.") + "\n")
	}
	for i, e := range m.entries {
		line := fmt.Sprintf("%-34s %s → %-12s %2d day(s)  %s",
			util.TruncateString(e.Name, 34),
			e.DepartureCity, e.ArrivalCity,
			e.Duration,
			util.FormatPrice(e.Price))
		if i == m.cursor {
			b.WriteString(SelectedStyle.Render("→ "+line) + "\n")
			b.WriteString(MutedStyle.Render(fmt.Sprintf("    code %s · %s to %s · saved %s",
				e.Code,
				util.FormatDate(e.DepartureDate), util.FormatDate(e.ArrivalDate),
				e.CreatedAt.Format("2006-01-02 15:04"))) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString("\n" + MutedStyle.Render("↑/↓ browse · w wizard · q quit"))
	return lipgloss.NewStyle().Width(width).Height(height).Render(b.String())
}
