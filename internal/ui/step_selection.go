package ui

import (
	"fmt"
	"strings"

	"rihla/internal/model"
	"rihla/internal/util"
	"rihla/internal/wizard"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// selectionSubmittedMsg is emitted when step 3 passes validation.
type selectionSubmittedMsg struct{}

// SelectionModel is the step-3 screen: pick entities slot by slot.
type SelectionModel struct {
	prefs     model.TripPreferences
	itinerary wizard.Itinerary
	index     wizard.SuggestionIndex
	selection wizard.Selection
	slots     []wizard.SlotKey

	slotCursor int
	candCursor int
	warning    string
	error      string
}

// NewSelectionModel creates the step-3 screen over a fetched suggestion
// index. The warning carries the aggregator's partial-failure notice, if
// any. The selection is shared with the root model.
func NewSelectionModel(prefs model.TripPreferences, itinerary wizard.Itinerary, index wizard.SuggestionIndex, selection wizard.Selection, warning string) *SelectionModel {
	return &SelectionModel{
		prefs:     prefs,
		itinerary: itinerary,
		index:     index,
		selection: selection,
		slots:     wizard.SlotKeys(itinerary, prefs),
		warning:   warning,
	}
}

func (m SelectionModel) currentSlot() (wizard.SlotKey, bool) {
	if m.slotCursor < 0 || m.slotCursor >= len(m.slots) {
		return wizard.SlotKey{}, false
	}
	return m.slots[m.slotCursor], true
}

// remainingBudget is what is left to spend on the current slot: the
// budget minus everything already selected, the slot's own choice added
// back so swapping within a slot is judged against the full headroom.
func (m SelectionModel) remainingBudget(key wizard.SlotKey) float64 {
	if m.prefs.Budget <= 0 {
		return -1 // no budget set, no filtering
	}
	spent := m.selection.TotalPrice(m.itinerary)
	if chosen, ok := m.selection.Get(key.DestinationID, key.Day, key.EntityType); ok {
		spent -= chosen.PriceValue()
	}
	return m.prefs.Budget - spent
}

func (m SelectionModel) candidates() []model.Entity {
	key, ok := m.currentSlot()
	if !ok {
		return nil
	}
	return m.index.Candidates(key, m.selection, m.remainingBudget(key))
}

// Update handles input for the selection screen.
func (m SelectionModel) Update(msg tea.Msg) (SelectionModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "left", "h":
		if m.slotCursor > 0 {
			m.slotCursor--
			m.candCursor = 0
		}
	case "right", "l":
		if m.slotCursor < len(m.slots)-1 {
			m.slotCursor++
			m.candCursor = 0
		}
	case "up", "k":
		if m.candCursor > 0 {
			m.candCursor--
		}
	case "down", "j":
		if cands := m.candidates(); m.candCursor < len(cands)-1 {
			m.candCursor++
		}
	case "enter", " ":
		cands := m.candidates()
		key, ok := m.currentSlot()
		if ok && m.candCursor < len(cands) {
			m.selection.Select(key.DestinationID, key.Day, key.EntityType, cands[m.candCursor])
			m.error = ""
		}
	case "ctrl+s":
		if err := m.selection.Validate(m.itinerary); err != nil {
			m.error = err.Error()
			return m, nil
		}
		m.error = ""
		return m, func() tea.Msg { return selectionSubmittedMsg{} }
	}
	return m, nil
}

// View renders the selection screen.
func (m SelectionModel) View(width, height int) string {
	var b strings.Builder

	total := m.selection.TotalPrice(m.itinerary)
	header := LabelStyle.Render("Step 3 — Select entities") + "  " +
		MutedStyle.Render("total "+util.FormatPrice(total))
	if m.prefs.Budget > 0 {
		header += MutedStyle.Render(fmt.Sprintf(" / budget %s", util.FormatPrice(m.prefs.Budget)))
	}
	b.WriteString(header + "\n")
	if m.warning != "" {
		b.WriteString(WarningStyle.Render(m.warning) + "\n")
	}
	b.WriteString("\n")

	key, ok := m.currentSlot()
	if !ok {
		b.WriteString(MutedStyle.Render("No slots to fill.") + "\n")
	} else {
		b.WriteString(m.renderSlotHeader(key) + "\n\n")
		cands := m.candidates()
		if len(cands) == 0 {
			b.WriteString(MutedStyle.Render("  No suggestions within budget for this slot.") + "\n")
		}
		for i, e := range cands {
			b.WriteString(m.renderCandidate(key, e, i == m.candCursor) + "\n")
		}
	}

	if m.error != "" {
		b.WriteString("\n" + ErrorStyle.Render(m.error))
	}
	b.WriteString("\n\n" + MutedStyle.Render("←/→ slot · ↑/↓ candidate · enter select/deselect · ctrl+s continue"))

	return lipgloss.NewStyle().Width(width).Height(height).Render(b.String())
}

func (m SelectionModel) renderSlotHeader(key wizard.SlotKey) string {
	name := ""
	for _, s := range m.itinerary.Ordered() {
		if s.DestinationID == key.DestinationID {
			name = s.Name
			break
		}
	}
	pos := fmt.Sprintf("slot %d/%d", m.slotCursor+1, len(m.slots))
	return TitleStyle.Render(fmt.Sprintf("%s · day %d · %s", name, key.Day, key.EntityType.Label())) +
		"  " + MutedStyle.Render(pos)
}

func (m SelectionModel) renderCandidate(key wizard.SlotKey, e model.Entity, focused bool) string {
	chosen, hasChosen := m.selection.Get(key.DestinationID, key.Day, key.EntityType)
	mark := "( )"
	if hasChosen && chosen.ID == e.ID {
		mark = "(•)"
	}

	details := []string{util.FormatEntityPrice(e.Price)}
	if e.Stars != nil {
		details = append(details, util.FormatStars(*e.Stars))
	}
	if e.Forks != nil {
		details = append(details, util.FormatForks(*e.Forks))
	}
	if e.Rating != nil {
		details = append(details, util.FormatRating(e.Rating))
	}
	if e.Cuisine != "" {
		details = append(details, e.Cuisine)
	}
	if e.Category != "" {
		details = append(details, e.Category)
	}

	line := fmt.Sprintf("%s %-32s %s", mark, util.TruncateString(e.Name, 32), strings.Join(details, "  "))
	if focused {
		return SelectedStyle.Render("→ " + line)
	}
	return "  " + line
}
