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

// Messages the review screen emits toward the root model.
type (
	composeAnywayRequestedMsg struct{}
	adoptExistingRequestedMsg struct{ circuitID int64 }
	restartRequestedMsg       struct{}
)

type reviewMode int

const (
	reviewDuplicate reviewMode = iota // equivalent circuit found, user must decide
	reviewComposed                    // new circuit created
	reviewAdopted                     // existing circuit adopted
)

// ReviewModel is the step-4 screen: the compiled circuit, or the
// duplicate-circuit decision when the platform already has an
// equivalent one.
type ReviewModel struct {
	mode      reviewMode
	itinerary wizard.Itinerary
	selection wizard.Selection

	duplicateID int64
	choice      int // 0 = create anyway, 1 = view existing

	circuit     model.ComposedCircuit
	detail      model.CircuitDetail
	historyNote string
	busy        bool
}

// NewDuplicateReview creates the review screen in its decision state.
func NewDuplicateReview(itinerary wizard.Itinerary, selection wizard.Selection, circuitID int64) *ReviewModel {
	return &ReviewModel{
		mode:        reviewDuplicate,
		itinerary:   itinerary,
		selection:   selection,
		duplicateID: circuitID,
	}
}

// NewComposedReview creates the review screen for a freshly composed
// circuit.
func NewComposedReview(itinerary wizard.Itinerary, selection wizard.Selection, circuit model.ComposedCircuit) *ReviewModel {
	return &ReviewModel{
		mode:      reviewComposed,
		itinerary: itinerary,
		selection: selection,
		circuit:   circuit,
	}
}

// NewAdoptedReview creates the review screen for an adopted existing
// circuit.
func NewAdoptedReview(detail model.CircuitDetail, itinerary wizard.Itinerary, selection wizard.Selection) *ReviewModel {
	return &ReviewModel{
		mode:      reviewAdopted,
		itinerary: itinerary,
		selection: selection,
		detail:    detail,
	}
}

// SetHistoryNote records the outcome of the journal save for display.
func (m *ReviewModel) SetHistoryNote(note string) {
	m.historyNote = note
}

// Update handles input for the review screen.
func (m ReviewModel) Update(msg tea.Msg) (ReviewModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.mode == reviewDuplicate {
		switch keyMsg.String() {
		case "left", "h", "up", "k", "right", "l", "down", "j", "tab":
			m.choice = 1 - m.choice
		case "enter":
			if m.busy {
				return m, nil
			}
			m.busy = true
			if m.choice == 0 {
				return m, func() tea.Msg { return composeAnywayRequestedMsg{} }
			}
			id := m.duplicateID
			return m, func() tea.Msg { return adoptExistingRequestedMsg{circuitID: id} }
		}
		return m, nil
	}

	if keyMsg.String() == "n" {
		return m, func() tea.Msg { return restartRequestedMsg{} }
	}
	return m, nil
}

// View renders the review screen.
func (m ReviewModel) View(width, height int) string {
	var b strings.Builder

	switch m.mode {
	case reviewDuplicate:
		b.WriteString(LabelStyle.Render("Step 4 — Similar circuit found") + "\n\n")
		b.WriteString("A circuit with the same route, duration, stops and price already exists.\n")
		b.WriteString("You can reuse it instead of creating a new one.\n\n")
		b.WriteString(m.renderChoice("Create a new circuit anyway", 0) + "\n")
		b.WriteString(m.renderChoice(fmt.Sprintf("View the existing circuit (#%d)", m.duplicateID), 1) + "\n")
		if m.busy {
			b.WriteString("\n" + MutedStyle.Render("Working..."))
		}
		b.WriteString("\n\n" + MutedStyle.Render("←/→ choose · enter confirm"))

	case reviewComposed:
		b.WriteString(LabelStyle.Render("Step 4 — Circuit created") + "\n\n")
		b.WriteString(TitleStyle.Render(m.circuit.Name) + "\n")
		b.WriteString(MutedStyle.Render("code "+m.circuit.Code) + "\n\n")
		b.WriteString(fmt.Sprintf("%-12s %s\n", "Price", util.FormatPrice(m.circuit.Price)))
		b.WriteString(fmt.Sprintf("%-12s %d day(s)\n", "Duration", m.circuit.Duration))
		b.WriteString("\n" + LabelStyle.Render("Route") + "\n")
		for i, d := range m.circuit.OrderedDestinations {
			name := d.Name
			if name == "" {
				name = m.destinationName(d.ID)
			}
			b.WriteString(fmt.Sprintf("  %d. %-20s %d day(s)\n", i+1, name, d.Days))
		}
		b.WriteString(m.renderSelections())
		if m.historyNote != "" {
			b.WriteString("\n" + SuccessStyle.Render(m.historyNote))
		}
		b.WriteString("\n\n" + MutedStyle.Render("n new circuit · H history · q quit"))

	case reviewAdopted:
		b.WriteString(LabelStyle.Render("Step 4 — Existing circuit") + "\n\n")
		b.WriteString(TitleStyle.Render(m.detail.Name) + "\n")
		b.WriteString(MutedStyle.Render("code "+m.detail.Code) + "\n\n")
		b.WriteString(fmt.Sprintf("%-12s %s\n", "Price", util.FormatPrice(m.detail.Price)))
		b.WriteString(fmt.Sprintf("%-12s %d day(s)\n", "Duration", m.detail.Duration))
		b.WriteString(m.renderSelections())
		if m.historyNote != "" {
			b.WriteString("\n" + SuccessStyle.Render(m.historyNote))
		}
		b.WriteString("\n\n" + MutedStyle.Render("n new circuit · H history · q quit"))
	}

	return lipgloss.NewStyle().Width(width).Height(height).Render(b.String())
}

func (m ReviewModel) renderChoice(label string, idx int) string {
	if m.choice == idx {
		return OptionSelectedStyle.Render("→ " + label)
	}
	return MutedStyle.Render("  " + label)
}

func (m ReviewModel) destinationName(id int64) string {
	for _, s := range m.itinerary.Ordered() {
		if s.DestinationID == id {
			return s.Name
		}
	}
	return fmt.Sprintf("destination %d", id)
}

func (m ReviewModel) renderSelections() string {
	var b strings.Builder
	b.WriteString("\n" + LabelStyle.Render("Selections") + "\n")
	any := false
	for _, stop := range m.itinerary.Ordered() {
		for day := 1; day <= stop.Days; day++ {
			for _, t := range model.AllEntityTypes {
				e, ok := m.selection.Get(stop.DestinationID, day, t)
				if !ok {
					continue
				}
				any = true
				b.WriteString(fmt.Sprintf("  %s day %d · %-12s %s (%s)\n",
					stop.Name, day, t.Label(), e.Name, util.FormatEntityPrice(e.Price)))
			}
		}
	}
	if !any {
		b.WriteString(MutedStyle.Render("  none") + "\n")
	}
	return b.String()
}
