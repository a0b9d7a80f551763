package ui

import (
	"fmt"
	"strings"

	"rihla/internal/model"
	"rihla/internal/wizard"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// itinerarySubmittedMsg is emitted when step 2 passes validation.
type itinerarySubmittedMsg struct {
	itinerary wizard.Itinerary
}

// ItineraryModel is the step-2 screen: order destinations and assign days.
type ItineraryModel struct {
	destinations []model.Destination
	itinerary    wizard.Itinerary

	cursor    int
	picking   bool // destination picker open
	pickIdx   int
	error     string
}

// NewItineraryModel creates the step-2 screen for an itinerary seeded from
// the trip preferences.
func NewItineraryModel(destinations []model.Destination, itinerary wizard.Itinerary) *ItineraryModel {
	return &ItineraryModel{destinations: destinations, itinerary: itinerary}
}

// PickerOpen reports whether the destination picker is showing, in which
// case esc closes it instead of leaving the step.
func (m ItineraryModel) PickerOpen() bool {
	return m.picking
}

// Itinerary returns the current working itinerary.
func (m ItineraryModel) Itinerary() wizard.Itinerary {
	return m.itinerary
}

// candidates lists destinations not yet part of the itinerary.
func (m ItineraryModel) candidates() []model.Destination {
	present := make(map[int64]bool, len(m.itinerary.Stops))
	for _, s := range m.itinerary.Stops {
		present[s.DestinationID] = true
	}
	out := make([]model.Destination, 0, len(m.destinations))
	for _, d := range m.destinations {
		if !present[d.ID] {
			out = append(out, d)
		}
	}
	return out
}

// Update handles input for the itinerary screen.
func (m ItineraryModel) Update(msg tea.Msg) (ItineraryModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.picking {
		return m.updatePicker(keyMsg)
	}

	stops := m.itinerary.Ordered()
	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(stops)-1 {
			m.cursor++
		}
	case "right", "l", "+":
		if m.cursor < len(stops) {
			stop := stops[m.cursor]
			m.itinerary.UpdateDays(stop.DestinationID, stop.Days+1)
			m.error = ""
		}
	case "left", "h", "-":
		if m.cursor < len(stops) {
			stop := stops[m.cursor]
			m.itinerary.UpdateDays(stop.DestinationID, stop.Days-1)
			m.error = ""
		}
	case "a":
		if len(m.candidates()) > 0 {
			m.picking = true
			m.pickIdx = 0
		}
	case "d", "x":
		if m.cursor < len(stops) {
			if err := m.itinerary.RemoveStop(stops[m.cursor].DestinationID); err != nil {
				m.error = err.Error()
			} else {
				m.error = ""
				if m.cursor > 0 {
					m.cursor--
				}
			}
		}
	case "ctrl+s":
		if verr := m.itinerary.Validate(); verr != nil {
			m.error = verr.Error()
			return m, nil
		}
		m.error = ""
		itin := m.itinerary
		return m, func() tea.Msg { return itinerarySubmittedMsg{itinerary: itin} }
	}
	return m, nil
}

func (m ItineraryModel) updatePicker(keyMsg tea.KeyMsg) (ItineraryModel, tea.Cmd) {
	candidates := m.candidates()
	switch keyMsg.String() {
	case "up", "k":
		if m.pickIdx > 0 {
			m.pickIdx--
		}
	case "down", "j":
		if m.pickIdx < len(candidates)-1 {
			m.pickIdx++
		}
	case "enter", " ":
		if m.pickIdx < len(candidates) {
			if err := m.itinerary.AddStop(candidates[m.pickIdx]); err != nil {
				m.error = err.Error()
			} else {
				m.error = ""
			}
		}
		m.picking = false
	case "esc":
		m.picking = false
	}
	return m, nil
}

// View renders the itinerary screen.
func (m ItineraryModel) View(width, height int) string {
	var b strings.Builder

	total := m.itinerary.TotalTripDays()
	assigned := m.itinerary.AssignedDays()
	b.WriteString(LabelStyle.Render("Step 2 — Itinerary") + "  " +
		MutedStyle.Render(fmt.Sprintf("%d of %d days assigned", assigned, total)) + "\n\n")

	stops := m.itinerary.Ordered()
	for i, stop := range stops {
		role := ""
		switch stop.DestinationID {
		case m.itinerary.DepartureCityID:
			role = " (departure)"
		case m.itinerary.ArrivalCityID:
			role = " (arrival)"
		}
		line := fmt.Sprintf("%-24s %d day(s)%s", stop.Name, stop.Days, role)
		if i == m.cursor && !m.picking {
			line = SelectedStyle.Render("→ " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	if m.picking {
		b.WriteString("\n" + LabelStyle.Render("Add destination") + "\n")
		for i, d := range m.candidates() {
			line := "  " + d.Name
			if i == m.pickIdx {
				line = SelectedStyle.Render("→ " + d.Name)
			}
			b.WriteString(line + "\n")
		}
		b.WriteString(MutedStyle.Render("enter add · esc cancel") + "\n")
	}

	if m.error != "" {
		b.WriteString("\n" + ErrorStyle.Render(m.error))
	}
	b.WriteString("\n\n" + MutedStyle.Render("←/→ adjust days · a add stop · d remove · ctrl+s continue"))

	return lipgloss.NewStyle().Width(width).Height(height).Render(b.String())
}
