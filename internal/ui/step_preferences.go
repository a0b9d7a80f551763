package ui

import (
	"fmt"
	"strconv"
	"strings"

	"rihla/internal/model"
	"rihla/internal/util"
	"rihla/internal/wizard"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// prefsSubmittedMsg is emitted when step 1 passes validation.
type prefsSubmittedMsg struct {
	prefs model.TripPreferences
}

const (
	prefFieldDepartureCity = iota
	prefFieldArrivalCity
	prefFieldDepartureDate
	prefFieldArrivalDate
	prefFieldBudget
	prefFieldAccommodation
	prefFieldAccommodationDetail // stars or guest-house category
	prefFieldForks
	prefFieldCuisines
	prefFieldActivities
	prefFieldCount
)

// PreferencesFormModel is the step-1 form: trip constraints and tastes.
type PreferencesFormModel struct {
	destinations []model.Destination
	cuisines     []model.Cuisine
	activities   []model.ActivityCategory

	focused       int
	departureIdx  int // index into destinations, -1 = unset
	arrivalIdx    int
	accommodation model.AccommodationKind

	departureDate textinput.Model
	arrivalDate   textinput.Model
	budget        textinput.Model
	stars         textinput.Model
	ghCategory    textinput.Model
	forks         textinput.Model

	cuisineCursor    int
	activityCursor   int
	selectedCuisines map[int64]bool
	selectedActs     map[int64]bool

	errors map[string]string
	error  string
}

// NewPreferencesFormModel creates the step-1 form.
func NewPreferencesFormModel(destinations []model.Destination, cuisines []model.Cuisine, activities []model.ActivityCategory) *PreferencesFormModel {
	departureDate := textinput.New()
	departureDate.Placeholder = util.TodayISO() + " (YYYY-MM-DD)"
	departureDate.CharLimit = 32

	arrivalDate := textinput.New()
	arrivalDate.Placeholder = "YYYY-MM-DD"
	arrivalDate.CharLimit = 32

	budget := textinput.New()
	budget.Placeholder = "Budget in DT"
	budget.CharLimit = 10

	stars := textinput.New()
	stars.Placeholder = "1-5"
	stars.CharLimit = 1

	ghCategory := textinput.New()
	ghCategory.Placeholder = "Category"
	ghCategory.CharLimit = 40

	forks := textinput.New()
	forks.Placeholder = "1-3"
	forks.CharLimit = 1

	return &PreferencesFormModel{
		destinations:     destinations,
		cuisines:         cuisines,
		activities:       activities,
		departureIdx:     -1,
		arrivalIdx:       -1,
		accommodation:    model.AccommodationHotel,
		departureDate:    departureDate,
		arrivalDate:      arrivalDate,
		budget:           budget,
		stars:            stars,
		ghCategory:       ghCategory,
		forks:            forks,
		selectedCuisines: make(map[int64]bool),
		selectedActs:     make(map[int64]bool),
	}
}

// LoadPreferences restores a previously entered set of preferences, used
// when navigating back to step 1 or resuming a draft.
func (m *PreferencesFormModel) LoadPreferences(prefs model.TripPreferences) {
	for i, d := range m.destinations {
		if d.ID == prefs.DepartureCityID {
			m.departureIdx = i
		}
		if d.ID == prefs.ArrivalCityID {
			m.arrivalIdx = i
		}
	}
	if prefs.Accommodation != "" {
		m.accommodation = prefs.Accommodation
	}
	m.departureDate.SetValue(prefs.DepartureDate)
	m.arrivalDate.SetValue(prefs.ArrivalDate)
	if prefs.Budget > 0 {
		m.budget.SetValue(strconv.FormatFloat(prefs.Budget, 'f', -1, 64))
	}
	if prefs.Stars > 0 {
		m.stars.SetValue(strconv.Itoa(prefs.Stars))
	}
	m.ghCategory.SetValue(prefs.GuestHouseCategory)
	if prefs.Forks > 0 {
		m.forks.SetValue(strconv.Itoa(prefs.Forks))
	}
	for _, id := range prefs.CuisineIDs {
		m.selectedCuisines[id] = true
	}
	for _, id := range prefs.ActivityIDs {
		m.selectedActs[id] = true
	}
}

func (m *PreferencesFormModel) activeInput() *textinput.Model {
	switch m.focused {
	case prefFieldDepartureDate:
		return &m.departureDate
	case prefFieldArrivalDate:
		return &m.arrivalDate
	case prefFieldBudget:
		return &m.budget
	case prefFieldAccommodationDetail:
		if m.accommodation == model.AccommodationGuestHouse {
			return &m.ghCategory
		}
		return &m.stars
	case prefFieldForks:
		return &m.forks
	default:
		return nil
	}
}

func (m *PreferencesFormModel) focusField(field int) {
	for _, in := range []*textinput.Model{&m.departureDate, &m.arrivalDate, &m.budget, &m.stars, &m.ghCategory, &m.forks} {
		in.Blur()
	}
	m.focused = field
	if in := m.activeInput(); in != nil {
		in.Focus()
	}
}

// Update handles form input.
func (m PreferencesFormModel) Update(msg tea.Msg) (PreferencesFormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "tab", "enter":
		m.focusField((m.focused + 1) % prefFieldCount)
		return m, nil
	case "shift+tab":
		m.focusField((m.focused + prefFieldCount - 1) % prefFieldCount)
		return m, nil
	case "ctrl+s":
		return m.submit()
	}

	switch m.focused {
	case prefFieldDepartureCity:
		m.departureIdx = cycleIndex(keyMsg.String(), m.departureIdx, len(m.destinations))
		return m, nil
	case prefFieldArrivalCity:
		m.arrivalIdx = cycleIndex(keyMsg.String(), m.arrivalIdx, len(m.destinations))
		return m, nil
	case prefFieldAccommodation:
		switch keyMsg.String() {
		case "left", "right", "h", "l", " ":
			if m.accommodation == model.AccommodationHotel {
				m.accommodation = model.AccommodationGuestHouse
			} else {
				m.accommodation = model.AccommodationHotel
			}
		}
		return m, nil
	case prefFieldCuisines:
		m.cuisineCursor = moveCursor(keyMsg.String(), m.cuisineCursor, len(m.cuisines))
		if keyMsg.String() == " " && len(m.cuisines) > 0 {
			id := m.cuisines[m.cuisineCursor].ID
			m.selectedCuisines[id] = !m.selectedCuisines[id]
		}
		return m, nil
	case prefFieldActivities:
		m.activityCursor = moveCursor(keyMsg.String(), m.activityCursor, len(m.activities))
		if keyMsg.String() == " " && len(m.activities) > 0 {
			id := m.activities[m.activityCursor].ID
			m.selectedActs[id] = !m.selectedActs[id]
		}
		return m, nil
	}

	if in := m.activeInput(); in != nil {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		return m, cmd
	}
	return m, nil
}

func cycleIndex(keyStr string, idx, length int) int {
	if length == 0 {
		return -1
	}
	switch keyStr {
	case "left", "h", "up", "k":
		if idx <= 0 {
			return length - 1
		}
		return idx - 1
	case "right", "l", "down", "j", " ":
		return (idx + 1) % length
	}
	return idx
}

func moveCursor(keyStr string, cursor, length int) int {
	if length == 0 {
		return 0
	}
	switch keyStr {
	case "left", "h", "up", "k":
		if cursor > 0 {
			return cursor - 1
		}
	case "right", "l", "down", "j":
		if cursor < length-1 {
			return cursor + 1
		}
	}
	return cursor
}

func (m PreferencesFormModel) submit() (PreferencesFormModel, tea.Cmd) {
	prefs, err := m.collect()
	if err != nil {
		m.error = err.Error()
		return m, nil
	}
	if verr := wizard.ValidatePreferences(prefs, m.destinations); verr != nil {
		m.errors = verr.Fields
		m.error = verr.Error()
		return m, nil
	}
	m.errors = nil
	m.error = ""
	return m, func() tea.Msg { return prefsSubmittedMsg{prefs: prefs} }
}

func (m PreferencesFormModel) collect() (model.TripPreferences, error) {
	prefs := model.TripPreferences{Accommodation: m.accommodation}

	if m.departureIdx >= 0 && m.departureIdx < len(m.destinations) {
		prefs.DepartureCityID = m.destinations[m.departureIdx].ID
	}
	if m.arrivalIdx >= 0 && m.arrivalIdx < len(m.destinations) {
		prefs.ArrivalCityID = m.destinations[m.arrivalIdx].ID
	}

	var err error
	if prefs.DepartureDate, err = util.ParseDateInput(m.departureDate.Value()); err != nil {
		return prefs, fmt.Errorf("invalid departure date")
	}
	if prefs.ArrivalDate, err = util.ParseDateInput(m.arrivalDate.Value()); err != nil {
		return prefs, fmt.Errorf("invalid arrival date")
	}

	if s := strings.TrimSpace(m.budget.Value()); s != "" {
		if prefs.Budget, err = strconv.ParseFloat(s, 64); err != nil {
			return prefs, fmt.Errorf("budget must be a number")
		}
	}
	if s := strings.TrimSpace(m.stars.Value()); s != "" {
		if prefs.Stars, err = strconv.Atoi(s); err != nil {
			return prefs, fmt.Errorf("stars must be a number")
		}
	}
	prefs.GuestHouseCategory = strings.TrimSpace(m.ghCategory.Value())
	if s := strings.TrimSpace(m.forks.Value()); s != "" {
		if prefs.Forks, err = strconv.Atoi(s); err != nil {
			return prefs, fmt.Errorf("forks must be a number")
		}
	}

	for id, on := range m.selectedCuisines {
		if on {
			prefs.CuisineIDs = append(prefs.CuisineIDs, id)
		}
	}
	for id, on := range m.selectedActs {
		if on {
			prefs.ActivityIDs = append(prefs.ActivityIDs, id)
		}
	}
	return prefs, nil
}

// View renders the form.
func (m PreferencesFormModel) View(width, height int) string {
	var b strings.Builder

	b.WriteString(LabelStyle.Render("Step 1 — Trip preferences") + "\n\n")

	b.WriteString(m.renderCityField("Departure city", prefFieldDepartureCity, m.departureIdx) + "\n")
	b.WriteString(m.renderCityField("Arrival city", prefFieldArrivalCity, m.arrivalIdx) + "\n")
	b.WriteString(m.renderInputField("Departure date", prefFieldDepartureDate, m.departureDate) + "\n")
	b.WriteString(m.renderInputField("Arrival date", prefFieldArrivalDate, m.arrivalDate) + "\n")
	b.WriteString(m.renderInputField("Budget (DT)", prefFieldBudget, m.budget) + "\n")
	b.WriteString(m.renderAccommodationField() + "\n")
	if m.accommodation == model.AccommodationGuestHouse {
		b.WriteString(m.renderInputField("Guest house category", prefFieldAccommodationDetail, m.ghCategory) + "\n")
	} else {
		b.WriteString(m.renderInputField("Hotel stars", prefFieldAccommodationDetail, m.stars) + "\n")
	}
	b.WriteString(m.renderInputField("Restaurant forks", prefFieldForks, m.forks) + "\n")
	b.WriteString(m.renderCuisines() + "\n")
	b.WriteString(m.renderActivities() + "\n")

	if m.error != "" {
		b.WriteString("\n" + ErrorStyle.Render(m.error))
	}
	for field, msg := range m.errors {
		b.WriteString("\n" + ErrorStyle.Render(field+": "+msg))
	}
	b.WriteString("\n\n" + MutedStyle.Render("tab/enter next field · space toggle · ctrl+s continue"))

	return lipgloss.NewStyle().Width(width).Height(height).Render(b.String())
}

func (m PreferencesFormModel) fieldLabel(label string, field int) string {
	if m.focused == field {
		return OptionSelectedStyle.Render("→ " + label)
	}
	return MutedStyle.Render("  " + label)
}

func (m PreferencesFormModel) renderCityField(label string, field, idx int) string {
	value := "‹ select a city ›"
	if idx >= 0 && idx < len(m.destinations) {
		value = "‹ " + m.destinations[idx].Name + " ›"
	}
	return fmt.Sprintf("%-28s %s", m.fieldLabel(label, field), value)
}

func (m PreferencesFormModel) renderInputField(label string, field int, in textinput.Model) string {
	return fmt.Sprintf("%-28s %s", m.fieldLabel(label, field), in.View())
}

func (m PreferencesFormModel) renderAccommodationField() string {
	hotel, guestHouse := "hotel", "guest house"
	if m.accommodation == model.AccommodationHotel {
		hotel = OptionSelectedStyle.Render("[hotel]")
	} else {
		guestHouse = OptionSelectedStyle.Render("[guest house]")
	}
	return fmt.Sprintf("%-28s %s  %s", m.fieldLabel("Accommodation", prefFieldAccommodation), hotel, guestHouse)
}

func (m PreferencesFormModel) renderCuisines() string {
	return m.renderMulti("Cuisines", prefFieldCuisines, m.cuisineCursor, len(m.cuisines), func(i int) (string, bool) {
		c := m.cuisines[i]
		return c.Name, m.selectedCuisines[c.ID]
	})
}

func (m PreferencesFormModel) renderActivities() string {
	return m.renderMulti("Activities", prefFieldActivities, m.activityCursor, len(m.activities), func(i int) (string, bool) {
		a := m.activities[i]
		return a.Name, m.selectedActs[a.ID]
	})
}

func (m PreferencesFormModel) renderMulti(label string, field, cursor, length int, item func(int) (string, bool)) string {
	if length == 0 {
		return fmt.Sprintf("%-28s %s", m.fieldLabel(label, field), MutedStyle.Render("loading..."))
	}
	parts := make([]string, 0, length)
	for i := 0; i < length; i++ {
		name, selected := item(i)
		mark := "[ ]"
		if selected {
			mark = "[x]"
		}
		entry := mark + " " + name
		if m.focused == field && i == cursor {
			entry = SelectedStyle.Render(entry)
		}
		parts = append(parts, entry)
	}
	return fmt.Sprintf("%-28s %s", m.fieldLabel(label, field), strings.Join(parts, "  "))
}
