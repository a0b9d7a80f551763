package ui

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"rihla/internal/api"
	"rihla/internal/db"
	"rihla/internal/model"
	"rihla/internal/wizard"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// suggestionsFetchedMsg carries a settled suggestion fan-out. The seq
// guards against a stale fetch overwriting a newer one after the user
// went back and resubmitted the itinerary.
type suggestionsFetchedMsg struct {
	seq    int
	index  wizard.SuggestionIndex
	report wizard.FetchReport
}

type draftSavedMsg struct{}

// Model is the root application model.
type Model struct {
	db     *sql.DB
	client *api.Client
	keys   KeyMap

	width  int
	height int

	screen   model.Screen
	showHelp bool
	errorMsg string
	infoMsg  string

	destinations []model.Destination
	cuisines     []model.Cuisine
	activities   []model.ActivityCategory
	refLoaded    bool

	step      wizard.Step
	prefs     model.TripPreferences
	itinerary wizard.Itinerary
	selection wizard.Selection

	fetching bool
	fetchSeq int
	saving   bool

	lastPayload  model.CircuitPayload
	pendingDraft *wizard.Draft

	prefsForm     *PreferencesFormModel
	itineraryView *ItineraryModel
	selectionView *SelectionModel
	reviewView    *ReviewModel
	historyView   *HistoryModel
}

// New creates the root model.
func New(database *sql.DB, client *api.Client) Model {
	return Model{
		db:        database,
		client:    client,
		keys:      DefaultKeyMap(),
		screen:    model.ScreenWizard,
		step:      wizard.StepPreferences,
		selection: wizard.NewSelection(),
		prefsForm: NewPreferencesFormModel(nil, nil, nil),
	}
}

// Init loads the reference data and any autosaved draft.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadReferenceDataCmd(), m.loadDraftCmd())
}

// Commands

func (m Model) loadReferenceDataCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		destinations, err := client.ListDestinations(ctx)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		cuisines, err := client.ListCuisines(ctx)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		activities, err := client.ListActivityCategories(ctx)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.ReferenceDataLoadedMsg{
			Destinations: destinations,
			Cuisines:     cuisines,
			Activities:   activities,
		}
	}
}

func (m Model) loadDraftCmd() tea.Cmd {
	database := m.db
	return func() tea.Msg {
		payload, err := db.LoadDraft(database)
		if err != nil || payload == nil {
			return nil
		}
		return model.DraftLoadedMsg{Draft: payload}
	}
}

func (m Model) saveDraftCmd() tea.Cmd {
	draft := wizard.Draft{
		Step:        m.step,
		Preferences: m.prefs,
		Itinerary:   m.itinerary,
		Selection:   m.selection,
	}
	database := m.db
	return func() tea.Msg {
		payload, err := wizard.EncodeDraft(draft)
		if err != nil {
			return nil
		}
		if err := db.SaveDraft(database, payload); err != nil {
			return nil
		}
		return draftSavedMsg{}
	}
}

func (m Model) clearDraftCmd() tea.Cmd {
	database := m.db
	return func() tea.Msg {
		_ = db.ClearDraft(database)
		return nil
	}
}

func (m Model) savePreferenceCmd(prefs model.TripPreferences) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := client.SavePreference(ctx, prefs, wizard.PreferencesPayload(prefs)); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.PreferenceSavedMsg{Preferences: prefs}
	}
}

func (m Model) fetchSuggestionsCmd(seq int, itinerary wizard.Itinerary, prefs model.TripPreferences) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		index, report, err := wizard.FetchAll(context.Background(), client, itinerary, prefs)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return suggestionsFetchedMsg{seq: seq, index: index, report: report}
	}
}

func (m Model) compileCmd(payload model.CircuitPayload) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		circuit, err := wizard.Compile(ctx, client, payload)
		if err != nil {
			var dup *wizard.DuplicateCircuitError
			if errors.As(err, &dup) {
				return model.CircuitDuplicateMsg{CircuitID: dup.CircuitID}
			}
			return model.ErrorMsg{Err: err}
		}
		return model.CircuitComposedMsg{Circuit: circuit}
	}
}

func (m Model) composeAnywayCmd(payload model.CircuitPayload) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		circuit, err := wizard.ComposeAnyway(ctx, client, payload)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.CircuitComposedMsg{Circuit: circuit}
	}
}

func (m Model) adoptExistingCmd(circuitID int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		detail, err := client.CircuitDetail(ctx, circuitID)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.CircuitAdoptedMsg{Detail: detail}
	}
}

func (m Model) saveHistoryCmd(entry model.HistoryEntry) tea.Cmd {
	client := m.client
	database := m.db
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		exists, err := client.CheckHistoryDuplicate(ctx, entry.CircuitID, entry.DepartureDate, entry.ArrivalDate)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		if exists {
			return model.HistoryDuplicateMsg{CircuitID: entry.CircuitID}
		}
		if err := client.SaveHistory(ctx, entry.CircuitID, entry.DepartureDate, entry.ArrivalDate); err != nil {
			return model.ErrorMsg{Err: err}
		}
		if _, err := db.InsertHistory(database, entry); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.HistorySavedMsg{CircuitID: entry.CircuitID}
	}
}

func (m Model) loadHistoryCmd() tea.Cmd {
	database := m.db
	return func() tea.Msg {
		entries, err := db.ListHistory(database)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.HistoryLoadedMsg{Entries: entries}
	}
}

// Update is the root reducer.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case model.ErrorMsg:
		m.errorMsg = msg.Err.Error()
		m.saving = false
		m.fetching = false
		if m.reviewView != nil {
			m.reviewView.busy = false
		}
		return m, nil

	case model.ReferenceDataLoadedMsg:
		m.destinations = msg.Destinations
		m.cuisines = msg.Cuisines
		m.activities = msg.Activities
		m.refLoaded = true
		m.prefsForm = NewPreferencesFormModel(m.destinations, m.cuisines, m.activities)
		if m.pendingDraft != nil {
			return m.resumeDraft(*m.pendingDraft)
		}
		return m, nil

	case model.DraftLoadedMsg:
		draft, err := wizard.DecodeDraft(msg.Draft)
		if err != nil {
			return m, m.clearDraftCmd()
		}
		if !m.refLoaded {
			m.pendingDraft = &draft
			return m, nil
		}
		return m.resumeDraft(draft)

	case prefsSubmittedMsg:
		m.saving = true
		m.errorMsg = ""
		return m, m.savePreferenceCmd(msg.prefs)

	case model.PreferenceSavedMsg:
		m.saving = false
		return m.enterItinerary(msg.Preferences)

	case itinerarySubmittedMsg:
		m.itinerary = msg.itinerary
		m.errorMsg = ""
		m.fetching = true
		m.fetchSeq++
		return m, tea.Batch(
			m.fetchSuggestionsCmd(m.fetchSeq, m.itinerary, m.prefs),
			m.saveDraftCmd(),
		)

	case suggestionsFetchedMsg:
		if msg.seq != m.fetchSeq {
			return m, nil // superseded by a later fetch
		}
		m.fetching = false
		m.step = wizard.StepSelection
		m.selectionView = NewSelectionModel(m.prefs, m.itinerary, msg.index, m.selection, msg.report.Warning())
		return m, m.saveDraftCmd()

	case selectionSubmittedMsg:
		payload := wizard.BuildPayload(m.prefs, m.itinerary, m.selection, time.Now(), wizard.NewSuffix())
		m.lastPayload = payload
		m.errorMsg = ""
		m.infoMsg = "Composing circuit..."
		return m, m.compileCmd(payload)

	case model.CircuitDuplicateMsg:
		m.infoMsg = ""
		m.step = wizard.StepReview
		m.reviewView = NewDuplicateReview(m.itinerary, m.selection, msg.CircuitID)
		return m, nil

	case composeAnywayRequestedMsg:
		return m, m.composeAnywayCmd(m.lastPayload)

	case adoptExistingRequestedMsg:
		return m, m.adoptExistingCmd(msg.circuitID)

	case model.CircuitComposedMsg:
		m.infoMsg = ""
		m.step = wizard.StepReview
		m.reviewView = NewComposedReview(m.itinerary, m.selection, msg.Circuit)
		entry := m.historyEntry(msg.Circuit.ID, msg.Circuit.Name, msg.Circuit.Code, msg.Circuit.Price, msg.Circuit.Duration)
		return m, tea.Batch(m.clearDraftCmd(), m.saveHistoryCmd(entry))

	case model.CircuitAdoptedMsg:
		m.infoMsg = ""
		itinerary, selection := wizard.Rehydrate(msg.Detail)
		m.itinerary = itinerary
		m.selection = selection
		m.step = wizard.StepReview
		m.reviewView = NewAdoptedReview(msg.Detail, itinerary, selection)
		entry := m.historyEntry(msg.Detail.ID, msg.Detail.Name, msg.Detail.Code, msg.Detail.Price, msg.Detail.Duration)
		return m, tea.Batch(m.clearDraftCmd(), m.saveHistoryCmd(entry))

	case model.HistoryDuplicateMsg:
		if m.reviewView != nil {
			m.reviewView.SetHistoryNote("This trip is already in your history for these dates.")
		}
		return m, nil

	case model.HistorySavedMsg:
		if m.reviewView != nil {
			m.reviewView.SetHistoryNote("Saved to your trip history.")
		}
		return m, nil

	case model.HistoryLoadedMsg:
		if m.historyView == nil {
			m.historyView = NewHistoryModel(msg.Entries)
		} else {
			m.historyView.SetEntries(msg.Entries)
		}
		m.screen = model.ScreenHistory
		return m, nil

	case restartRequestedMsg:
		return m.restartWizard()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	if keyStr == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		if keyStr == "esc" || keyStr == "?" || keyStr == "q" {
			m.showHelp = false
		}
		return m, nil
	}

	// Step 1 owns most printable keys for its inputs; everything else
	// gets the global bindings.
	typing := m.screen == model.ScreenWizard && m.step == wizard.StepPreferences
	if !typing {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.History):
			return m, m.loadHistoryCmd()
		case key.Matches(msg, m.keys.Wizard):
			if m.screen == model.ScreenHistory {
				m.screen = model.ScreenWizard
			}
			return m, nil
		}
	} else if keyStr == "?" {
		m.showHelp = true
		return m, nil
	}

	if m.screen == model.ScreenHistory {
		view, cmd := m.historyView.Update(msg)
		*m.historyView = view
		return m, cmd
	}

	if keyStr == "esc" {
		pickerOpen := m.step == wizard.StepItinerary && m.itineraryView != nil && m.itineraryView.PickerOpen()
		if !pickerOpen {
			return m.stepBack()
		}
	}

	m.errorMsg = ""
	switch m.step {
	case wizard.StepPreferences:
		if m.saving {
			return m, nil
		}
		form, cmd := m.prefsForm.Update(msg)
		*m.prefsForm = form
		return m, cmd
	case wizard.StepItinerary:
		if m.fetching {
			return m, nil
		}
		view, cmd := m.itineraryView.Update(msg)
		*m.itineraryView = view
		return m, cmd
	case wizard.StepSelection:
		view, cmd := m.selectionView.Update(msg)
		*m.selectionView = view
		return m, cmd
	case wizard.StepReview:
		view, cmd := m.reviewView.Update(msg)
		*m.reviewView = view
		return m, cmd
	}
	return m, nil
}

// stepBack moves one wizard step backwards, keeping the entered state.
func (m Model) stepBack() (tea.Model, tea.Cmd) {
	switch m.step {
	case wizard.StepItinerary:
		m.step = wizard.StepPreferences
		m.prefsForm = NewPreferencesFormModel(m.destinations, m.cuisines, m.activities)
		m.prefsForm.LoadPreferences(m.prefs)
	case wizard.StepSelection:
		m.itinerary = m.itineraryView.Itinerary()
		m.step = wizard.StepItinerary
		m.itineraryView = NewItineraryModel(m.destinations, m.itinerary)
	case wizard.StepReview:
		// Only the duplicate decision can be backed out of; a composed
		// or adopted circuit is final and its draft already cleared.
		if m.reviewView != nil && m.reviewView.mode == reviewDuplicate {
			m.step = wizard.StepSelection
			return m, m.saveDraftCmd()
		}
		return m, nil
	}
	return m, m.saveDraftCmd()
}

// enterItinerary advances to step 2, reusing the working itinerary when
// the endpoints and dates did not change.
func (m Model) enterItinerary(prefs model.TripPreferences) (tea.Model, tea.Cmd) {
	keep := len(m.itinerary.Stops) > 0 &&
		m.itinerary.DepartureCityID == prefs.DepartureCityID &&
		m.itinerary.ArrivalCityID == prefs.ArrivalCityID &&
		m.itinerary.DepartureDate == prefs.DepartureDate &&
		m.itinerary.ArrivalDate == prefs.ArrivalDate
	m.prefs = prefs
	if !keep {
		m.itinerary = wizard.NewItinerary(prefs, m.destinations)
		m.selection = wizard.NewSelection()
	}
	m.step = wizard.StepItinerary
	m.itineraryView = NewItineraryModel(m.destinations, m.itinerary)
	return m, m.saveDraftCmd()
}

func (m Model) restartWizard() (tea.Model, tea.Cmd) {
	m.step = wizard.StepPreferences
	m.itinerary = wizard.Itinerary{}
	m.selection = wizard.NewSelection()
	m.reviewView = nil
	m.selectionView = nil
	m.itineraryView = nil
	m.errorMsg = ""
	m.infoMsg = ""
	m.prefsForm = NewPreferencesFormModel(m.destinations, m.cuisines, m.activities)
	m.prefsForm.LoadPreferences(m.prefs)
	return m, m.clearDraftCmd()
}

// resumeDraft restores an autosaved wizard session. Suggestion indexes
// are not persisted, so a draft past step 2 resumes by refetching.
func (m Model) resumeDraft(draft wizard.Draft) (tea.Model, tea.Cmd) {
	m.pendingDraft = nil
	m.prefs = draft.Preferences
	m.itinerary = draft.Itinerary
	m.selection = draft.Selection
	m.prefsForm = NewPreferencesFormModel(m.destinations, m.cuisines, m.activities)
	m.prefsForm.LoadPreferences(m.prefs)
	m.infoMsg = "Resumed your unfinished circuit."

	step := draft.Step
	if step > wizard.StepSelection {
		step = wizard.StepSelection
	}
	switch step {
	case wizard.StepItinerary:
		m.step = wizard.StepItinerary
		m.itineraryView = NewItineraryModel(m.destinations, m.itinerary)
	case wizard.StepSelection:
		m.step = wizard.StepItinerary
		m.itineraryView = NewItineraryModel(m.destinations, m.itinerary)
		m.fetching = true
		m.fetchSeq++
		return m, m.fetchSuggestionsCmd(m.fetchSeq, m.itinerary, m.prefs)
	default:
		m.step = wizard.StepPreferences
	}
	return m, nil
}

func (m Model) historyEntry(circuitID int64, name, code string, price float64, duration int) model.HistoryEntry {
	departure, arrival := "", ""
	for _, s := range m.itinerary.Ordered() {
		if s.DestinationID == m.itinerary.DepartureCityID {
			departure = s.Name
		}
		if s.DestinationID == m.itinerary.ArrivalCityID {
			arrival = s.Name
		}
	}
	return model.HistoryEntry{
		CircuitID:     circuitID,
		Name:          name,
		Code:          code,
		DepartureCity: departure,
		ArrivalCity:   arrival,
		Price:         price,
		Duration:      duration,
		DepartureDate: m.prefs.DepartureDate,
		ArrivalDate:   m.prefs.ArrivalDate,
	}
}

// View renders the application.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}
	if m.showHelp {
		return RenderFullHelp(m.width, m.height)
	}

	header := HeaderStyle.Render("rihla — circuit composer")
	stepBar := m.renderStepBar()

	footer := RenderHelp(m.screen, m.step, m.width)
	banners := m.renderBanners()

	chrome := lipgloss.Height(header) + lipgloss.Height(stepBar) + lipgloss.Height(footer) + lipgloss.Height(banners)
	contentHeight := m.height - chrome
	if contentHeight < 0 {
		contentHeight = 0
	}

	var content string
	switch {
	case m.screen == model.ScreenHistory:
		content = m.historyView.View(m.width, contentHeight)
	case !m.refLoaded:
		content = MutedStyle.Render("Loading destinations...")
	case m.fetching:
		content = MutedStyle.Render("Fetching suggestions for every stop...")
	default:
		switch m.step {
		case wizard.StepPreferences:
			content = m.prefsForm.View(m.width, contentHeight)
		case wizard.StepItinerary:
			content = m.itineraryView.View(m.width, contentHeight)
		case wizard.StepSelection:
			content = m.selectionView.View(m.width, contentHeight)
		case wizard.StepReview:
			content = m.reviewView.View(m.width, contentHeight)
		}
	}

	parts := []string{header, stepBar}
	if banners != "" {
		parts = append(parts, banners)
	}
	parts = append(parts, content, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderStepBar() string {
	if m.screen == model.ScreenHistory {
		return StepBarStyle.Width(m.width).Render(BreadcrumbActiveStyle.Render("History"))
	}
	labels := []string{"1 Preferences", "2 Itinerary", "3 Selection", "4 Review"}
	var parts []string
	for i, label := range labels {
		if wizard.Step(i+1) == m.step {
			parts = append(parts, StepActiveStyle.Render(label))
		} else {
			parts = append(parts, StepInactiveStyle.Render(label))
		}
	}
	return StepBarStyle.Width(m.width).Render(strings.Join(parts, ""))
}

func (m Model) renderBanners() string {
	var parts []string
	if m.errorMsg != "" {
		parts = append(parts, ErrorStyle.Width(m.width).Render(m.errorMsg))
	}
	if m.infoMsg != "" {
		parts = append(parts, SuccessStyle.Width(m.width).Render(m.infoMsg))
	}
	if len(parts) == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
