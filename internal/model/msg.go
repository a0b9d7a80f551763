package model

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// ReferenceDataLoadedMsg is sent when the step-1 reference data
// (destinations, cuisines, activity categories) has loaded.
type ReferenceDataLoadedMsg struct {
	Destinations []Destination
	Cuisines     []Cuisine
	Activities   []ActivityCategory
}

// PreferenceSavedMsg is sent when the trip preferences were persisted
// server-side and the wizard may advance to the itinerary step.
type PreferenceSavedMsg struct {
	Preferences TripPreferences
}

// CircuitDuplicateMsg is sent when the duplicate check found an existing
// equivalent circuit and the user must choose.
type CircuitDuplicateMsg struct {
	CircuitID int64
}

// CircuitComposedMsg is sent when a new circuit was created server-side.
type CircuitComposedMsg struct {
	Circuit ComposedCircuit
}

// CircuitAdoptedMsg is sent when an existing circuit's detail was fetched
// and the wizard state rehydrated from it.
type CircuitAdoptedMsg struct {
	Detail CircuitDetail
}

// HistoryDuplicateMsg is sent when saving to history would duplicate an
// earlier trip and the user must confirm.
type HistoryDuplicateMsg struct {
	CircuitID int64
}

// HistorySavedMsg is sent when the circuit was recorded in trip history.
type HistorySavedMsg struct {
	CircuitID int64
}

// HistoryLoadedMsg is sent when the local history list is loaded.
type HistoryLoadedMsg struct {
	Entries []HistoryEntry
}

// DraftLoadedMsg is sent at startup when an autosaved wizard draft exists.
type DraftLoadedMsg struct {
	Draft []byte
}

// Screen represents different app screens.
type Screen int

const (
	ScreenWizard Screen = iota
	ScreenHistory
)
