package ui

import (
	"errors"
	"testing"

	"rihla/internal/model"
	"rihla/internal/wizard"

	"github.com/stretchr/testify/require"
)

func testModel() Model {
	m := New(nil, nil)
	m.refLoaded = true
	m.destinations = []model.Destination{
		{ID: 1, Name: "Tunis"},
		{ID: 2, Name: "Sousse"},
	}
	m.prefs = model.TripPreferences{
		Budget:          1000,
		Accommodation:   model.AccommodationHotel,
		DepartureCityID: 1,
		ArrivalCityID:   2,
		DepartureDate:   "2030-06-01",
		ArrivalDate:     "2030-06-02",
	}
	m.itinerary = wizard.NewItinerary(m.prefs, m.destinations)
	return m
}

func TestStaleSuggestionFetchDiscarded(t *testing.T) {
	t.Parallel()

	m := testModel()
	m.step = wizard.StepItinerary
	m.fetching = true
	m.fetchSeq = 2

	updated, _ := m.Update(suggestionsFetchedMsg{seq: 1, index: wizard.SuggestionIndex{}})
	got := updated.(Model)
	require.True(t, got.fetching, "a superseded fetch must not settle the wizard")
	require.Equal(t, wizard.StepItinerary, got.step)

	updated, _ = got.Update(suggestionsFetchedMsg{seq: 2, index: wizard.SuggestionIndex{}})
	got = updated.(Model)
	require.False(t, got.fetching)
	require.Equal(t, wizard.StepSelection, got.step)
	require.NotNil(t, got.selectionView)
}

func TestDuplicateCircuitOpensDecision(t *testing.T) {
	t.Parallel()

	m := testModel()
	m.step = wizard.StepSelection

	updated, _ := m.Update(model.CircuitDuplicateMsg{CircuitID: 42})
	got := updated.(Model)
	require.Equal(t, wizard.StepReview, got.step)
	require.NotNil(t, got.reviewView)
	require.Equal(t, reviewDuplicate, got.reviewView.mode)
	require.Equal(t, int64(42), got.reviewView.duplicateID)
}

func TestComposedCircuitEntersReview(t *testing.T) {
	t.Parallel()

	m := testModel()
	m.step = wizard.StepSelection

	updated, cmd := m.Update(model.CircuitComposedMsg{Circuit: model.ComposedCircuit{
		ID:       7,
		Name:     "Circuit Tunis to Sousse 1-ab",
		Duration: 2,
	}})
	got := updated.(Model)
	require.Equal(t, wizard.StepReview, got.step)
	require.Equal(t, reviewComposed, got.reviewView.mode)
	require.NotNil(t, cmd, "composition clears the draft and records history")
}

func TestErrorMessageClearsBusyFlags(t *testing.T) {
	t.Parallel()

	m := testModel()
	m.saving = true
	m.fetching = true

	updated, _ := m.Update(model.ErrorMsg{Err: errors.New("catalog unavailable")})
	got := updated.(Model)
	require.False(t, got.saving)
	require.False(t, got.fetching)
	require.NotEmpty(t, got.errorMsg)
}

func TestRestartResetsWizard(t *testing.T) {
	t.Parallel()

	m := testModel()
	m.step = wizard.StepReview
	m.selection.Select(1, 1, model.TypeHotel, model.Entity{ID: 100})

	updated, _ := m.Update(restartRequestedMsg{})
	got := updated.(Model)
	require.Equal(t, wizard.StepPreferences, got.step)
	require.Empty(t, got.selection)
	require.Nil(t, got.reviewView)
}
