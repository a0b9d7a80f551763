package wizard

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"rihla/internal/model"

	"github.com/stretchr/testify/require"
)

// fakeCatalog answers ListEntities from a function, counting calls.
type fakeCatalog struct {
	mu    sync.Mutex
	calls int
	fn    func(entityType model.EntityType, filter EntityFilter) ([]model.Entity, error)
}

func (f *fakeCatalog) ListEntities(ctx context.Context, entityType model.EntityType, filter EntityFilter) ([]model.Entity, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.fn(entityType, filter)
}

func TestSlotKeysSkipsOtherAccommodation(t *testing.T) {
	t.Parallel()

	it := NewItinerary(testPrefs(), testDestinations())
	keys := SlotKeys(it, testPrefs())

	// Two one-day stops, seven entity types minus the guest-house slot.
	require.Len(t, keys, 12)
	for _, k := range keys {
		require.NotEqual(t, model.TypeGuestHouse, k.EntityType)
	}

	prefs := testPrefs()
	prefs.Accommodation = model.AccommodationGuestHouse
	keys = SlotKeys(it, prefs)
	require.Len(t, keys, 12)
	for _, k := range keys {
		require.NotEqual(t, model.TypeHotel, k.EntityType)
	}
}

func TestSlotKeysOnePerDay(t *testing.T) {
	t.Parallel()

	dests := testDestinations()
	it := NewItinerary(testPrefs(), dests)
	require.NoError(t, it.AddStop(dests[2]))
	it.UpdateDays(3, 2)

	keys := SlotKeys(it, testPrefs())
	require.Len(t, keys, 4*6)

	days := map[int64]int{}
	for _, k := range keys {
		if k.Day > days[k.DestinationID] {
			days[k.DestinationID] = k.Day
		}
	}
	require.Equal(t, map[int64]int{1: 1, 2: 1, 3: 2}, days)
}

func TestFetchAllSettlesEveryRequest(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{fn: func(entityType model.EntityType, filter EntityFilter) ([]model.Entity, error) {
		name := "Tunis"
		if filter.DestinationID == 2 {
			name = "Sousse"
		}
		return []model.Entity{{ID: filter.DestinationID * 1000, Name: "x", Destination: name, Price: "10.000"}}, nil
	}}

	it := NewItinerary(testPrefs(), testDestinations())
	index, report, err := FetchAll(context.Background(), catalog, it, testPrefs())
	require.NoError(t, err)
	require.Equal(t, 12, catalog.calls)
	require.Equal(t, 12, report.Requested)
	require.Equal(t, 12, report.Succeeded)
	require.Zero(t, report.Failed)
	require.Equal(t, 12, report.Indexed)
	require.Equal(t, FetchOK, report.Status())
	require.Empty(t, report.Warning())
	require.Len(t, index, 12)
}

func TestFetchAllPartialFailure(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{fn: func(entityType model.EntityType, filter EntityFilter) ([]model.Entity, error) {
		if entityType == model.TypeMuseum {
			return nil, fmt.Errorf("catalog unavailable")
		}
		name := "Tunis"
		if filter.DestinationID == 2 {
			name = "Sousse"
		}
		return []model.Entity{{ID: 1, Name: "x", Destination: name}}, nil
	}}

	it := NewItinerary(testPrefs(), testDestinations())
	index, report, err := FetchAll(context.Background(), catalog, it, testPrefs())
	require.NoError(t, err)
	require.Equal(t, 2, report.Failed)
	require.Equal(t, 10, report.Succeeded)
	require.Equal(t, FetchPartial, report.Status())
	require.NotEmpty(t, report.Warning())

	// Failed slots are simply absent; the others carry their items.
	_, ok := index[SlotKey{DestinationID: 1, Day: 1, EntityType: model.TypeMuseum}]
	require.False(t, ok)
	require.NotEmpty(t, index[SlotKey{DestinationID: 1, Day: 1, EntityType: model.TypeHotel}])
}

func TestFetchAllAllFailed(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{fn: func(model.EntityType, EntityFilter) ([]model.Entity, error) {
		return nil, fmt.Errorf("boom")
	}}

	it := NewItinerary(testPrefs(), testDestinations())
	_, report, err := FetchAll(context.Background(), catalog, it, testPrefs())
	require.NoError(t, err)
	require.Equal(t, FetchAllFailed, report.Status())
	require.NotEmpty(t, report.Warning())
}

func TestFetchAllFiltersForeignDestinations(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{fn: func(entityType model.EntityType, filter EntityFilter) ([]model.Entity, error) {
		return []model.Entity{
			{ID: 1, Name: "local", Destination: "tunis "}, // case and spacing differ
			{ID: 2, Name: "stray", Destination: "Sfax"},
			{ID: 3, Name: "blank", Destination: ""},
		}, nil
	}}

	it := Itinerary{
		DepartureCityID: 1,
		ArrivalCityID:   2,
		DepartureDate:   "2026-10-01",
		ArrivalDate:     "2026-10-02",
		Stops: []model.ItineraryStop{
			{DestinationID: 1, Name: "Tunis", Days: 1},
			{DestinationID: 2, Name: "Sousse", Days: 1},
		},
	}
	index, _, err := FetchAll(context.Background(), catalog, it, testPrefs())
	require.NoError(t, err)

	key := SlotKey{DestinationID: 1, Day: 1, EntityType: model.TypeHotel}
	require.Len(t, index[key], 1)
	require.Equal(t, int64(1), index[key][0].ID)
	require.Equal(t, model.TypeHotel, index[key][0].EntityType)
}

func TestFetchAllEmptyItineraryIsError(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{fn: func(model.EntityType, EntityFilter) ([]model.Entity, error) {
		return nil, nil
	}}

	_, _, err := FetchAll(context.Background(), catalog, Itinerary{}, testPrefs())
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.True(t, verr.Has("itinerary"))
	require.Zero(t, catalog.calls)
}

func TestFetchAllForwardsFilters(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	seen := map[model.EntityType]EntityFilter{}
	catalog := &fakeCatalog{fn: func(entityType model.EntityType, filter EntityFilter) ([]model.Entity, error) {
		mu.Lock()
		seen[entityType] = filter
		mu.Unlock()
		return nil, nil
	}}

	prefs := testPrefs()
	prefs.CuisineIDs = []int64{10, 11}
	it := NewItinerary(prefs, testDestinations())
	_, _, err := FetchAll(context.Background(), catalog, it, prefs)
	require.NoError(t, err)

	require.Equal(t, 4, seen[model.TypeHotel].Stars)
	require.Equal(t, 2, seen[model.TypeRestaurant].Forks)
	require.Equal(t, []int64{10, 11}, seen[model.TypeRestaurant].CuisineIDs)
	require.Zero(t, seen[model.TypeMuseum].Stars)
	require.Zero(t, seen[model.TypeMuseum].Forks)
}

func TestCandidatesBudgetAndCap(t *testing.T) {
	t.Parallel()

	key := SlotKey{DestinationID: 1, Day: 1, EntityType: model.TypeRestaurant}
	index := SuggestionIndex{key: {
		entity(1, model.TypeRestaurant, "70.000"),
		entity(2, model.TypeRestaurant, "10.000"),
		entity(3, model.TypeRestaurant, "50.000"),
		entity(4, model.TypeRestaurant, "20.000"),
		entity(5, model.TypeRestaurant, "30.000"),
		entity(6, model.TypeRestaurant, "15.000"),
		entity(7, model.TypeRestaurant, "25.000"),
	}}

	// No budget constraint: cheapest five.
	got := index.Candidates(key, NewSelection(), -1)
	require.Len(t, got, 5)
	require.Equal(t, int64(2), got[0].ID)
	require.Equal(t, int64(6), got[1].ID)
	require.Equal(t, int64(4), got[2].ID)
	require.Equal(t, int64(7), got[3].ID)
	require.Equal(t, int64(5), got[4].ID)

	// Budget hides the expensive ones.
	got = index.Candidates(key, NewSelection(), 22)
	require.Len(t, got, 3)
	for _, e := range got {
		require.LessOrEqual(t, e.PriceValue(), 22.0)
	}

	// The selected entity stays visible above budget.
	sel := NewSelection()
	sel.Select(1, 1, model.TypeRestaurant, entity(1, model.TypeRestaurant, "70.000"))
	got = index.Candidates(key, sel, 22)
	ids := make([]int64, 0, len(got))
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	require.Contains(t, ids, int64(1))
}

func TestCandidatesEmptySlot(t *testing.T) {
	t.Parallel()

	index := SuggestionIndex{}
	got := index.Candidates(SlotKey{DestinationID: 9, Day: 1, EntityType: model.TypeHotel}, NewSelection(), -1)
	require.Nil(t, got)
}
