package wizard

import (
	"testing"

	"rihla/internal/model"

	"github.com/stretchr/testify/require"
)

func TestValidatePreferencesAccepts(t *testing.T) {
	t.Parallel()

	require.Nil(t, ValidatePreferences(testPrefs(), testDestinations()))
}

func TestValidatePreferencesEmpty(t *testing.T) {
	t.Parallel()

	verr := ValidatePreferences(model.TripPreferences{}, testDestinations())
	require.NotNil(t, verr)
	for _, field := range []string{
		"budget", "accommodation", "forks", "cuisines", "activities",
		"departure_city", "arrival_city", "departure_date", "arrival_date",
	} {
		require.True(t, verr.Has(field), "expected error for %s", field)
	}
}

func TestValidatePreferencesNoDestinations(t *testing.T) {
	t.Parallel()

	verr := ValidatePreferences(testPrefs(), nil)
	require.NotNil(t, verr)
	require.True(t, verr.Has("destinations"))
}

func TestValidatePreferencesSameCities(t *testing.T) {
	t.Parallel()

	prefs := testPrefs()
	prefs.ArrivalCityID = prefs.DepartureCityID
	verr := ValidatePreferences(prefs, testDestinations())
	require.NotNil(t, verr)
	require.True(t, verr.Has("arrival_city"))
}

func TestValidatePreferencesMinimumDuration(t *testing.T) {
	t.Parallel()

	prefs := testPrefs()
	departure, ok := model.ParseISODate(prefs.DepartureDate)
	require.True(t, ok)

	prefs.ArrivalDate = prefs.DepartureDate
	verr := ValidatePreferences(prefs, testDestinations())
	require.NotNil(t, verr)
	require.True(t, verr.Has("dates"))

	prefs.ArrivalDate = departure.AddDate(0, 0, -1).Format("2006-01-02")
	verr = ValidatePreferences(prefs, testDestinations())
	require.NotNil(t, verr)
	require.Contains(t, verr.Fields["dates"], "after the departure date")

	prefs.ArrivalDate = departure.AddDate(0, 0, 1).Format("2006-01-02")
	require.Nil(t, ValidatePreferences(prefs, testDestinations()))
}

func TestValidatePreferencesPastDeparture(t *testing.T) {
	t.Parallel()

	prefs := testPrefs()
	prefs.DepartureDate = "2006-01-02"
	prefs.ArrivalDate = "2006-01-05"
	verr := ValidatePreferences(prefs, testDestinations())
	require.NotNil(t, verr)
	require.Contains(t, verr.Fields["departure_date"], "in the past")
}

func TestValidatePreferencesAccommodationKinds(t *testing.T) {
	t.Parallel()

	prefs := testPrefs()
	prefs.Stars = 0
	verr := ValidatePreferences(prefs, testDestinations())
	require.NotNil(t, verr)
	require.True(t, verr.Has("stars"))

	prefs.Accommodation = model.AccommodationGuestHouse
	verr = ValidatePreferences(prefs, testDestinations())
	require.NotNil(t, verr)
	require.False(t, verr.Has("stars"))
	require.True(t, verr.Has("guest_house_category"))

	prefs.GuestHouseCategory = "Dar"
	require.Nil(t, ValidatePreferences(prefs, testDestinations()))
}

func TestPreferencesPayloadSnapshot(t *testing.T) {
	t.Parallel()

	prefs := testPrefs()
	prefs.CuisineIDs = []int64{10, 11, 12}
	prefs.ActivityIDs = []int64{20, 21}

	p := PreferencesPayload(prefs)
	require.Equal(t, prefs.Budget, p.Budget)
	require.Equal(t, "hotel", p.Accommodation)
	require.NotNil(t, p.Stars)
	require.Equal(t, 4, *p.Stars)
	require.Nil(t, p.GuestHouseCategory)
	require.NotNil(t, p.CuisineID)
	require.Equal(t, int64(10), *p.CuisineID)
	require.NotNil(t, p.ActivityCategoryID)
	require.Equal(t, int64(20), *p.ActivityCategoryID)

	prefs.Accommodation = model.AccommodationGuestHouse
	prefs.GuestHouseCategory = "Dar"
	p = PreferencesPayload(prefs)
	require.Nil(t, p.Stars)
	require.NotNil(t, p.GuestHouseCategory)
	require.Equal(t, "Dar", *p.GuestHouseCategory)
}
