package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"rihla/internal/model"
	"rihla/internal/wizard"

	"github.com/stretchr/testify/require"
)

func TestListEntitiesRequestShape(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth string
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode([]model.Entity{
			{ID: 1, Name: "Dar Said", Destination: "Tunis", Price: "95.000"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	entities, err := client.ListEntities(context.Background(), model.TypeRestaurant, wizard.EntityFilter{
		DestinationID: 7,
		Forks:         2,
		CuisineIDs:    []int64{10, 11},
	})
	require.NoError(t, err)

	require.Equal(t, "/api/restaurants/", gotPath)
	require.Equal(t, "Bearer test-token", gotAuth)
	require.Equal(t, []string{"7"}, gotQuery["destination_id"])
	require.Equal(t, []string{"2"}, gotQuery["forks"])
	require.Equal(t, []string{"10,11"}, gotQuery["cuisine"])

	require.Len(t, entities, 1)
	require.Equal(t, model.TypeRestaurant, entities[0].EntityType)
	require.Equal(t, "Dar Said", entities[0].Name)
}

func TestListEntitiesAccommodationQuery(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode([]model.Entity{})
	}))
	defer server.Close()

	client := NewClient(server.URL, "t")
	_, err := client.ListEntities(context.Background(), model.TypeGuestHouse, wizard.EntityFilter{
		DestinationID: 3,
		Stars:         4,
	})
	require.NoError(t, err)
	require.Equal(t, "/api/guest-houses/", gotPath)
	require.Equal(t, []string{"4"}, gotQuery["stars"])
	require.NotContains(t, gotQuery, "forks")
}

func TestErrorStatusSurfaces(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "t")
	_, err := client.ListDestinations(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 502")
}

func TestCheckExistingPostsIdentity(t *testing.T) {
	t.Parallel()

	var gotBody model.CircuitCheck
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/circuits/check/", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(model.ExistingCircuit{Exists: true, CircuitID: 42})
	}))
	defer server.Close()

	client := NewClient(server.URL, "t")
	check := model.CircuitCheck{
		DepartureCity: 1,
		ArrivalCity:   2,
		Duration:      4,
		Price:         158.5,
		Destinations:  []model.CircuitDestination{{DestinationID: 1, Days: 1}},
	}
	existing, err := client.CheckExisting(context.Background(), check)
	require.NoError(t, err)
	require.True(t, existing.Exists)
	require.Equal(t, int64(42), existing.CircuitID)
	require.Equal(t, check.Price, gotBody.Price)
	require.Equal(t, check.Destinations, gotBody.Destinations)
}

func TestSavePreferenceBody(t *testing.T) {
	t.Parallel()

	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/preferences/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	prefs := model.TripPreferences{
		Budget:          1500,
		Accommodation:   model.AccommodationHotel,
		Stars:           4,
		Forks:           2,
		CuisineIDs:      []int64{10, 11},
		ActivityIDs:     []int64{20},
		DepartureCityID: 1,
		ArrivalCityID:   2,
		DepartureDate:   "2026-10-01",
		ArrivalDate:     "2026-10-04",
	}

	client := NewClient(server.URL, "t")
	err := client.SavePreference(context.Background(), prefs, wizard.PreferencesPayload(prefs))
	require.NoError(t, err)

	require.Equal(t, float64(1500), got["budget"])
	require.Equal(t, "hotel", got["accommodation"])
	cuisines, ok := got["cuisines"].([]any)
	require.True(t, ok)
	require.Len(t, cuisines, 2)
	first, ok := cuisines[0].(map[string]any)
	require.True(t, ok)
	require.Equal(t, float64(10), first["cuisine"])
	activities, ok := got["activities"].([]any)
	require.True(t, ok)
	require.Len(t, activities, 1)
}

func TestSaveHistoryRoundTrip(t *testing.T) {
	t.Parallel()

	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/api/circuit-history/check/":
			json.NewEncoder(w).Encode(map[string]bool{"exists": false})
		case "/api/circuit-history/":
			w.WriteHeader(http.StatusCreated)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "t")
	exists, err := client.CheckHistoryDuplicate(context.Background(), 42, "2026-10-01", "2026-10-04")
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, client.SaveHistory(context.Background(), 42, "2026-10-01", "2026-10-04"))
	require.Equal(t, []string{"/api/circuit-history/check/", "/api/circuit-history/"}, paths)
}

func TestCircuitDetailPath(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/circuits/42/", r.URL.Path)
		json.NewEncoder(w).Encode(model.CircuitDetail{ID: 42, Name: "Circuit Tunis to Sousse"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "t")
	detail, err := client.CircuitDetail(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, int64(42), detail.ID)
	require.Equal(t, "Circuit Tunis to Sousse", detail.Name)
}
