package wizard

import (
	"testing"

	"rihla/internal/model"

	"github.com/stretchr/testify/require"
)

func entity(id int64, t model.EntityType, price string) model.Entity {
	return model.Entity{ID: id, EntityType: t, Name: "entity", Price: price}
}

func TestSelectToggle(t *testing.T) {
	t.Parallel()

	sel := NewSelection()
	hotel := entity(100, model.TypeHotel, "120.000")

	sel.Select(1, 1, model.TypeHotel, hotel)
	got, ok := sel.Get(1, 1, model.TypeHotel)
	require.True(t, ok)
	require.Equal(t, int64(100), got.ID)

	// Selecting the chosen entity again clears the slot.
	sel.Select(1, 1, model.TypeHotel, hotel)
	_, ok = sel.Get(1, 1, model.TypeHotel)
	require.False(t, ok)
}

func TestSelectReplaces(t *testing.T) {
	t.Parallel()

	sel := NewSelection()
	sel.Select(1, 1, model.TypeRestaurant, entity(200, model.TypeRestaurant, "30.000"))
	sel.Select(1, 1, model.TypeRestaurant, entity(201, model.TypeRestaurant, "45.000"))

	got, ok := sel.Get(1, 1, model.TypeRestaurant)
	require.True(t, ok)
	require.Equal(t, int64(201), got.ID)
	require.Len(t, sel, 1)
}

func TestAccommodationExclusion(t *testing.T) {
	t.Parallel()

	sel := NewSelection()
	sel.Select(1, 1, model.TypeHotel, entity(100, model.TypeHotel, "120.000"))
	sel.Select(1, 1, model.TypeGuestHouse, entity(300, model.TypeGuestHouse, "80.000"))

	_, hotelOK := sel.Get(1, 1, model.TypeHotel)
	gh, ghOK := sel.Get(1, 1, model.TypeGuestHouse)
	require.False(t, hotelOK)
	require.True(t, ghOK)
	require.Equal(t, int64(300), gh.ID)

	// A different day keeps its own accommodation.
	sel.Select(1, 2, model.TypeHotel, entity(101, model.TypeHotel, "110.000"))
	_, ok := sel.Get(1, 2, model.TypeHotel)
	require.True(t, ok)
	_, ok = sel.Get(1, 1, model.TypeGuestHouse)
	require.True(t, ok)
}

func TestTotalPriceSumsSelections(t *testing.T) {
	t.Parallel()

	dests := testDestinations()
	it := NewItinerary(testPrefs(), dests)
	require.NoError(t, it.AddStop(dests[2]))
	it.UpdateDays(3, 2)

	sel := NewSelection()
	sel.Select(1, 1, model.TypeHotel, entity(100, model.TypeHotel, "120.500"))
	sel.Select(3, 1, model.TypeRestaurant, entity(200, model.TypeRestaurant, "30.250"))
	sel.Select(3, 2, model.TypeMuseum, entity(400, model.TypeMuseum, "")) // no price counts as zero
	sel.Select(2, 1, model.TypeActivity, entity(500, model.TypeActivity, "free"))

	require.InDelta(t, 150.75, sel.TotalPrice(it), 1e-9)

	// Deselecting restores the previous total.
	sel.Select(3, 1, model.TypeRestaurant, entity(200, model.TypeRestaurant, "30.250"))
	require.InDelta(t, 120.5, sel.TotalPrice(it), 1e-9)
}

func TestTotalPriceIgnoresSlotsOutsideItinerary(t *testing.T) {
	t.Parallel()

	it := NewItinerary(testPrefs(), testDestinations())
	sel := NewSelection()
	sel.Select(99, 1, model.TypeHotel, entity(100, model.TypeHotel, "500.000"))
	require.Zero(t, sel.TotalPrice(it))
	require.False(t, sel.HasAnySelection(it))
}

func TestValidateRequiresOneSelection(t *testing.T) {
	t.Parallel()

	it := NewItinerary(testPrefs(), testDestinations())
	sel := NewSelection()

	err := sel.Validate(it)
	require.Error(t, err)
	require.Contains(t, err.Error(), "at least one entity")

	sel.Select(1, 1, model.TypeFestival, entity(600, model.TypeFestival, "15.000"))
	require.NoError(t, sel.Validate(it))
}
