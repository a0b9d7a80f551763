package wizard

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"rihla/internal/model"
)

// CircuitService is the platform capability the compiler submits to.
type CircuitService interface {
	CheckExisting(ctx context.Context, check model.CircuitCheck) (model.ExistingCircuit, error)
	Compose(ctx context.Context, payload model.CircuitPayload) (model.ComposedCircuit, error)
	CircuitDetail(ctx context.Context, circuitID int64) (model.CircuitDetail, error)
}

// RoundPrice normalizes a computed total to millime precision so two
// identical submissions compare equal in the duplicate check regardless
// of floating-point summation order.
func RoundPrice(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// BuildPayload flattens the itinerary and selection into the compose
// request. Order indexes increase strictly across (destination, day)
// pairs in itinerary order, starting at 1. The name and code embed the
// given timestamp and suffix so rapid submissions cannot collide.
func BuildPayload(prefs model.TripPreferences, itinerary Itinerary, sel Selection, now time.Time, suffix string) model.CircuitPayload {
	ordered := itinerary.Ordered()

	var stops []model.CircuitStop
	var destinations []model.CircuitDestination
	order := 1
	for _, stop := range ordered {
		destinations = append(destinations, model.CircuitDestination{
			DestinationID: stop.DestinationID,
			Days:          stop.Days,
		})
		for day := 1; day <= stop.Days; day++ {
			cs := model.CircuitStop{
				DestinationID: stop.DestinationID,
				Day:           day,
				Order:         order,
			}
			cs.HotelID = selectedID(sel, stop.DestinationID, day, model.TypeHotel)
			cs.GuestHouseID = selectedID(sel, stop.DestinationID, day, model.TypeGuestHouse)
			cs.RestaurantID = selectedID(sel, stop.DestinationID, day, model.TypeRestaurant)
			cs.ActivityID = selectedID(sel, stop.DestinationID, day, model.TypeActivity)
			cs.MuseumID = selectedID(sel, stop.DestinationID, day, model.TypeMuseum)
			cs.FestivalID = selectedID(sel, stop.DestinationID, day, model.TypeFestival)
			cs.ArchaeologicalSiteID = selectedID(sel, stop.DestinationID, day, model.TypeArchaeologicalSite)
			stops = append(stops, cs)
			order++
		}
	}

	departureName, arrivalName := "", ""
	for _, s := range ordered {
		if s.DestinationID == itinerary.DepartureCityID {
			departureName = s.Name
		}
		if s.DestinationID == itinerary.ArrivalCityID {
			arrivalName = s.Name
		}
	}

	stamp := now.UnixMilli()
	return model.CircuitPayload{
		Name:          fmt.Sprintf("Circuit %s to %s %d-%s", departureName, arrivalName, stamp, suffix),
		Code:          strings.ToUpper(fmt.Sprintf("CIRC%d%s", stamp, suffix)),
		DepartureCity: itinerary.DepartureCityID,
		ArrivalCity:   itinerary.ArrivalCityID,
		Price:         RoundPrice(sel.TotalPrice(itinerary)),
		Duration:      itinerary.TotalTripDays(),
		Destinations:  destinations,
		Stops:         stops,
		Preferences:   PreferencesPayload(prefs),
	}
}

// NewSuffix returns a short random payload suffix.
func NewSuffix() string {
	return uuid.NewString()[:8]
}

func selectedID(sel Selection, destinationID int64, day int, t model.EntityType) *int64 {
	if e, ok := sel.Get(destinationID, day, t); ok {
		id := e.ID
		return &id
	}
	return nil
}

// CheckPayload derives the duplicate-detection identity from a payload.
func CheckPayload(payload model.CircuitPayload) model.CircuitCheck {
	return model.CircuitCheck{
		DepartureCity: payload.DepartureCity,
		ArrivalCity:   payload.ArrivalCity,
		Duration:      payload.Duration,
		Destinations:  payload.Destinations,
		Stops:         payload.Stops,
		Price:         payload.Price,
	}
}

// Compile runs the duplicate check and, when no equivalent circuit
// exists, composes a new one. A found duplicate is returned as
// *DuplicateCircuitError so the caller can put the choice to the user;
// ComposeAnyway skips the check after the user decides to proceed.
func Compile(ctx context.Context, service CircuitService, payload model.CircuitPayload) (model.ComposedCircuit, error) {
	existing, err := service.CheckExisting(ctx, CheckPayload(payload))
	if err != nil {
		return model.ComposedCircuit{}, fmt.Errorf("failed to check for an existing circuit: %w", err)
	}
	if existing.Exists {
		return model.ComposedCircuit{}, &DuplicateCircuitError{CircuitID: existing.CircuitID}
	}
	return ComposeAnyway(ctx, service, payload)
}

// ComposeAnyway submits the payload without a duplicate check.
func ComposeAnyway(ctx context.Context, service CircuitService, payload model.CircuitPayload) (model.ComposedCircuit, error) {
	circuit, err := service.Compose(ctx, payload)
	if err != nil {
		return model.ComposedCircuit{}, fmt.Errorf("failed to compose circuit: %w", err)
	}
	if len(circuit.OrderedDestinations) == 0 {
		// Server omitted its ordering; fall back to the client-side default.
		for _, d := range payload.Destinations {
			circuit.OrderedDestinations = append(circuit.OrderedDestinations, model.OrderedDestination{
				ID:   d.DestinationID,
				Days: d.Days,
			})
		}
	}
	return circuit, nil
}

// AdoptExisting fetches an existing circuit and rebuilds the wizard state
// from its schedules. This is the one-way rehydration path taken when the
// user chooses to view the duplicate instead of creating a new circuit.
func AdoptExisting(ctx context.Context, service CircuitService, circuitID int64) (model.CircuitDetail, Itinerary, Selection, error) {
	detail, err := service.CircuitDetail(ctx, circuitID)
	if err != nil {
		return model.CircuitDetail{}, Itinerary{}, nil, fmt.Errorf("failed to fetch existing circuit: %w", err)
	}
	itinerary, sel := Rehydrate(detail)
	return detail, itinerary, sel, nil
}

// Rehydrate reconstructs the itinerary and selection from a circuit
// detail's schedules.
func Rehydrate(detail model.CircuitDetail) (Itinerary, Selection) {
	it := Itinerary{
		DepartureCityID: detail.DepartureCity,
		ArrivalCityID:   detail.ArrivalCity,
		DepartureDate:   detail.Preferences.DepartureDate,
		ArrivalDate:     detail.Preferences.ArrivalDate,
	}
	sel := NewSelection()

	// Schedule days are global trip days; slots are keyed by the day
	// within each destination's stay, so track the first global day seen
	// per destination and rebase on it.
	firstDay := make(map[int64]int)
	lastDay := make(map[int64]int)
	names := make(map[int64]string)
	var order []int64
	for _, sched := range detail.Schedules {
		if _, seen := firstDay[sched.DestinationID]; !seen {
			order = append(order, sched.DestinationID)
			firstDay[sched.DestinationID] = sched.Day
		}
		if sched.Day < firstDay[sched.DestinationID] {
			firstDay[sched.DestinationID] = sched.Day
		}
		if sched.Day > lastDay[sched.DestinationID] {
			lastDay[sched.DestinationID] = sched.Day
		}
		if sched.DestinationName != "" {
			names[sched.DestinationID] = sched.DestinationName
		}
	}
	for _, sched := range detail.Schedules {
		day := sched.Day - firstDay[sched.DestinationID] + 1
		if day < 1 {
			day = 1
		}
		for t, e := range scheduleEntities(sched) {
			if e == nil {
				continue
			}
			entity := *e
			entity.EntityType = t
			sel.Select(sched.DestinationID, day, t, entity)
		}
	}
	for _, id := range order {
		d := lastDay[id] - firstDay[id] + 1
		if d < 1 {
			d = 1
		}
		it.Stops = append(it.Stops, model.ItineraryStop{DestinationID: id, Name: names[id], Days: d})
	}
	return it, sel
}

func scheduleEntities(s model.CircuitSchedule) map[model.EntityType]*model.Entity {
	return map[model.EntityType]*model.Entity{
		model.TypeHotel:              s.Hotel,
		model.TypeGuestHouse:         s.GuestHouse,
		model.TypeRestaurant:         s.Restaurant,
		model.TypeActivity:           s.Activity,
		model.TypeMuseum:             s.Museum,
		model.TypeFestival:           s.Festival,
		model.TypeArchaeologicalSite: s.Archaeological,
	}
}
