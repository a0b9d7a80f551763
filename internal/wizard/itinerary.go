package wizard

import (
	"fmt"

	"rihla/internal/model"
)

// Itinerary is the step-2 state: the departure/arrival endpoints, the
// trip dates, and the destination stops with their assigned days.
//
// The compiled stop order is always departure first, intermediates in the
// order the user added them, arrival last. Ordered re-stitches that order
// after every mutation instead of trusting the slice to stay sorted.
type Itinerary struct {
	DepartureCityID int64
	ArrivalCityID   int64
	DepartureDate   string
	ArrivalDate     string
	Stops           []model.ItineraryStop
}

// NewItinerary seeds the itinerary from validated preferences: the
// departure and arrival cities start with one day each.
func NewItinerary(prefs model.TripPreferences, destinations []model.Destination) Itinerary {
	it := Itinerary{
		DepartureCityID: prefs.DepartureCityID,
		ArrivalCityID:   prefs.ArrivalCityID,
		DepartureDate:   prefs.DepartureDate,
		ArrivalDate:     prefs.ArrivalDate,
	}
	if d, ok := findDestination(destinations, prefs.DepartureCityID); ok {
		it.Stops = append(it.Stops, model.ItineraryStop{DestinationID: d.ID, Name: d.Name, Days: 1})
	}
	if d, ok := findDestination(destinations, prefs.ArrivalCityID); ok && d.ID != prefs.DepartureCityID {
		it.Stops = append(it.Stops, model.ItineraryStop{DestinationID: d.ID, Name: d.Name, Days: 1})
	}
	return it
}

func findDestination(destinations []model.Destination, id int64) (model.Destination, bool) {
	for _, d := range destinations {
		if d.ID == id {
			return d, true
		}
	}
	return model.Destination{}, false
}

// AddStop adds an intermediate destination with one assigned day. Adding a
// destination already present, or one of the endpoints, is rejected.
func (it *Itinerary) AddStop(dest model.Destination) error {
	if dest.ID == it.DepartureCityID || dest.ID == it.ArrivalCityID {
		return fmt.Errorf("%s is already the departure or arrival city", dest.Name)
	}
	for _, s := range it.Stops {
		if s.DestinationID == dest.ID {
			return fmt.Errorf("%s is already in the itinerary", dest.Name)
		}
	}
	it.Stops = append(it.Stops, model.ItineraryStop{DestinationID: dest.ID, Name: dest.Name, Days: 1})
	return nil
}

// UpdateDays sets the day allocation for a stop, coercing invalid values
// to one day.
func (it *Itinerary) UpdateDays(destinationID int64, days int) {
	if days < 1 {
		days = 1
	}
	for i := range it.Stops {
		if it.Stops[i].DestinationID == destinationID {
			it.Stops[i].Days = days
			return
		}
	}
}

// RemoveStop removes an intermediate stop. The departure and arrival
// stops cannot be removed.
func (it *Itinerary) RemoveStop(destinationID int64) error {
	if destinationID == it.DepartureCityID || destinationID == it.ArrivalCityID {
		return fmt.Errorf("the departure and arrival cities cannot be removed")
	}
	for i, s := range it.Stops {
		if s.DestinationID == destinationID {
			it.Stops = append(it.Stops[:i], it.Stops[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("destination %d is not in the itinerary", destinationID)
}

// TotalTripDays returns the inclusive day span between the departure and
// arrival dates, or 0 when either date is missing or unparseable.
func (it Itinerary) TotalTripDays() int {
	dep, ok := model.ParseISODate(it.DepartureDate)
	if !ok {
		return 0
	}
	arr, ok := model.ParseISODate(it.ArrivalDate)
	if !ok {
		return 0
	}
	days := int(arr.Sub(dep).Hours()/24) + 1
	if days < 0 {
		return 0
	}
	return days
}

// AssignedDays sums the day allocations across all stops.
func (it Itinerary) AssignedDays() int {
	total := 0
	for _, s := range it.Stops {
		total += s.Days
	}
	return total
}

// Validate checks the step-2 invariants: both endpoints present in the
// stop list and the day allocations summing to the trip duration.
func (it Itinerary) Validate() error {
	hasDeparture, hasArrival := false, false
	for _, s := range it.Stops {
		if s.DestinationID == it.DepartureCityID {
			hasDeparture = true
		}
		if s.DestinationID == it.ArrivalCityID {
			hasArrival = true
		}
	}
	if !hasDeparture || !hasArrival {
		return &ValidationError{Fields: map[string]string{
			"days": "The departure and arrival cities must be included in the itinerary.",
		}}
	}
	total := it.TotalTripDays()
	assigned := it.AssignedDays()
	if assigned != total {
		return &ValidationError{Fields: map[string]string{
			"days": fmt.Sprintf("The assigned days (%d) must match the trip duration (%d).", assigned, total),
		}}
	}
	return nil
}

// Ordered returns the stops re-stitched into compiled order: departure
// first, intermediates in insertion order, arrival last.
func (it Itinerary) Ordered() []model.ItineraryStop {
	var departure, arrival *model.ItineraryStop
	intermediates := make([]model.ItineraryStop, 0, len(it.Stops))
	for i := range it.Stops {
		s := it.Stops[i]
		switch s.DestinationID {
		case it.DepartureCityID:
			departure = &s
		case it.ArrivalCityID:
			arrival = &s
		default:
			intermediates = append(intermediates, s)
		}
	}
	ordered := make([]model.ItineraryStop, 0, len(it.Stops))
	if departure != nil {
		ordered = append(ordered, *departure)
	}
	ordered = append(ordered, intermediates...)
	if arrival != nil {
		ordered = append(ordered, *arrival)
	}
	return ordered
}
