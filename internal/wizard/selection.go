package wizard

import "rihla/internal/model"

// Selection is the sparse mapping from slot to chosen entity. At most one
// entity occupies a slot, and for a given destination and day the two
// accommodation types are mutually exclusive.
type Selection map[SlotKey]model.Entity

// NewSelection returns an empty selection state.
func NewSelection() Selection {
	return make(Selection)
}

// Select toggles the entity in its slot: selecting the already-chosen
// entity clears the slot, anything else replaces the previous choice.
// Choosing an accommodation clears the opposite accommodation slot for
// the same destination and day.
func (s Selection) Select(destinationID int64, day int, entityType model.EntityType, entity model.Entity) {
	key := SlotKey{DestinationID: destinationID, Day: day, EntityType: entityType}
	if current, ok := s[key]; ok && current.ID == entity.ID {
		delete(s, key)
		return
	}
	switch entityType {
	case model.TypeHotel:
		delete(s, SlotKey{DestinationID: destinationID, Day: day, EntityType: model.TypeGuestHouse})
	case model.TypeGuestHouse:
		delete(s, SlotKey{DestinationID: destinationID, Day: day, EntityType: model.TypeHotel})
	}
	s[key] = entity
}

// Get returns the entity chosen for a slot, if any.
func (s Selection) Get(destinationID int64, day int, entityType model.EntityType) (model.Entity, bool) {
	e, ok := s[SlotKey{DestinationID: destinationID, Day: day, EntityType: entityType}]
	return e, ok
}

// SelectedIDs returns the ids of every chosen entity across the circuit.
func (s Selection) SelectedIDs() map[int64]bool {
	ids := make(map[int64]bool, len(s))
	for _, e := range s {
		ids[e.ID] = true
	}
	return ids
}

// TotalPrice sums the prices of every entity selected within the
// itinerary. It is a pure function of the current state; missing or
// non-numeric prices count as zero.
func (s Selection) TotalPrice(itinerary Itinerary) float64 {
	total := 0.0
	for _, stop := range itinerary.Ordered() {
		for day := 1; day <= stop.Days; day++ {
			for _, t := range model.AllEntityTypes {
				if e, ok := s.Get(stop.DestinationID, day, t); ok {
					total += e.PriceValue()
				}
			}
		}
	}
	return total
}

// HasAnySelection reports whether at least one slot in the itinerary is
// filled. Compilation requires this.
func (s Selection) HasAnySelection(itinerary Itinerary) bool {
	for _, stop := range itinerary.Ordered() {
		for day := 1; day <= stop.Days; day++ {
			for _, t := range model.AllEntityTypes {
				if _, ok := s.Get(stop.DestinationID, day, t); ok {
					return true
				}
			}
		}
	}
	return false
}

// Validate checks the step-3 requirement before compilation.
func (s Selection) Validate(itinerary Itinerary) error {
	if !s.HasAnySelection(itinerary) {
		return &ValidationError{Fields: map[string]string{
			"entities": "Select at least one entity (hotel, restaurant, activity...) for at least one day of your trip.",
		}}
	}
	return nil
}
