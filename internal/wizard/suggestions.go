package wizard

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"rihla/internal/model"
)

// maxCandidatesPerSlot caps how many suggestions are offered per slot.
const maxCandidatesPerSlot = 5

// fetchTimeout bounds each individual catalog request.
const fetchTimeout = 15 * time.Second

// EntityCatalog is the catalog service the aggregator fetches from.
type EntityCatalog interface {
	ListEntities(ctx context.Context, entityType model.EntityType, filter EntityFilter) ([]model.Entity, error)
}

// EntityFilter carries the per-type query constraints for a catalog request.
type EntityFilter struct {
	DestinationID int64
	Stars         int
	Forks         int
	CuisineIDs    []int64
}

// SlotKey addresses one selectable unit: a destination, a day within its
// stay, and an entity type.
type SlotKey struct {
	DestinationID int64
	Day           int
	EntityType    model.EntityType
}

// SuggestionIndex holds the fetched candidates per slot.
type SuggestionIndex map[SlotKey][]model.Entity

// Candidates returns the capped candidate list for a slot, cheapest first.
// Selected entities stay visible regardless of the remaining budget;
// unselected ones above it are hidden.
func (idx SuggestionIndex) Candidates(key SlotKey, sel Selection, remainingBudget float64) []model.Entity {
	all := idx[key]
	if len(all) == 0 {
		return nil
	}
	chosen, hasChosen := sel.Get(key.DestinationID, key.Day, key.EntityType)

	filtered := make([]model.Entity, 0, len(all))
	for _, e := range all {
		if hasChosen && e.ID == chosen.ID {
			filtered = append(filtered, e)
			continue
		}
		if remainingBudget >= 0 && e.PriceValue() > remainingBudget {
			continue
		}
		filtered = append(filtered, e)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].PriceValue() < filtered[j].PriceValue()
	})
	if len(filtered) > maxCandidatesPerSlot {
		filtered = filtered[:maxCandidatesPerSlot]
	}
	return filtered
}

// slotRequest is one unit of the fan-out.
type slotRequest struct {
	key    SlotKey
	filter EntityFilter
}

type slotResult struct {
	key      SlotKey
	entities []model.Entity
	err      error
}

// SlotKeys enumerates every (destination, day, entityType) combination the
// aggregator fetches for, skipping the accommodation type that does not
// match the preferences.
func SlotKeys(itinerary Itinerary, prefs model.TripPreferences) []SlotKey {
	var keys []SlotKey
	for _, stop := range itinerary.Ordered() {
		for day := 1; day <= stop.Days; day++ {
			for _, t := range model.AllEntityTypes {
				if t == model.TypeHotel && prefs.Accommodation != model.AccommodationHotel {
					continue
				}
				if t == model.TypeGuestHouse && prefs.Accommodation != model.AccommodationGuestHouse {
					continue
				}
				keys = append(keys, SlotKey{DestinationID: stop.DestinationID, Day: day, EntityType: t})
			}
		}
	}
	return keys
}

// FetchAll issues one catalog request per slot key concurrently and waits
// for all of them to settle. Individual failures do not abort siblings;
// the report classifies the aggregate outcome. An empty itinerary is the
// only hard error.
func FetchAll(ctx context.Context, catalog EntityCatalog, itinerary Itinerary, prefs model.TripPreferences) (SuggestionIndex, FetchReport, error) {
	stops := itinerary.Ordered()
	if len(stops) == 0 {
		return nil, FetchReport{}, &ValidationError{Fields: map[string]string{
			"itinerary": "The itinerary is empty. Go back and add destinations first.",
		}}
	}

	names := make(map[int64]string, len(stops))
	for _, s := range stops {
		names[s.DestinationID] = s.Name
	}

	var requests []slotRequest
	for _, key := range SlotKeys(itinerary, prefs) {
		filter := EntityFilter{DestinationID: key.DestinationID}
		switch key.EntityType {
		case model.TypeHotel, model.TypeGuestHouse:
			filter.Stars = prefs.Stars
		case model.TypeRestaurant:
			filter.Forks = prefs.Forks
			filter.CuisineIDs = prefs.CuisineIDs
		}
		requests = append(requests, slotRequest{key: key, filter: filter})
	}

	results := make(chan slotResult, len(requests))
	var wg sync.WaitGroup
	for _, req := range requests {
		wg.Add(1)
		go func(req slotRequest) {
			defer wg.Done()
			reqCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
			defer cancel()
			entities, err := catalog.ListEntities(reqCtx, req.key.EntityType, req.filter)
			results <- slotResult{key: req.key, entities: entities, err: err}
		}(req)
	}
	wg.Wait()
	close(results)

	index := make(SuggestionIndex)
	report := FetchReport{Requested: len(requests)}
	for res := range results {
		if res.err != nil {
			report.Failed++
			continue
		}
		report.Succeeded++
		wantName := names[res.key.DestinationID]
		for _, e := range res.entities {
			// The catalog occasionally returns items from other cities;
			// only items whose destination matches the stop are indexed.
			if !destinationMatches(e, wantName) {
				continue
			}
			e.EntityType = res.key.EntityType
			index[res.key] = append(index[res.key], e)
			report.Indexed++
		}
	}
	return index, report, nil
}

func destinationMatches(e model.Entity, stopName string) bool {
	if stopName == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(e.Destination), strings.TrimSpace(stopName))
}
