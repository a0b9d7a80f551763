package wizard

import (
	"time"

	"rihla/internal/model"
)

// ValidatePreferences checks the step-1 constraints against the loaded
// destination list. A nil return means the preferences may be submitted.
func ValidatePreferences(prefs model.TripPreferences, destinations []model.Destination) *ValidationError {
	errs := map[string]string{}

	if len(destinations) == 0 {
		errs["destinations"] = "No destinations available. Please try again later."
		return &ValidationError{Fields: errs}
	}

	if prefs.Budget <= 0 {
		errs["budget"] = "Budget is required and must be positive."
	}
	switch prefs.Accommodation {
	case model.AccommodationHotel:
		if prefs.Stars < 1 || prefs.Stars > 5 {
			errs["stars"] = "Stars (1-5) are required for hotels."
		}
	case model.AccommodationGuestHouse:
		if prefs.GuestHouseCategory == "" {
			errs["guest_house_category"] = "A category is required for guest houses."
		}
	default:
		errs["accommodation"] = "Choose an accommodation type."
	}
	if prefs.Forks < 1 || prefs.Forks > 3 {
		errs["forks"] = "Forks (1-3) are required."
	}
	if len(prefs.CuisineIDs) == 0 {
		errs["cuisines"] = "Select at least one cuisine."
	}
	if len(prefs.ActivityIDs) == 0 {
		errs["activities"] = "Select at least one activity category."
	}

	if prefs.DepartureCityID == 0 {
		errs["departure_city"] = "Departure city is required."
	} else if _, ok := findDestination(destinations, prefs.DepartureCityID); !ok {
		errs["departure_city"] = "Invalid departure city selected."
	}
	if prefs.ArrivalCityID == 0 {
		errs["arrival_city"] = "Arrival city is required."
	} else if _, ok := findDestination(destinations, prefs.ArrivalCityID); !ok {
		errs["arrival_city"] = "Invalid arrival city selected."
	}
	if prefs.DepartureCityID != 0 && prefs.DepartureCityID == prefs.ArrivalCityID {
		errs["arrival_city"] = "Arrival city must differ from the departure city."
	}

	dep, depOK := model.ParseISODate(prefs.DepartureDate)
	arr, arrOK := model.ParseISODate(prefs.ArrivalDate)
	if !depOK {
		errs["departure_date"] = "Departure date is required (YYYY-MM-DD)."
	} else if prefs.DepartureDate < time.Now().Format("2006-01-02") {
		errs["departure_date"] = "Departure date cannot be in the past."
	}
	if !arrOK {
		errs["arrival_date"] = "Arrival date is required (YYYY-MM-DD)."
	}
	if depOK && arrOK {
		if !arr.After(dep) {
			errs["dates"] = "Arrival date must be after the departure date."
		} else if int(arr.Sub(dep).Hours()/24)+1 < 2 {
			errs["dates"] = "The circuit must span at least 2 days."
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: errs}
}

// PreferencesPayload converts the preferences into their wire snapshot.
// The original platform persists a single cuisine and activity category,
// so the first selection of each is sent.
func PreferencesPayload(prefs model.TripPreferences) model.PreferencesPayload {
	p := model.PreferencesPayload{
		Budget:          prefs.Budget,
		Accommodation:   string(prefs.Accommodation),
		Forks:           prefs.Forks,
		DepartureCityID: prefs.DepartureCityID,
		ArrivalCityID:   prefs.ArrivalCityID,
		DepartureDate:   prefs.DepartureDate,
		ArrivalDate:     prefs.ArrivalDate,
	}
	if prefs.Accommodation == model.AccommodationHotel {
		stars := prefs.Stars
		p.Stars = &stars
	}
	if prefs.Accommodation == model.AccommodationGuestHouse {
		cat := prefs.GuestHouseCategory
		p.GuestHouseCategory = &cat
	}
	if len(prefs.CuisineIDs) > 0 {
		id := prefs.CuisineIDs[0]
		p.CuisineID = &id
	}
	if len(prefs.ActivityIDs) > 0 {
		id := prefs.ActivityIDs[0]
		p.ActivityCategoryID = &id
	}
	return p
}
