package model

import (
	"strconv"
	"strings"
	"time"
)

// Destination represents a city served by the platform catalog.
type Destination struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Cuisine is a cuisine reference entry for restaurant preferences.
type Cuisine struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ActivityCategory is an activity category reference entry.
type ActivityCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// EntityType identifies the kind of a bookable/visitable entity.
type EntityType string

const (
	TypeHotel              EntityType = "hotel"
	TypeGuestHouse         EntityType = "guest_house"
	TypeRestaurant         EntityType = "restaurant"
	TypeActivity           EntityType = "activity"
	TypeMuseum             EntityType = "museum"
	TypeFestival           EntityType = "festival"
	TypeArchaeologicalSite EntityType = "archaeological_site"
)

// AllEntityTypes lists every entity type in the order slots are offered.
var AllEntityTypes = []EntityType{
	TypeHotel,
	TypeGuestHouse,
	TypeRestaurant,
	TypeActivity,
	TypeMuseum,
	TypeFestival,
	TypeArchaeologicalSite,
}

// Label returns a display name for the entity type.
func (t EntityType) Label() string {
	switch t {
	case TypeHotel:
		return "Hotel"
	case TypeGuestHouse:
		return "Guest house"
	case TypeRestaurant:
		return "Restaurant"
	case TypeActivity:
		return "Activity"
	case TypeMuseum:
		return "Museum"
	case TypeFestival:
		return "Festival"
	case TypeArchaeologicalSite:
		return "Archaeological site"
	default:
		return string(t)
	}
}

// Entity is a catalog item of any type. The base fields are shared; the
// optional fields are populated depending on EntityType (stars for hotels,
// forks and cuisine for restaurants, and so on).
type Entity struct {
	ID          int64      `json:"id"`
	EntityType  EntityType `json:"-"`
	Name        string     `json:"name"`
	Destination string     `json:"destination"`
	Address     string     `json:"address"`
	Image       string     `json:"image"`
	Price       string     `json:"price"`
	Rating      *float64   `json:"rating"`

	Stars            *int    `json:"stars,omitempty"`
	Forks            *int    `json:"forks,omitempty"`
	Category         string  `json:"category,omitempty"`
	Cuisine          string  `json:"cuisine,omitempty"`
	Exhibition       string  `json:"exhibition,omitempty"`
	Date             string  `json:"date,omitempty"`
	HistoricalPeriod string  `json:"historical_period,omitempty"`
	Latitude         float64 `json:"latitude,omitempty"`
	Longitude        float64 `json:"longitude,omitempty"`
}

// PriceValue parses the entity's price as a decimal amount. The catalog
// sends prices as strings and sometimes omits them; anything non-numeric
// counts as zero.
func (e Entity) PriceValue() float64 {
	s := strings.TrimSpace(e.Price)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// AccommodationKind selects which accommodation slot the wizard offers.
type AccommodationKind string

const (
	AccommodationHotel      AccommodationKind = "hotel"
	AccommodationGuestHouse AccommodationKind = "guest_house"
)

// EntityType returns the entity type matching the accommodation kind.
func (k AccommodationKind) EntityType() EntityType {
	if k == AccommodationGuestHouse {
		return TypeGuestHouse
	}
	return TypeHotel
}

// TripPreferences holds the trip-level constraints gathered at step 1.
type TripPreferences struct {
	Budget             float64
	Accommodation      AccommodationKind
	Stars              int
	GuestHouseCategory string
	Forks              int
	CuisineIDs         []int64
	ActivityIDs        []int64
	DepartureCityID    int64
	ArrivalCityID      int64
	DepartureDate      string // ISO 8601 date (YYYY-MM-DD)
	ArrivalDate        string
}

// ParseISODate parses a YYYY-MM-DD date string.
func ParseISODate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ItineraryStop is one destination within the circuit with its assigned days.
type ItineraryStop struct {
	DestinationID int64
	Name          string
	Days          int
}

// CircuitDestination is the wire shape of a destination/day allocation.
type CircuitDestination struct {
	DestinationID int64 `json:"destination_id"`
	Days          int   `json:"days"`
}

// CircuitStop is the wire shape of one (destination, day) schedule entry.
type CircuitStop struct {
	DestinationID        int64  `json:"destination_id"`
	Day                  int    `json:"day"`
	Order                int    `json:"order"`
	DistanceKm           int    `json:"distance_km"`
	HotelID              *int64 `json:"hotel_id"`
	GuestHouseID         *int64 `json:"guest_house_id"`
	RestaurantID         *int64 `json:"restaurant_id"`
	ActivityID           *int64 `json:"activity_id"`
	MuseumID             *int64 `json:"museum_id"`
	FestivalID           *int64 `json:"festival_id"`
	ArchaeologicalSiteID *int64 `json:"archaeological_site_id"`
}

// PreferencesPayload is the preference snapshot embedded in circuit payloads
// and sent to the preference store.
type PreferencesPayload struct {
	Budget             float64 `json:"budget"`
	Accommodation      string  `json:"accommodation"`
	Stars              *int    `json:"stars"`
	GuestHouseCategory *string `json:"guest_house_category"`
	Forks              int     `json:"forks"`
	CuisineID          *int64  `json:"cuisine_id"`
	ActivityCategoryID *int64  `json:"activity_category_id"`
	DepartureCityID    int64   `json:"departure_city"`
	ArrivalCityID      int64   `json:"arrival_city"`
	DepartureDate      string  `json:"departure_date"`
	ArrivalDate        string  `json:"arrival_date"`
}

// CircuitPayload is the full compose-circuit request body.
type CircuitPayload struct {
	Name          string               `json:"name"`
	Code          string               `json:"circuit_code"`
	DepartureCity int64                `json:"departure_city"`
	ArrivalCity   int64                `json:"arrival_city"`
	Price         float64              `json:"price"`
	Duration      int                  `json:"duration"`
	Destinations  []CircuitDestination `json:"destinations"`
	Stops         []CircuitStop        `json:"stops"`
	Preferences   PreferencesPayload   `json:"preferences"`
}

/// CircuitCheck is the duplicate-detection request: the payload identity
// without the generated name and code.
type CircuitCheck struct {
	DepartureCity int64                `json:"departure_city"`
	ArrivalCity   int64                `json:"arrival_city"`
	Duration      int                  `json:"duration"`
	Destinations  []CircuitDestination `json:"destinations"`
	Stops         []CircuitStop        `json:"stops"`
	Price         float64              `json:"price"`
}

// ExistingCircuit is the duplicate-detection response.
type ExistingCircuit struct {
	Exists    bool  `json:"exists"`
	CircuitID int64 `json:"circuit_id"`
}

// OrderedDestination is a destination in server-confirmed visiting order.
type OrderedDestination struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Days      int     `json:"days"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ComposedCircuit is the compose-circuit response. The server's ordered
// destination list is authoritative when present.
type ComposedCircuit struct {
	ID                  int64                `json:"id"`
	Name                string               `json:"name"`
	Code                string               `json:"circuit_code"`
	DepartureCity       int64                `json:"departure_city"`
	ArrivalCity         int64                `json:"arrival_city"`
	Price               float64              `json:"price"`
	Duration            int                  `json:"duration"`
	OrderedDestinations []OrderedDestination `json:"ordered_destinations"`
}

// CircuitSchedule is one scheduled stop in a circuit detail, with the
// chosen entities embedded.
type CircuitSchedule struct {
	DestinationID   int64   `json:"destination_id"`
	DestinationName string  `json:"destination_name"`
	Day             int     `json:"day"`
	Order           int     `json:"order"`
	Hotel           *Entity `json:"hotel"`
	GuestHouse      *Entity `json:"guest_house"`
	Restaurant      *Entity `json:"restaurant"`
	Activity        *Entity `json:"activity"`
	Museum          *Entity `json:"museum"`
	Festival        *Entity `json:"festival"`
	Archaeological  *Entity `json:"archaeological_site"`
}

// CircuitDetail is the full circuit as served by the platform, used to
// rehydrate the wizard when the user adopts an existing circuit.
type CircuitDetail struct {
	ID            int64              `json:"id"`
	Name          string             `json:"name"`
	Code          string             `json:"circuit_code"`
	DepartureCity int64              `json:"departure_city"`
	ArrivalCity   int64              `json:"arrival_city"`
	Price         float64            `json:"price"`
	Duration      int                `json:"duration"`
	Preferences   PreferencesPayload `json:"preferences"`
	Schedules     []CircuitSchedule  `json:"schedules"`
}

// HistoryEntry records a composed circuit in the local history store.
type HistoryEntry struct {
	ID            int64
	CircuitID     int64
	Name          string
	Code          string
	DepartureCity string
	ArrivalCity   string
	Price         float64
	Duration      int
	DepartureDate string
	ArrivalDate   string
	CreatedAt     time.Time
}
