package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"rihla/internal/model"
	"rihla/internal/wizard"
)

// ListEntities fetches catalog entities of one type for a destination.
// Accommodation requests carry the minimum stars; restaurant requests
// carry the minimum forks and the cuisine preference list.
func (c *Client) ListEntities(ctx context.Context, entityType model.EntityType, filter wizard.EntityFilter) ([]model.Entity, error) {
	params := url.Values{}
	params.Set("destination_id", strconv.FormatInt(filter.DestinationID, 10))
	switch entityType {
	case model.TypeHotel, model.TypeGuestHouse:
		if filter.Stars > 0 {
			params.Set("stars", strconv.Itoa(filter.Stars))
		}
	case model.TypeRestaurant:
		if filter.Forks > 0 {
			params.Set("forks", strconv.Itoa(filter.Forks))
		}
		if len(filter.CuisineIDs) > 0 {
			ids := make([]string, len(filter.CuisineIDs))
			for i, id := range filter.CuisineIDs {
				ids[i] = strconv.FormatInt(id, 10)
			}
			params.Set("cuisine", strings.Join(ids, ","))
		}
	}

	var out []model.Entity
	path := "/api/" + entityPath(entityType) + "/"
	if err := c.getJSON(ctx, path, params.Encode(), &out); err != nil {
		return nil, fmt.Errorf("failed to list %s entities: %w", entityType, err)
	}
	for i := range out {
		out[i].EntityType = entityType
	}
	return out, nil
}

func entityPath(t model.EntityType) string {
	switch t {
	case model.TypeHotel:
		return "hotels"
	case model.TypeGuestHouse:
		return "guest-houses"
	case model.TypeRestaurant:
		return "restaurants"
	case model.TypeActivity:
		return "activities"
	case model.TypeMuseum:
		return "museums"
	case model.TypeFestival:
		return "festivals"
	case model.TypeArchaeologicalSite:
		return "archaeological-sites"
	default:
		return string(t)
	}
}
