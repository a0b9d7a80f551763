package api

import (
	"context"
	"fmt"

	"rihla/internal/model"
)

type preferenceRequest struct {
	model.PreferencesPayload
	Cuisines   []preferenceCuisine  `json:"cuisines"`
	Activities []preferenceActivity `json:"activities"`
}

type preferenceCuisine struct {
	Cuisine int64 `json:"cuisine"`
}

type preferenceActivity struct {
	ActivityCategory int64 `json:"activity_category"`
}

// SavePreference persists the trip preferences server-side. The wizard
// treats a failure here as blocking the step-1 transition.
func (c *Client) SavePreference(ctx context.Context, prefs model.TripPreferences, payload model.PreferencesPayload) error {
	req := preferenceRequest{PreferencesPayload: payload}
	for _, id := range prefs.CuisineIDs {
		req.Cuisines = append(req.Cuisines, preferenceCuisine{Cuisine: id})
	}
	for _, id := range prefs.ActivityIDs {
		req.Activities = append(req.Activities, preferenceActivity{ActivityCategory: id})
	}
	if err := c.postJSON(ctx, "/api/preferences/", req, nil); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}
