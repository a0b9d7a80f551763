package api

import (
	"context"
	"fmt"

	"rihla/internal/model"
)

// ListDestinations fetches every destination the platform serves.
func (c *Client) ListDestinations(ctx context.Context) ([]model.Destination, error) {
	var out []model.Destination
	if err := c.getJSON(ctx, "/api/destinations/", "", &out); err != nil {
		return nil, fmt.Errorf("failed to list destinations: %w", err)
	}
	return out, nil
}

// ListCuisines fetches the cuisine reference list for step-1 preferences.
func (c *Client) ListCuisines(ctx context.Context) ([]model.Cuisine, error) {
	var out []model.Cuisine
	if err := c.getJSON(ctx, "/api/cuisines/", "", &out); err != nil {
		return nil, fmt.Errorf("failed to list cuisines: %w", err)
	}
	return out, nil
}

// ListActivityCategories fetches the activity category reference list.
func (c *Client) ListActivityCategories(ctx context.Context) ([]model.ActivityCategory, error) {
	var out []model.ActivityCategory
	if err := c.getJSON(ctx, "/api/activity-categories/", "", &out); err != nil {
		return nil, fmt.Errorf("failed to list activity categories: %w", err)
	}
	return out, nil
}
