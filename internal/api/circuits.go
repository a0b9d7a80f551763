package api

import (
	"context"
	"fmt"
	"strconv"

	"rihla/internal/model"
)

// CheckExisting asks the platform whether an equivalent circuit already
// exists for the given identity.
func (c *Client) CheckExisting(ctx context.Context, check model.CircuitCheck) (model.ExistingCircuit, error) {
	var out model.ExistingCircuit
	if err := c.postJSON(ctx, "/api/circuits/check/", check, &out); err != nil {
		return model.ExistingCircuit{}, fmt.Errorf("failed to check existing circuit: %w", err)
	}
	return out, nil
}

// Compose submits a new circuit and returns the server-assigned result.
func (c *Client) Compose(ctx context.Context, payload model.CircuitPayload) (model.ComposedCircuit, error) {
	var out model.ComposedCircuit
	if err := c.postJSON(ctx, "/api/circuits/compose/", payload, &out); err != nil {
		return model.ComposedCircuit{}, fmt.Errorf("failed to compose circuit: %w", err)
	}
	return out, nil
}

// CircuitDetail fetches a circuit with its full schedule list.
func (c *Client) CircuitDetail(ctx context.Context, circuitID int64) (model.CircuitDetail, error) {
	var out model.CircuitDetail
	path := "/api/circuits/" + strconv.FormatInt(circuitID, 10) + "/"
	if err := c.getJSON(ctx, path, "", &out); err != nil {
		return model.CircuitDetail{}, fmt.Errorf("failed to fetch circuit detail: %w", err)
	}
	return out, nil
}

type historyRequest struct {
	Circuit       int64  `json:"circuit"`
	DepartureDate string `json:"departure_date"`
	ArrivalDate   string `json:"arrival_date"`
}

type historyCheckResponse struct {
	Exists bool `json:"exists"`
}

// CheckHistoryDuplicate reports whether the circuit is already in the
// user's trip history for the same dates.
func (c *Client) CheckHistoryDuplicate(ctx context.Context, circuitID int64, departureDate, arrivalDate string) (bool, error) {
	req := historyRequest{Circuit: circuitID, DepartureDate: departureDate, ArrivalDate: arrivalDate}
	var out historyCheckResponse
	if err := c.postJSON(ctx, "/api/circuit-history/check/", req, &out); err != nil {
		return false, fmt.Errorf("failed to check circuit history: %w", err)
	}
	return out.Exists, nil
}

// SaveHistory records the circuit in the user's trip history.
func (c *Client) SaveHistory(ctx context.Context, circuitID int64, departureDate, arrivalDate string) error {
	req := historyRequest{Circuit: circuitID, DepartureDate: departureDate, ArrivalDate: arrivalDate}
	if err := c.postJSON(ctx, "/api/circuit-history/", req, nil); err != nil {
		return fmt.Errorf("failed to save circuit history: %w", err)
	}
	return nil
}
