package wizard

import "fmt"

// ValidationError reports client-side, user-correctable failures keyed by
// field. It blocks step advancement and never reaches the network layer.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	for _, msg := range e.Fields {
		return msg
	}
	return "validation failed"
}

// Has reports whether the given field failed validation.
func (e *ValidationError) Has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

// DuplicateCircuitError signals that an equivalent circuit already exists.
// It is a branching decision point, not a failure: the caller must offer
// the choice between adopting the existing circuit and creating a new one.
type DuplicateCircuitError struct {
	CircuitID int64
}

func (e *DuplicateCircuitError) Error() string {
	return fmt.Sprintf("an equivalent circuit already exists (id %d)", e.CircuitID)
}

// FetchStatus classifies the outcome of a suggestion fan-out.
type FetchStatus int

const (
	// FetchOK means every request succeeded and at least one returned items.
	FetchOK FetchStatus = iota
	// FetchPartial means some requests failed; advancement is still allowed.
	FetchPartial
	// FetchEmpty means every request settled but no items came back.
	FetchEmpty
	// FetchAllFailed means no request succeeded.
	FetchAllFailed
)

// FetchReport summarizes a settled suggestion fan-out. Partial and empty
// outcomes are soft warnings; only a fan-out over an empty itinerary is a
// hard error, reported by FetchAll itself.
type FetchReport struct {
	Requested int
	Succeeded int
	Failed    int
	Indexed   int
}

// Status derives the soft/hard classification from the settled counts.
func (r FetchReport) Status() FetchStatus {
	switch {
	case r.Succeeded == 0:
		return FetchAllFailed
	case r.Failed > 0:
		return FetchPartial
	case r.Indexed == 0:
		return FetchEmpty
	default:
		return FetchOK
	}
}

// Warning returns the dismissible message for soft outcomes, or "" when
// there is nothing to surface.
func (r FetchReport) Warning() string {
	switch r.Status() {
	case FetchAllFailed:
		return "Failed to fetch suggestions. You can go back and retry, or proceed without them."
	case FetchPartial:
		return "Some suggestions could not be fetched. You can proceed or go back and retry."
	case FetchEmpty:
		return "No suggestions were found for your itinerary. You may still proceed."
	default:
		return ""
	}
}
