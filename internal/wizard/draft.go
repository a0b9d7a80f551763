package wizard

import (
	"encoding/json"
	"fmt"

	"rihla/internal/model"
)

// Step is a wizard step number.
type Step int

const (
	StepPreferences Step = 1
	StepItinerary   Step = 2
	StepSelection   Step = 3
	StepReview      Step = 4
)

// Draft is the serializable wizard snapshot autosaved between steps so a
// quit mid-wizard can resume where it left off. Suggestion indexes are
// not persisted; they are refetched on resume.
type Draft struct {
	Step        Step                  `json:"step"`
	Preferences model.TripPreferences `json:"preferences"`
	Itinerary   Itinerary             `json:"itinerary"`
	Selection   Selection             `json:"selection"`
}

// draftSlot is the JSON shape of one selected slot. Selection keys are
// structs, which JSON maps cannot carry, so the selection round-trips as
// a list.
type draftSlot struct {
	DestinationID int64            `json:"destination_id"`
	Day           int              `json:"day"`
	EntityType    model.EntityType `json:"entity_type"`
	Entity        model.Entity     `json:"entity"`
}

// MarshalJSON encodes the selection as a slot list.
func (s Selection) MarshalJSON() ([]byte, error) {
	slots := make([]draftSlot, 0, len(s))
	for key, entity := range s {
		slots = append(slots, draftSlot{
			DestinationID: key.DestinationID,
			Day:           key.Day,
			EntityType:    key.EntityType,
			Entity:        entity,
		})
	}
	return json.Marshal(slots)
}

// UnmarshalJSON decodes a slot list back into the selection map.
func (s *Selection) UnmarshalJSON(data []byte) error {
	var slots []draftSlot
	if err := json.Unmarshal(data, &slots); err != nil {
		return err
	}
	out := make(Selection, len(slots))
	for _, slot := range slots {
		entity := slot.Entity
		entity.EntityType = slot.EntityType
		out[SlotKey{DestinationID: slot.DestinationID, Day: slot.Day, EntityType: slot.EntityType}] = entity
	}
	*s = out
	return nil
}

// EncodeDraft serializes a draft for storage.
func EncodeDraft(d Draft) ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode wizard draft: %w", err)
	}
	return data, nil
}

// DecodeDraft restores a stored draft.
func DecodeDraft(data []byte) (Draft, error) {
	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return Draft{}, fmt.Errorf("failed to decode wizard draft: %w", err)
	}
	if d.Selection == nil {
		d.Selection = NewSelection()
	}
	return d, nil
}
