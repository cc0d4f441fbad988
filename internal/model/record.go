package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventRecord is the stored and transmitted form of an emitted event.
type EventRecord struct {
	Event   string          `json:"event"`
	Source  string          `json:"source"`
	Ts      int64           `json:"ts"`
	Payload json.RawMessage `json:"payload"`
}

// NewEventRecord encodes payload into a record for event.
func NewEventRecord(event, source string, at time.Time, payload any) (EventRecord, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return EventRecord{}, fmt.Errorf("failed to marshal %s payload: %w", event, err)
	}

	return EventRecord{
		Event:   event,
		Source:  source,
		Ts:      at.UnixMilli(),
		Payload: data,
	}, nil
}

// Time returns the record timestamp.
func (r EventRecord) Time() time.Time {
	return time.UnixMilli(r.Ts)
}
