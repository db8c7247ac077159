package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types.
const (
	TypeResumeTailored = "resume.tailored"
	TypeResumeParsed   = "resume.parsed"
)

const currentVersion = 1

// Event describes a stored artifact. Consumers fetch the object by key.
type Event struct {
	Type        string    `json:"type"`
	ObjectKey   string    `json:"objectKey"`
	RequestID   string    `json:"requestId,omitempty"`
	UserID      string    `json:"userId,omitempty"`
	CompanyName string    `json:"companyName,omitempty"`
	RoleTitle   string    `json:"roleTitle,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
	Version     int       `json:"version"`
}

// New stamps an event with the current time and schema version.
func New(eventType, objectKey string) Event {
	return Event{
		Type:       eventType,
		ObjectKey:  objectKey,
		OccurredAt: time.Now().UTC(),
		Version:    currentVersion,
	}
}

// Encode returns the JSON body sent to the queue.
func Encode(evt Event) ([]byte, error) {
	if evt.Type == "" || evt.ObjectKey == "" {
		return nil, fmt.Errorf("event type and object key are required")
	}
	return json.Marshal(evt)
}

// Decode parses a queue body into an Event.
func Decode(payload []byte) (Event, error) {
	var evt Event
	if err := json.Unmarshal(payload, &evt); err != nil {
		return Event{}, err
	}
	return evt, nil
}
