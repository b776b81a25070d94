package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventDatasetReloaded   EventType = "dataset_reloaded"
	EventDatasetLoadFailed EventType = "dataset_load_failed"
)

// Event represents a dataset lifecycle event.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Source    string      `json:"source"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// DatasetReloadedPayload payload.
type DatasetReloadedPayload struct {
	Rows     int       `json:"rows"`
	Warnings int       `json:"warnings"`
	LoadedAt time.Time `json:"loaded_at"`
}

// DatasetLoadFailedPayload payload.
type DatasetLoadFailedPayload struct {
	Error string `json:"error"`
}
