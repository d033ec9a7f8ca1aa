package events

import "time"

// DomainEvent is implemented by every event raised inside the domain
type DomainEvent interface {
	GetEventType() string
	GetAggregateID() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent carries the fields common to all domain events
type BaseEvent struct {
	AggregateID string    `json:"aggregateId"`
	EventType   string    `json:"eventType"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

// GetEventType returns the event type
func (e BaseEvent) GetEventType() string {
	return e.EventType
}

// GetAggregateID returns the aggregate ID
func (e BaseEvent) GetAggregateID() string {
	return e.AggregateID
}

// GetTimestamp returns the event timestamp
func (e BaseEvent) GetTimestamp() time.Time {
	return e.Timestamp
}

// GetVersion returns the event version
func (e BaseEvent) GetVersion() int {
	return e.Version
}
