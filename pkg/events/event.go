package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "REPORT_GENERATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const TypeReportGenerated = "REPORT_GENERATED"

// NewReportGenerated describes a completed validation run over a session.
func NewReportGenerated(sessionId string, flowCount, invalidFlows int) Event {
	return BaseEvent{
		Type: TypeReportGenerated,
		Data: map[string]interface{}{
			"session_id":    sessionId,
			"flow_count":    flowCount,
			"invalid_flows": invalidFlows,
		},
		OccurredAt: time.Now(),
	}
}
