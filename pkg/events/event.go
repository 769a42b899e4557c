package events

import "time"

// Event is anything the interview engine announces to the outside world.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
}

// Domain event types.
const (
	TypeAnswerRecorded     = "ANSWER_RECORDED"
	TypeInterviewStarted   = "INTERVIEW_STARTED"
	TypeInterviewCompleted = "INTERVIEW_COMPLETED"
)

// BaseEvent is the generic implementation used by the services.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	payload := make(map[string]interface{}, len(e.Data)+1)
	for k, v := range e.Data {
		payload[k] = v
	}
	payload["occurred_at"] = e.OccurredAt
	return payload
}
