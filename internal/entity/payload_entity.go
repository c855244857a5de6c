package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Payload is one captured protocol exchange for a test session. The request
// envelope is always present; the response envelope is nil when no response
// was observed.
type Payload struct {
	Id           uuid.UUID
	SessionId    string
	FlowId       string
	Action       string
	RequestJson  json.RawMessage
	ResponseJson json.RawMessage
	CreatedAt    time.Time
}
