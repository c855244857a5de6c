package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Payload struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId    string         `gorm:"type:text;not null;index"` // Capture session the exchange belongs to
	FlowId       string         `gorm:"type:text;not null"`
	Action       string         `gorm:"type:text;not null"`
	RequestJson  datatypes.JSON `gorm:"not null"`
	ResponseJson datatypes.JSON
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (Payload) TableName() string {
	return "payloads"
}
