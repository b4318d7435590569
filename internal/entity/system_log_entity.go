package entity

import (
	"time"

	"github.com/google/uuid"
)

// SystemLog is an audit trail row written by the activity consumer.
type SystemLog struct {
	Id        uuid.UUID
	EventType string
	Details   map[string]interface{}
	CreatedAt time.Time
}
