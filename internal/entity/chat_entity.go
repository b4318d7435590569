package entity

import (
	"time"

	"github.com/google/uuid"
)

// Chat is the persisted pairing of a conversation's initiator and the user it
// is held with. Created once per initiated conversation, never mutated.
type Chat struct {
	Id        uuid.UUID
	Owner     uuid.UUID
	With      uuid.UUID
	CreatedAt time.Time
}

// ChatMessage is immutable except for the Read flag, which the read-receipt
// path flips exactly once to true.
type ChatMessage struct {
	Id       uuid.UUID
	Sender   uuid.UUID
	Receiver uuid.UUID
	Body     string
	Read     bool
	Date     time.Time
}
