package model

import (
	"time"

	"github.com/google/uuid"
)

type Chat struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Owner     uuid.UUID `gorm:"type:uuid;not null;index"`
	// "with" is a reserved word in Postgres, keep the column name explicit.
	With      uuid.UUID `gorm:"type:uuid;not null;index;column:with_user"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Chat) TableName() string {
	return "chats"
}

type ChatMessage struct {
	Id       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Sender   uuid.UUID `gorm:"type:uuid;not null;index"`
	Receiver uuid.UUID `gorm:"type:uuid;not null;index"`
	Body     string    `gorm:"type:text;not null"`
	Read     bool      `gorm:"default:false"`
	Date     time.Time `gorm:"not null;index"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
