package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the stable, authenticated identity. The Online flag is the only
// presence state; it is persisted here and mirrored transiently by registry
// membership (a user is live iff it has a registry entry).
type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Online       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
