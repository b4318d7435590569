package specification

import (
	"gorm.io/gorm"

	"github.com/google/uuid"
)

// ThreadsOf matches chat threads the user participates in, as either side.
type ThreadsOf struct {
	UserID uuid.UUID
}

func (s ThreadsOf) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("owner = ? OR with_user = ?", s.UserID, s.UserID)
}

// BetweenUsers matches messages exchanged in either direction between two users.
type BetweenUsers struct {
	A uuid.UUID
	B uuid.UUID
}

func (s BetweenUsers) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"(sender = ? AND receiver = ?) OR (sender = ? AND receiver = ?)",
		s.A, s.B, s.B, s.A,
	)
}

type OrderByDate struct{}

func (s OrderByDate) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("date ASC")
}
