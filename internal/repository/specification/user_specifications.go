package specification

import (
	"gorm.io/gorm"

	"github.com/google/uuid"
)

type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

type ExcludingUser struct {
	UserID uuid.UUID
}

func (s ExcludingUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id <> ?", s.UserID)
}
