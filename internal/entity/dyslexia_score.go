package entity

import (
	"time"

	"github.com/google/uuid"
)

// DyslexiaScore keeps the latest assessment result per account. One row per
// account, replaced on every new test.
type DyslexiaScore struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AccountID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	Score        float64
	LastTestDate time.Time
}

func (DyslexiaScore) TableName() string {
	return "dyslexia_scores"
}
