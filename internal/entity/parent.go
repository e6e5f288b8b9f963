package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Parent struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:text;not null"`
	Role         Role      `gorm:"type:varchar(20);default:'parent';not null"`

	// Children holds the ids of linked student accounts as a JSON array.
	Children datatypes.JSON

	ReadingPreferences   datatypes.JSON
	NotificationSettings datatypes.JSON

	EmailVerified bool `gorm:"default:false"`
	CreatedAt     time.Time
	LastLogin     *time.Time
}

func (Parent) TableName() string {
	return "parents"
}

func (p *Parent) ToAccount() *Account {
	account := &Account{
		ID:            p.ID,
		Username:      p.Username,
		Email:         p.Email,
		PasswordHash:  p.PasswordHash,
		Role:          RoleParent,
		EmailVerified: p.EmailVerified,
		CreatedAt:     p.CreatedAt,
		LastLogin:     p.LastLogin,
		Parent: &ParentProfile{
			Children: p.ChildIDs(),
		},
	}
	account.ReadingPreferences = decodeReadingPreferences(p.ReadingPreferences)
	account.NotificationSettings = decodeNotificationSettings(p.NotificationSettings)
	return account
}

func (p *Parent) ChildIDs() []string {
	if len(p.Children) == 0 {
		return []string{}
	}
	var ids []string
	if err := json.Unmarshal(p.Children, &ids); err != nil {
		return []string{}
	}
	return ids
}

func (p *Parent) SetChildIDs(ids []string) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	p.Children = datatypes.JSON(raw)
	return nil
}
