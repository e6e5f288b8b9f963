package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Student struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:text;not null"`
	Role         Role      `gorm:"type:varchar(20);default:'student';not null"`

	Age          int
	GuardianName string `gorm:"type:varchar(100)"`
	StudentCode  string `gorm:"type:varchar(6);uniqueIndex;not null"`

	ReadingPreferences   datatypes.JSON
	NotificationSettings datatypes.JSON

	EmailVerified bool `gorm:"default:false"`
	CreatedAt     time.Time
	LastLogin     *time.Time
}

func (Student) TableName() string {
	return "students"
}

func (s *Student) ToAccount() *Account {
	account := &Account{
		ID:            s.ID,
		Username:      s.Username,
		Email:         s.Email,
		PasswordHash:  s.PasswordHash,
		Role:          RoleStudent,
		EmailVerified: s.EmailVerified,
		CreatedAt:     s.CreatedAt,
		LastLogin:     s.LastLogin,
		Student: &StudentProfile{
			Age:          s.Age,
			GuardianName: s.GuardianName,
			StudentCode:  s.StudentCode,
		},
	}
	account.ReadingPreferences = decodeReadingPreferences(s.ReadingPreferences)
	account.NotificationSettings = decodeNotificationSettings(s.NotificationSettings)
	return account
}

func decodeReadingPreferences(raw datatypes.JSON) *ReadingPreferences {
	if len(raw) == 0 {
		return nil
	}
	var prefs ReadingPreferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return nil
	}
	return &prefs
}

func decodeNotificationSettings(raw datatypes.JSON) *NotificationSettings {
	if len(raw) == 0 {
		return nil
	}
	var settings NotificationSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil
	}
	return &settings
}
