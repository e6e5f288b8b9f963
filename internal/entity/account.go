package entity

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleParent  Role = "parent"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleParent
}

// ReadingPreferences is replaced wholesale on update; there is no partial
// merge of individual fields.
type ReadingPreferences struct {
	FontSize        int     `json:"fontSize"`
	FontFamily      string  `json:"fontFamily"`
	LineSpacing     float64 `json:"lineSpacing"`
	LetterSpacing   float64 `json:"letterSpacing"`
	BackgroundColor string  `json:"backgroundColor"`
	TextColor       string  `json:"textColor"`
	HighlightColor  string  `json:"highlightColor"`
}

type ReminderFrequency string

const (
	ReminderDaily  ReminderFrequency = "daily"
	ReminderWeekly ReminderFrequency = "weekly"
	ReminderNone   ReminderFrequency = "none"
)

type NotificationSettings struct {
	EmailNotifications bool              `json:"emailNotifications"`
	AchievementAlerts  bool              `json:"achievementAlerts"`
	ProgressUpdates    bool              `json:"progressUpdates"`
	WeeklyReports      bool              `json:"weeklyReports"`
	ReminderFrequency  ReminderFrequency `json:"reminderFrequency"`
}

// DefaultNotificationSettings is what an account reports before it ever
// saves settings of its own.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		EmailNotifications: true,
		AchievementAlerts:  true,
		ProgressUpdates:    true,
		WeeklyReports:      true,
		ReminderFrequency:  ReminderWeekly,
	}
}

// Account is the common view over the students and parents tables. The Role
// discriminator says which profile pointer is set; the other is nil.
type Account struct {
	ID            uuid.UUID
	Username      string
	Email         string
	PasswordHash  string
	Role          Role
	EmailVerified bool
	CreatedAt     time.Time
	LastLogin     *time.Time

	ReadingPreferences   *ReadingPreferences
	NotificationSettings *NotificationSettings

	Student *StudentProfile
	Parent  *ParentProfile
}

type StudentProfile struct {
	Age          int
	GuardianName string
	StudentCode  string
}

type ParentProfile struct {
	Children []string
}
