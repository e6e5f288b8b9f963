package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuthAction string

const (
	SignupCompleted AuthAction = "signup_completed"
	LoginSuccess    AuthAction = "login_success"
	LoginFailed     AuthAction = "login_failed"
	EmailVerified   AuthAction = "email_verified"
	ChildLinked     AuthAction = "child_linked"
)

// AuthEvent is an audit row for authentication activity. Writes are
// best-effort; a failed insert never fails the operation being logged.
type AuthEvent struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	AccountID *uuid.UUID `gorm:"type:uuid;index"`
	Role      *Role      `gorm:"type:varchar(20)"`

	IPAddress *string    `gorm:"type:varchar(45)"`
	Action    AuthAction `gorm:"type:varchar(40);not null"`

	Metadata datatypes.JSON

	CreatedAt time.Time
}
