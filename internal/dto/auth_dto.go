package dto

import (
	"time"

	"learnbrightly/internal/entity"
)

type SignupRequest struct {
	Username     string `json:"username" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	Role         string `json:"role" validate:"required,oneof=student parent"`
	Age          int    `json:"age,omitempty" validate:"omitempty,gte=3,lte=18"`
	GuardianName string `json:"guardianName,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	UserType string `json:"userType" validate:"required,oneof=student parent"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type UpdateDyslexiaScoreRequest struct {
	Score *float64 `json:"score" validate:"required,gte=0,lte=100"`
}

type UpdateReadingPreferencesRequest struct {
	Preferences *entity.ReadingPreferences `json:"preferences" validate:"required"`
}

type UpdateAccountRequest struct {
	Username     string `json:"username" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Age          int    `json:"age,omitempty"`
	GuardianName string `json:"guardianName,omitempty"`
}

type NotificationSettingsRequest struct {
	EmailNotifications bool   `json:"emailNotifications"`
	AchievementAlerts  bool   `json:"achievementAlerts"`
	ProgressUpdates    bool   `json:"progressUpdates"`
	WeeklyReports      bool   `json:"weeklyReports"`
	ReminderFrequency  string `json:"reminderFrequency" validate:"required,oneof=daily weekly none"`
}

type LinkChildRequest struct {
	StudentCode string `json:"studentCode" validate:"required,len=6"`
}

// UserResponse is the sanitized account view; the password hash never leaves
// the service. Role-specific fields are pointers so a student view carries
// no children key and a parent view no age.
type UserResponse struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Age          *int      `json:"age,omitempty"`
	GuardianName *string   `json:"guardianName,omitempty"`
	StudentCode  *string   `json:"studentCode,omitempty"`
	Children     *[]string `json:"children,omitempty"`
}

type AuthResponse struct {
	User    UserResponse `json:"user"`
	Token   string       `json:"token"`
	Message string       `json:"message,omitempty"`
}

type DyslexiaScoreResponse struct {
	Score        *float64   `json:"score"`
	LastTestDate *time.Time `json:"lastTestDate"`
}

func UserResponseFromAccount(account *entity.Account) UserResponse {
	response := UserResponse{
		ID:       account.ID.String(),
		Username: account.Username,
		Email:    account.Email,
		Role:     string(account.Role),
	}
	if account.Student != nil {
		age := account.Student.Age
		guardian := account.Student.GuardianName
		code := account.Student.StudentCode
		response.Age = &age
		response.GuardianName = &guardian
		response.StudentCode = &code
	}
	if account.Parent != nil {
		children := account.Parent.Children
		if children == nil {
			children = []string{}
		}
		response.Children = &children
	}
	return response
}

func UserResponsesFromAccounts(accounts []*entity.Account) []UserResponse {
	responses := make([]UserResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, UserResponseFromAccount(account))
	}
	return responses
}
