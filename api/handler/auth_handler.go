package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"learnbrightly/api/middleware"
	"learnbrightly/internal/dto"
	"learnbrightly/internal/entity"
	"learnbrightly/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Service  *service.AccountService
	Validate *validator.Validate
}

func NewAuthHandler(svc *service.AccountService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{
		Service:  svc,
		Validate: validate,
	}
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req dto.SignupRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid request body"))
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("missing required fields"))
	}
	if req.Role == string(entity.RoleStudent) && (req.Age == 0 || req.GuardianName == "") {
		return writeError(c, http.StatusBadRequest, errors.New("age and guardian name are required for students"))
	}

	result, err := h.Service.Signup(c.Request().Context(), service.SignupInput{
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		Role:         entity.Role(req.Role),
		Age:          req.Age,
		GuardianName: req.GuardianName,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.AuthResponse{
		User:    dto.UserResponseFromAccount(result.Account),
		Token:   result.Token,
		Message: result.Message,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid request body"))
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("missing email, password, or user type"))
	}

	result, err := h.Service.Login(c.Request().Context(), req.Email, req.Password, entity.Role(req.UserType))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.AuthResponse{
		User:  dto.UserResponseFromAccount(result.Account),
		Token: result.Token,
	})
}

// Verify returns the live account for a valid bearer token. The middleware
// has already re-fetched the record.
func (h *AuthHandler) Verify(c echo.Context) error {
	account, ok := middleware.AccountFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("invalid token"))
	}
	return c.JSON(http.StatusOK, map[string]any{
		"user": dto.UserResponseFromAccount(account),
	})
}

func (h *AuthHandler) UpdateDyslexiaScore(c echo.Context) error {
	account, ok := middleware.AccountFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("invalid token"))
	}
	var req dto.UpdateDyslexiaScoreRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid request body"))
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("missing score"))
	}
	if err := h.Service.UpdateDyslexiaScore(c.Request().Context(), account.ID, *req.Score); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "score": *req.Score})
}

// GetDyslexiaScore returns the caller's score, or a linked child's score
// when a parent passes ?userId=.
func (h *AuthHandler) GetDyslexiaScore(c echo.Context) error {
	account, ok := middleware.AccountFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("invalid token"))
	}

	targetID := account.ID
	if raw := c.QueryParam("userId"); raw != "" && account.Role == entity.RoleParent {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return writeError(c, http.StatusBadRequest, errors.New("invalid user id"))
		}
		targetID = parsed
	}

	score, err := h.Service.GetDyslexiaScore(c.Request().Context(), targetID)
	if err != nil {
		return writeServiceError(c, err)
	}
	response := dto.DyslexiaScoreResponse{}
	if score != nil {
		response.Score = &score.Score
		testedAt := score.LastTestDate
		response.LastTestDate = &testedAt
	}
	return c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) GetReadingPreferences(c echo.Context) error {
	account, ok := middleware.AccountFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("invalid token"))
	}
	prefs, err := h.Service.GetReadingPreferences(c.Request().Context(), account.ID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"readingPreferences": prefs})
}

func (h *AuthHandler) UpdateReadingPreferences(c echo.Context) error {
	account, ok := middleware.AccountFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("invalid token"))
	}
	var req dto.UpdateReadingPreferencesRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid request body"))
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("missing preferences"))
	}
	if err := h.Service.UpdateReadingPreferences(c.Request().Context(), account.ID, *req.Preferences); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

func (h *AuthHandler) UpdateAccount(c echo.Context) error {
	account, ok := middleware.AccountFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("invalid token"))
	}
	var req dto.UpdateAccountRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid request body"))
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("missing required fields"))
	}
	if account.Role == entity.RoleStudent && (req.Age == 0 || req.GuardianName == "") {
		return writeError(c, http.StatusBadRequest, errors.New("missing required fields for student"))
	}

	updated, err := h.Service.UpdateAccount(c.Request().Context(), account.ID, service.UpdateAccountInput{
		Username:     req.Username,
		Email:        req.Email,
		Age:          req.Age,
		GuardianName: req.GuardianName,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"user": dto.UserResponseFromAccount(updated),
	})
}

func (h *AuthHandler) GetNotificationSettings(c echo.Context) error {
	account, ok := middleware.AccountFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("invalid token"))
	}
	settings, err := h.Service.GetNotificationSettings(c.Request().Context(), account.ID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

func (h *AuthHandler) UpdateNotificationSettings(c echo.Context) error {
	account, ok := middleware.AccountFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("invalid token"))
	}
	var req dto.NotificationSettingsRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid request body"))
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid notification settings"))
	}

	settings, err := h.Service.UpdateNotificationSettings(c.Request().Context(), account.ID, entity.NotificationSettings{
		EmailNotifications: req.EmailNotifications,
		AchievementAlerts:  req.AchievementAlerts,
		ProgressUpdates:    req.ProgressUpdates,
		WeeklyReports:      req.WeeklyReports,
		ReminderFrequency:  entity.ReminderFrequency(req.ReminderFrequency),
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	var req dto.VerifyEmailRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid request body"))
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("token and email are required"))
	}
	if err := h.Service.VerifyEmail(c.Request().Context(), req.Token, req.Email); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Email verified successfully! You can now log in to your account.",
	})
}

func (h *AuthHandler) ResendVerification(c echo.Context) error {
	var req dto.ResendVerificationRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid request body"))
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("email is required"))
	}
	if err := h.Service.ResendVerificationEmail(c.Request().Context(), req.Email); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Verification email sent successfully!",
	})
}

// Logout only acknowledges; tokens are bearer tokens the client discards and
// there is no server-side revocation list.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"message": "Logged out successfully"})
}

func (h *AuthHandler) LinkChild(c echo.Context) error {
	account, ok := middleware.AccountFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("invalid token"))
	}
	var req dto.LinkChildRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid request body"))
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("student code is required"))
	}

	student, err := h.Service.LinkChild(c.Request().Context(), account.ID, req.StudentCode)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"student": dto.UserResponseFromAccount(student),
		"message": student.Username + " has been linked to your account.",
	})
}

func (h *AuthHandler) GetChildren(c echo.Context) error {
	account, ok := middleware.AccountFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("invalid token"))
	}
	children, err := h.Service.GetChildren(c.Request().Context(), account.ID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"children": dto.UserResponsesFromAccounts(children),
	})
}

func (h *AuthHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	return decoder.Decode(target)
}

func writeError(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"error": err.Error()})
}

func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrDuplicateAccount),
		errors.Is(err, service.ErrEmailMismatch),
		errors.Is(err, service.ErrAlreadyVerified),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrTokenExpired):
		return writeError(c, http.StatusBadRequest, err)
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrEmailNotVerified),
		errors.Is(err, service.ErrWrongAccountType):
		return writeError(c, http.StatusUnauthorized, err)
	case errors.Is(err, service.ErrAccountNotFound),
		errors.Is(err, service.ErrCodeNotFound):
		return writeError(c, http.StatusNotFound, err)
	case errors.Is(err, service.ErrUpdateFailed):
		return writeError(c, http.StatusInternalServerError, service.ErrUpdateFailed)
	default:
		return writeError(c, http.StatusInternalServerError, errors.New("internal server error"))
	}
}
