package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"learnbrightly/internal/entity"
	"learnbrightly/internal/repository"
	"learnbrightly/internal/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

type AccountService struct {
	students repository.StudentRepository
	parents  repository.ParentRepository
	scores   repository.ScoreRepository
	events   repository.AuthEventRepository

	emailSender   EmailSender
	verifications VerificationStore
	passwordHash  PasswordHasher
	tokens        TokenIssuer
	clock         Clock
	config        AuthConfig
}

func NewAccountService(
	students repository.StudentRepository,
	parents repository.ParentRepository,
	scores repository.ScoreRepository,
	events repository.AuthEventRepository,
	emailSender EmailSender,
	verifications VerificationStore,
	passwordHash PasswordHasher,
	tokens TokenIssuer,
	clock Clock,
	config AuthConfig,
) *AccountService {
	return &AccountService{
		students:      students,
		parents:       parents,
		scores:        scores,
		events:        events,
		emailSender:   emailSender,
		verifications: verifications,
		passwordHash:  passwordHash,
		tokens:        tokens,
		clock:         clock,
		config:        config,
	}
}

// Signup creates an account in the collection matching the requested role.
// Email and username must be unused across both collections; the unique
// indexes on each table are the authoritative duplicate signal for races the
// pre-check misses.
func (s *AccountService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	if strings.TrimSpace(input.Username) == "" || strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}
	if input.Role == entity.RoleStudent && (input.Age <= 0 || strings.TrimSpace(input.GuardianName) == "") {
		return nil, ErrInvalidInput
	}

	email := utils.NormalizeEmail(input.Email)
	if taken, err := s.accountExists(ctx, email, input.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrDuplicateAccount
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	var account *entity.Account
	switch input.Role {
	case entity.RoleStudent:
		code, err := utils.GenerateStudentCode()
		if err != nil {
			return nil, err
		}
		student := &entity.Student{
			Username:     input.Username,
			Email:        email,
			PasswordHash: hash,
			Role:         entity.RoleStudent,
			Age:          input.Age,
			GuardianName: input.GuardianName,
			StudentCode:  code,
		}
		if err := s.students.Create(ctx, student); err != nil {
			return nil, translateCreateError(err)
		}
		account = student.ToAccount()
	case entity.RoleParent:
		parent := &entity.Parent{
			Username:     input.Username,
			Email:        email,
			PasswordHash: hash,
			Role:         entity.RoleParent,
			Children:     datatypes.JSON([]byte("[]")),
		}
		if err := s.parents.Create(ctx, parent); err != nil {
			return nil, translateCreateError(err)
		}
		account = parent.ToAccount()
	}

	message := "Registration successful! You are now logged in."
	if s.emailSender == nil {
		// Simplified path: no mailer configured, activate immediately.
		if err := s.markVerified(ctx, account); err != nil {
			return nil, err
		}
		account.EmailVerified = true
	} else {
		if err := s.sendEmailVerification(ctx, account); err != nil {
			return nil, err
		}
		message = "Registration successful! Please check your inbox to verify your email."
	}

	token, _, err := s.tokens.IssueToken(account)
	if err != nil {
		return nil, err
	}

	_ = s.logEvent(ctx, account, entity.SignupCompleted, nil)
	return &AuthResult{Account: account, Token: token, Message: message}, nil
}

// Login checks credentials against both collections and enforces that the
// stored role matches the declared user type. Unknown email and wrong
// password produce the same error.
func (s *AccountService) Login(ctx context.Context, email, password string, userType entity.Role) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrInvalidInput
	}
	if !userType.Valid() {
		return nil, ErrInvalidRole
	}

	email = utils.NormalizeEmail(email)
	account, err := s.findAccountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		_ = s.passwordHash.Verify(dummyPasswordHash, password)
		_ = s.logEvent(ctx, nil, entity.LoginFailed, map[string]any{"email": email})
		return nil, ErrInvalidCredentials
	}

	if !s.passwordHash.Verify(account.PasswordHash, password) {
		_ = s.logEvent(ctx, account, entity.LoginFailed, map[string]any{"email": email})
		return nil, ErrInvalidCredentials
	}

	if !account.EmailVerified {
		return nil, ErrEmailNotVerified
	}

	if account.Role != userType {
		return nil, wrongAccountType(account.Role)
	}

	now := s.now()
	switch account.Role {
	case entity.RoleStudent:
		err = s.students.UpdateLastLogin(ctx, account.ID, now)
	case entity.RoleParent:
		err = s.parents.UpdateLastLogin(ctx, account.ID, now)
	}
	if err != nil {
		return nil, err
	}
	account.LastLogin = &now

	token, _, err := s.tokens.IssueToken(account)
	if err != nil {
		return nil, err
	}

	_ = s.logEvent(ctx, account, entity.LoginSuccess, nil)
	return &AuthResult{Account: account, Token: token}, nil
}

// VerifyToken checks signature and expiry, then re-fetches the live record.
// Claims are never trusted alone: a deleted account invalidates its tokens
// and role changes take effect without re-login.
func (s *AccountService) VerifyToken(ctx context.Context, token string) (*entity.Account, error) {
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	id, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	account, err := s.findAccountByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrInvalidToken
	}
	return account, nil
}

// VerifyEmail consumes a pending verification token. The welcome email is
// best-effort; a send failure never fails the verification.
func (s *AccountService) VerifyEmail(ctx context.Context, token, email string) error {
	pending, err := s.verifications.Get(ctx, token)
	if err != nil {
		return err
	}
	if pending == nil {
		return ErrInvalidToken
	}
	if s.now().After(pending.ExpiresAt) {
		_ = s.verifications.Delete(ctx, token)
		return ErrTokenExpired
	}
	if pending.Email != utils.NormalizeEmail(email) {
		return ErrEmailMismatch
	}

	id, err := uuid.Parse(pending.AccountID)
	if err != nil {
		return ErrInvalidToken
	}
	switch pending.Role {
	case entity.RoleStudent:
		err = s.students.VerifyEmail(ctx, id)
	case entity.RoleParent:
		err = s.parents.VerifyEmail(ctx, id)
	default:
		err = ErrInvalidToken
	}
	if err != nil {
		return err
	}

	if err := s.verifications.Delete(ctx, token); err != nil {
		return err
	}

	if s.emailSender != nil {
		_ = s.emailSender.SendWelcomeEmail(ctx, pending.Email, pending.Username, pending.Role)
	}
	_ = s.logEvent(ctx, nil, entity.EmailVerified, map[string]any{"email": pending.Email})
	return nil
}

func (s *AccountService) ResendVerificationEmail(ctx context.Context, email string) error {
	account, err := s.findAccountByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return err
	}
	if account == nil {
		return ErrAccountNotFound
	}
	if account.EmailVerified {
		return ErrAlreadyVerified
	}
	return s.sendEmailVerification(ctx, account)
}

func (s *AccountService) GetReadingPreferences(ctx context.Context, id uuid.UUID) (*entity.ReadingPreferences, error) {
	account, err := s.findAccountByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	return account.ReadingPreferences, nil
}

// UpdateReadingPreferences replaces the stored preferences wholesale.
func (s *AccountService) UpdateReadingPreferences(ctx context.Context, id uuid.UUID, prefs entity.ReadingPreferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	updated, err := s.students.UpdateReadingPreferences(ctx, id, datatypes.JSON(raw))
	if err != nil {
		return err
	}
	if !updated {
		updated, err = s.parents.UpdateReadingPreferences(ctx, id, datatypes.JSON(raw))
		if err != nil {
			return err
		}
	}
	if !updated {
		return ErrAccountNotFound
	}
	return nil
}

func (s *AccountService) GetNotificationSettings(ctx context.Context, id uuid.UUID) (entity.NotificationSettings, error) {
	account, err := s.findAccountByID(ctx, id)
	if err != nil {
		return entity.NotificationSettings{}, err
	}
	if account == nil {
		return entity.NotificationSettings{}, ErrAccountNotFound
	}
	if account.NotificationSettings == nil {
		return entity.DefaultNotificationSettings(), nil
	}
	return *account.NotificationSettings, nil
}

func (s *AccountService) UpdateNotificationSettings(ctx context.Context, id uuid.UUID, settings entity.NotificationSettings) (entity.NotificationSettings, error) {
	raw, err := json.Marshal(settings)
	if err != nil {
		return entity.NotificationSettings{}, err
	}
	updated, err := s.students.UpdateNotificationSettings(ctx, id, datatypes.JSON(raw))
	if err != nil {
		return entity.NotificationSettings{}, err
	}
	if !updated {
		updated, err = s.parents.UpdateNotificationSettings(ctx, id, datatypes.JSON(raw))
		if err != nil {
			return entity.NotificationSettings{}, err
		}
	}
	if !updated {
		return entity.NotificationSettings{}, ErrAccountNotFound
	}
	return settings, nil
}

// UpdateAccount checks existence before mutating so a client resubmitting
// unchanged values is a successful no-op rather than a failure.
func (s *AccountService) UpdateAccount(ctx context.Context, id uuid.UUID, input UpdateAccountInput) (*entity.Account, error) {
	if strings.TrimSpace(input.Username) == "" || strings.TrimSpace(input.Email) == "" {
		return nil, ErrInvalidInput
	}
	email := utils.NormalizeEmail(input.Email)

	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student != nil {
		if input.Age <= 0 || strings.TrimSpace(input.GuardianName) == "" {
			return nil, ErrInvalidInput
		}
		student.Username = input.Username
		student.Email = email
		student.Age = input.Age
		student.GuardianName = input.GuardianName
		if err := s.students.Update(ctx, student); err != nil {
			return nil, translateUpdateError(err)
		}
		return student.ToAccount(), nil
	}

	parent, err := s.parents.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if parent != nil {
		parent.Username = input.Username
		parent.Email = email
		if err := s.parents.Update(ctx, parent); err != nil {
			return nil, translateUpdateError(err)
		}
		return parent.ToAccount(), nil
	}

	return nil, ErrAccountNotFound
}

func (s *AccountService) UpdateDyslexiaScore(ctx context.Context, id uuid.UUID, score float64) error {
	return s.scores.Upsert(ctx, id, score, s.now())
}

func (s *AccountService) GetDyslexiaScore(ctx context.Context, id uuid.UUID) (*entity.DyslexiaScore, error) {
	return s.scores.FindByAccountID(ctx, id)
}

// LinkChild consumes a student code on behalf of a parent: the student's
// guardian name is set to the parent's username and the student id is added
// to the parent's children list. Codes stay usable by other parents, so both
// parents of a child can link with the same code.
func (s *AccountService) LinkChild(ctx context.Context, parentID uuid.UUID, code string) (*entity.Account, error) {
	parent, err := s.parents.FindByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, ErrAccountNotFound
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	student, err := s.students.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, ErrCodeNotFound
	}

	if err := s.students.UpdateGuardianName(ctx, student.ID, parent.Username); err != nil {
		return nil, err
	}
	student.GuardianName = parent.Username

	childID := student.ID.String()
	ids := parent.ChildIDs()
	linked := false
	for _, id := range ids {
		if id == childID {
			linked = true
			break
		}
	}
	if !linked {
		ids = append(ids, childID)
		if err := parent.SetChildIDs(ids); err != nil {
			return nil, err
		}
		if err := s.parents.UpdateChildren(ctx, parent.ID, parent.Children); err != nil {
			return nil, err
		}
	}

	account := parent.ToAccount()
	_ = s.logEvent(ctx, account, entity.ChildLinked, map[string]any{"student_id": childID})
	return student.ToAccount(), nil
}

// GetChildren resolves a parent's linked student ids to live accounts.
// Deleted students are skipped.
func (s *AccountService) GetChildren(ctx context.Context, parentID uuid.UUID) ([]*entity.Account, error) {
	parent, err := s.parents.FindByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, ErrAccountNotFound
	}

	children := make([]*entity.Account, 0)
	for _, raw := range parent.ChildIDs() {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		student, err := s.students.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if student == nil {
			continue
		}
		children = append(children, student.ToAccount())
	}
	return children, nil
}

func (s *AccountService) accountExists(ctx context.Context, email, username string) (bool, error) {
	taken, err := s.students.ExistsByEmailOrUsername(ctx, email, username)
	if err != nil || taken {
		return taken, err
	}
	return s.parents.ExistsByEmailOrUsername(ctx, email, username)
}

func (s *AccountService) findAccountByEmail(ctx context.Context, email string) (*entity.Account, error) {
	student, err := s.students.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if student != nil {
		return student.ToAccount(), nil
	}
	parent, err := s.parents.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if parent != nil {
		return parent.ToAccount(), nil
	}
	return nil, nil
}

func (s *AccountService) findAccountByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student != nil {
		return student.ToAccount(), nil
	}
	parent, err := s.parents.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if parent != nil {
		return parent.ToAccount(), nil
	}
	return nil, nil
}

func (s *AccountService) sendEmailVerification(ctx context.Context, account *entity.Account) error {
	if s.emailSender == nil {
		return nil
	}
	token, err := utils.GenerateRandomToken(32)
	if err != nil {
		return err
	}
	now := s.now()
	pending := PendingVerification{
		Email:     account.Email,
		AccountID: account.ID.String(),
		Username:  account.Username,
		Role:      account.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.verificationTokenTTL()),
	}
	if err := s.verifications.Set(ctx, token, pending); err != nil {
		return err
	}
	return s.emailSender.SendVerificationEmail(ctx, account.Email, account.Username, token, account.Role)
}

func (s *AccountService) markVerified(ctx context.Context, account *entity.Account) error {
	switch account.Role {
	case entity.RoleStudent:
		return s.students.VerifyEmail(ctx, account.ID)
	case entity.RoleParent:
		return s.parents.VerifyEmail(ctx, account.ID)
	}
	return ErrInvalidRole
}

func (s *AccountService) logEvent(ctx context.Context, account *entity.Account, action entity.AuthAction, metadata map[string]any) error {
	if s.events == nil {
		return nil
	}
	event := &entity.AuthEvent{Action: action}
	if account != nil {
		id := account.ID
		role := account.Role
		event.AccountID = &id
		event.Role = &role
	}
	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		event.Metadata = datatypes.JSON(raw)
	}
	return s.events.Log(ctx, event)
}

func (s *AccountService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}

func (s *AccountService) verificationTokenTTL() time.Duration {
	if s.config.VerificationTokenTTL > 0 {
		return s.config.VerificationTokenTTL
	}
	return 24 * time.Hour
}

func wrongAccountType(stored entity.Role) error {
	if stored == entity.RoleParent {
		return fmt.Errorf(`%w: this email is registered as a parent account. Please use the "I am a parent" option to log in`, ErrWrongAccountType)
	}
	return fmt.Errorf(`%w: this email is registered as a student account. Please use the "I am a student" option to log in`, ErrWrongAccountType)
}

func translateCreateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateAccount
	}
	return err
}

func translateUpdateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateAccount
	}
	return fmt.Errorf("%w: %v", ErrUpdateFailed, err)
}
