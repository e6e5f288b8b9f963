package service

import (
	"context"
	"time"

	"learnbrightly/internal/entity"

	"golang.org/x/crypto/bcrypt"
)

type AuthConfig struct {
	TokenTTL             time.Duration
	VerificationTokenTTL time.Duration
}

type EmailSender interface {
	SendVerificationEmail(ctx context.Context, email, username, token string, role entity.Role) error
	SendWelcomeEmail(ctx context.Context, email, username string, role entity.Role) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

type TokenIssuer interface {
	IssueToken(account *entity.Account) (string, time.Duration, error)
	ParseToken(token string) (*TokenClaims, error)
}

// TokenClaims is the identity payload a signed token carries. Claims are
// never trusted alone for authorization; the live record is re-read on every
// verification.
type TokenClaims struct {
	ID    string
	Email string
	Role  entity.Role
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

type BcryptPasswordHasher struct {
	Cost int
}

func (h BcryptPasswordHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (h BcryptPasswordHasher) Verify(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
