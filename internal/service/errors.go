package service

import "errors"

var (
	ErrInvalidInput       = errors.New("missing required fields")
	ErrInvalidRole        = errors.New("invalid role specified")
	ErrDuplicateAccount   = errors.New("an account with this email or username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("please verify your email before logging in")
	ErrWrongAccountType   = errors.New("wrong account type")
	ErrInvalidToken       = errors.New("invalid verification token")
	ErrTokenExpired       = errors.New("verification token has expired")
	ErrEmailMismatch      = errors.New("email does not match verification token")
	ErrAlreadyVerified    = errors.New("email is already verified")
	ErrAccountNotFound    = errors.New("account not found")
	ErrCodeNotFound       = errors.New("no student found with that code")
	ErrUpdateFailed       = errors.New("failed to update account")
)
