package service

import (
	"time"

	"learnbrightly/internal/entity"
	"learnbrightly/internal/utils"
)

type JWTTokenIssuer struct {
	Manager *utils.JWTManager
}

func (j JWTTokenIssuer) IssueToken(account *entity.Account) (string, time.Duration, error) {
	if j.Manager == nil {
		return "", 0, ErrInvalidToken
	}
	return j.Manager.IssueToken(account.ID.String(), account.Email, string(account.Role))
}

func (j JWTTokenIssuer) ParseToken(token string) (*TokenClaims, error) {
	if j.Manager == nil {
		return nil, ErrInvalidToken
	}
	claims, err := j.Manager.ParseToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return &TokenClaims{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  entity.Role(claims.Role),
	}, nil
}
