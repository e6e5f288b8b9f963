package service

import "learnbrightly/internal/entity"

type SignupInput struct {
	Username     string
	Email        string
	Password     string
	Role         entity.Role
	Age          int
	GuardianName string
}

type UpdateAccountInput struct {
	Username     string
	Email        string
	Age          int
	GuardianName string
}

type AuthResult struct {
	Account *entity.Account
	Token   string
	Message string
}
