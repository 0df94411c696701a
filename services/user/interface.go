package user

import (
	"context"

	userRepo "hairbook/database/repository/user"
	"hairbook/models"
)

// UserService covers account creation, login, sign-out and profile lookups.
type UserService interface {
	SignUp(ctx context.Context, req models.SignUpRequest) (*models.LoginResponse, error)
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	SignOut(ctx context.Context, token string) error
	Details(ctx context.Context, identity models.Identity) (*models.LoginResponse, error)
	// GetUserByEmail resolves the account a verified token refers to.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// TokenIssuer is the part of the token authority the user service needs.
type TokenIssuer interface {
	Issue(email string, role models.Role) (string, error)
	Revoke(ctx context.Context, token string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo   userRepo.UserRepository
	Tokens TokenIssuer
}

func NewUserService(repo userRepo.UserRepository, tokens TokenIssuer) *DefaultUserService {
	return &DefaultUserService{Repo: repo, Tokens: tokens}
}
