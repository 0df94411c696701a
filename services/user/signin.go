package user

import (
	"context"
	"errors"

	"hairbook/database/docstore"
	"hairbook/models"
	"hairbook/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = utils.NewError(utils.KindUnauthorized, "Invalid email or password")
	ErrUnknownUser        = utils.NewError(utils.KindUnauthorized, "User not found")
)

// Login checks the password and issues a fresh token.
func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	user, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, utils.Internal("failed to load user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	resp, err := s.profile(ctx, user)
	if err != nil {
		return nil, err
	}
	resp.AccessToken = token
	utils.GetLogger().Info("User logged in", zap.String("userId", user.ID))
	return resp, nil
}

// SignOut revokes the token the request was authenticated with.
func (s *DefaultUserService) SignOut(ctx context.Context, token string) error {
	return s.Tokens.Revoke(ctx, token)
}

// Details returns the caller's account and role-specific profile.
func (s *DefaultUserService) Details(ctx context.Context, identity models.Identity) (*models.LoginResponse, error) {
	user, err := s.Repo.GetByID(ctx, identity.UserID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrUnknownUser
	}
	if err != nil {
		return nil, utils.Internal("failed to load user", err)
	}
	return s.profile(ctx, user)
}

func (s *DefaultUserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrUnknownUser
	}
	if err != nil {
		return nil, utils.Internal("failed to load user", err)
	}
	return user, nil
}

func (s *DefaultUserService) profile(ctx context.Context, user *models.User) (*models.LoginResponse, error) {
	resp := &models.LoginResponse{UserID: user.ID, Email: user.Email, Role: user.Role}
	details, err := s.Repo.GetDetails(ctx, user)
	switch {
	case err == nil:
		resp.Details = *details
	case errors.Is(err, docstore.ErrNotFound):
	default:
		return nil, utils.Internal("failed to load user details", err)
	}
	return resp, nil
}
