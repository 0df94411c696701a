package user

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"hairbook/database/docstore"
	userRepo "hairbook/database/repository/user"
	"hairbook/models"
	"hairbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var ErrEmailTaken = utils.NewError(utils.KindValidation, "Email already exists")

func validateSignUp(req models.SignUpRequest) (models.Role, error) {
	if _, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil {
		return "", utils.WrapError(utils.KindValidation, "Invalid email address", err)
	}
	if len(req.Password) < minPasswordLength {
		return "", utils.NewError(utils.KindValidation, "Password must be at least 6 characters")
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return "", utils.WrapError(utils.KindValidation, "Role must be Owner or Customer", err)
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return "", utils.NewError(utils.KindValidation, "First and last name are required")
	}
	return role, nil
}

// SignUp creates the account and its profile, then logs the new user in.
func (s *DefaultUserService) SignUp(ctx context.Context, req models.SignUpRequest) (*models.LoginResponse, error) {
	role, err := validateSignUp(req)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.Internal("failed to hash password", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        userRepo.NormalizeEmail(req.Email),
		PasswordHash: string(hashed),
		Role:         role,
		CreatedAt:    time.Now(),
	}
	details := models.UserDetails{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		PhoneNumber: req.PhoneNumber,
	}
	if err := s.Repo.Create(ctx, user, details); err != nil {
		if errors.Is(err, docstore.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, utils.Internal("failed to create user", err)
	}

	token, err := s.Tokens.Issue(user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("User signed up", zap.String("userId", user.ID), zap.String("role", user.Role.String()))
	return &models.LoginResponse{
		UserID:      user.ID,
		Email:       user.Email,
		Role:        user.Role,
		Details:     details,
		AccessToken: token,
	}, nil
}
