package userRepo

import (
	"context"

	"hairbook/models"
)

const (
	UsersCollection           = "Users"
	EmailClaimsCollection     = "EmailClaims"
	OwnerDetailsCollection    = "OwnerDetails"
	CustomerDetailsCollection = "CustomerDetails"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// Create inserts the user, its email claim and its role details atomically.
	// A taken email wraps docstore.ErrAlreadyExists.
	Create(ctx context.Context, user *models.User, details models.UserDetails) error
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address, case-insensitively.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetDetails retrieves the role-specific profile of a user.
	GetDetails(ctx context.Context, user *models.User) (*models.UserDetails, error)
}
