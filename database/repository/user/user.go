package userRepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hairbook/database/docstore"
	"hairbook/models"
)

// StoreUserRepo implements UserRepository over a Document Store.
type StoreUserRepo struct {
	store docstore.Store
}

func NewUserRepo(store docstore.Store) UserRepository {
	return &StoreUserRepo{store: store}
}

// NormalizeEmail is the form emails are stored and claimed in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func detailsCollection(role models.Role) string {
	if role == models.RoleOwner {
		return OwnerDetailsCollection
	}
	return CustomerDetailsCollection
}

// userDocument is the stored form of a user. models.User hides the hash from JSON responses,
// which would drop it on JSON-encoding backends.
type userDocument struct {
	Email        string      `json:"email" bson:"email" firestore:"email"`
	PasswordHash string      `json:"passwordHash" bson:"passwordHash" firestore:"passwordHash"`
	Role         models.Role `json:"role" bson:"role" firestore:"role"`
	CreatedAt    time.Time   `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
}

func toDocument(user *models.User) userDocument {
	return userDocument{
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		CreatedAt:    user.CreatedAt,
	}
}

func decodeUser(snap docstore.Snapshot) (*models.User, error) {
	var doc userDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", snap.ID(), err)
	}
	return &models.User{
		ID:           snap.ID(),
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		Role:         doc.Role,
		CreatedAt:    doc.CreatedAt,
	}, nil
}

func (r *StoreUserRepo) Create(ctx context.Context, user *models.User, details models.UserDetails) error {
	user.Email = NormalizeEmail(user.Email)
	err := r.store.Batch(ctx, []docstore.Write{
		docstore.CreateOp(EmailClaimsCollection, user.Email, models.EmailClaim{UserID: user.ID}),
		docstore.CreateOp(UsersCollection, user.ID, toDocument(user)),
		docstore.SetOp(detailsCollection(user.Role), user.ID, details),
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *StoreUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	snap, err := r.store.Get(ctx, UsersCollection, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", id, err)
	}
	return decodeUser(snap)
}

func (r *StoreUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = NormalizeEmail(email)
	snaps, err := r.store.Query(ctx, UsersCollection, docstore.Where("email", email))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user with email %s: %w", email, err)
	}
	if len(snaps) == 0 {
		return nil, fmt.Errorf("user with email %s: %w", email, docstore.ErrNotFound)
	}
	return decodeUser(snaps[0])
}

func (r *StoreUserRepo) GetDetails(ctx context.Context, user *models.User) (*models.UserDetails, error) {
	snap, err := r.store.Get(ctx, detailsCollection(user.Role), user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch details of user %s: %w", user.ID, err)
	}
	var details models.UserDetails
	if err := snap.DataTo(&details); err != nil {
		return nil, fmt.Errorf("failed to decode details of user %s: %w", user.ID, err)
	}
	return &details, nil
}
