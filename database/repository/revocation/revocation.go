package revocationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hairbook/database/docstore"
	"hairbook/models"
)

const RevokedTokensCollection = "RevokedTokens"

// RevocationRepository records signed-out tokens, keyed by the token's hash.
type RevocationRepository interface {
	// Revoke is idempotent.
	Revoke(ctx context.Context, tokenHash, token string, at time.Time) error
	IsRevoked(ctx context.Context, tokenHash string) (bool, error)
}

// StoreRevocationRepo implements RevocationRepository over a Document Store.
type StoreRevocationRepo struct {
	store docstore.Store
}

func NewRevocationRepo(store docstore.Store) RevocationRepository {
	return &StoreRevocationRepo{store: store}
}

func (r *StoreRevocationRepo) Revoke(ctx context.Context, tokenHash, token string, at time.Time) error {
	record := models.RevokedToken{Token: token, RevokedAt: at}
	if err := r.store.Set(ctx, RevokedTokensCollection, tokenHash, record); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (r *StoreRevocationRepo) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	_, err := r.store.Get(ctx, RevokedTokensCollection, tokenHash)
	if errors.Is(err, docstore.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check revocation: %w", err)
	}
	return true, nil
}
