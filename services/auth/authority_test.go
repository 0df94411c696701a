package auth

import (
	"context"
	"testing"
	"time"

	"hairbook/database/docstore"
	revocationRepo "hairbook/database/repository/revocation"
	"hairbook/models"
	"hairbook/utils"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthority(t *testing.T, cache *redis.Client) (*Authority, *docstore.MemoryStore) {
	t.Helper()
	store := docstore.NewMemoryStore()
	authority, err := NewAuthority("test-secret", revocationRepo.NewRevocationRepo(store), cache)
	require.NoError(t, err)
	return authority, store
}

func TestNewAuthority_RequiresSecret(t *testing.T) {
	t.Parallel()
	_, err := NewAuthority("", revocationRepo.NewRevocationRepo(docstore.NewMemoryStore()), nil)
	assert.Error(t, err)
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()
	authority, _ := newTestAuthority(t, nil)

	token, err := authority.Issue("ann@example.com", models.RoleCustomer)
	require.NoError(t, err)

	claims, err := authority.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, &Claims{Email: "ann@example.com", Role: models.RoleCustomer}, claims)
}

func TestVerify_RejectsBadTokens(t *testing.T) {
	t.Parallel()
	authority, _ := newTestAuthority(t, nil)
	ctx := context.Background()

	other, err := NewAuthority("other-secret", revocationRepo.NewRevocationRepo(docstore.NewMemoryStore()), nil)
	require.NoError(t, err)
	foreign, err := other.Issue("ann@example.com", models.RoleOwner)
	require.NoError(t, err)

	unknownRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "ann@example.com",
		"role":  "Admin",
		"iat":   time.Now().Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	noEmail, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "Owner",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":      "not-a-jwt",
		"wrong secret": foreign,
		"unknown role": unknownRole,
		"no email":     noEmail,
	} {
		_, err := authority.Verify(ctx, token)
		assert.True(t, utils.IsKind(err, utils.KindInvalidToken), name)
	}
}

func TestRevoke_IsIdempotent(t *testing.T) {
	t.Parallel()
	authority, store := newTestAuthority(t, nil)
	ctx := context.Background()

	token, err := authority.Issue("bob@example.com", models.RoleOwner)
	require.NoError(t, err)

	require.NoError(t, authority.Revoke(ctx, token))
	require.NoError(t, authority.Revoke(ctx, token))
	assert.Equal(t, 1, store.Count(revocationRepo.RevokedTokensCollection))

	_, err = authority.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrRevoked)
	assert.Equal(t, 401, utils.KindOf(err).HTTPStatus())
}

func TestVerify_FallsBackWhenCacheIsDown(t *testing.T) {
	t.Parallel()
	cache := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer cache.Close()
	authority, _ := newTestAuthority(t, cache)
	ctx := context.Background()

	token, err := authority.Issue("cy@example.com", models.RoleCustomer)
	require.NoError(t, err)

	_, err = authority.Verify(ctx, token)
	require.NoError(t, err)

	require.NoError(t, authority.Revoke(ctx, token))
	_, err = authority.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrRevoked)
}

func TestBearerToken(t *testing.T) {
	t.Parallel()
	token, err := BearerToken("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	for _, header := range []string{"", "abc.def", "Basic abc", "Bearer ", "Bearer    "} {
		_, err := BearerToken(header)
		assert.ErrorIs(t, err, ErrMalformed, header)
	}
}

func TestIssue_TokensAreDistinct(t *testing.T) {
	t.Parallel()
	authority, _ := newTestAuthority(t, nil)
	ctx := context.Background()

	first, err := authority.Issue("dee@example.com", models.RoleCustomer)
	require.NoError(t, err)
	second, err := authority.Issue("dee@example.com", models.RoleCustomer)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	require.NoError(t, authority.Revoke(ctx, first))
	_, err = authority.Verify(ctx, second)
	assert.NoError(t, err)
}
