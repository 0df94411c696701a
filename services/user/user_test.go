package user

import (
	"context"
	"testing"

	"hairbook/database/docstore"
	revocationRepo "hairbook/database/repository/revocation"
	userRepo "hairbook/database/repository/user"
	"hairbook/models"
	"hairbook/services/auth"
	"hairbook/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*DefaultUserService, *auth.Authority) {
	t.Helper()
	store := docstore.NewMemoryStore()
	authority, err := auth.NewAuthority("secret", revocationRepo.NewRevocationRepo(store), nil)
	require.NoError(t, err)
	return NewUserService(userRepo.NewUserRepo(store), authority), authority
}

func signUpRequest(email string) models.SignUpRequest {
	return models.SignUpRequest{
		Email:     email,
		Password:  "hunter22",
		Role:      "customer",
		FirstName: "Ann",
		LastName:  "Lee",
	}
}

func TestSignUpAndLogin(t *testing.T) {
	t.Parallel()
	svc, authority := newTestService(t)
	ctx := context.Background()

	created, err := svc.SignUp(ctx, signUpRequest("Ann@Example.com"))
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", created.Email)
	assert.Equal(t, models.RoleCustomer, created.Role)
	assert.NotEmpty(t, created.AccessToken)

	_, err = svc.SignUp(ctx, signUpRequest("ann@example.com"))
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, 400, utils.KindOf(err).HTTPStatus())

	_, err = svc.Login(ctx, "ann@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	logged, err := svc.Login(ctx, "ANN@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, created.UserID, logged.UserID)
	assert.Equal(t, "Ann", logged.Details.FirstName)

	claims, err := authority.Verify(ctx, logged.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", claims.Email)

	require.NoError(t, svc.SignOut(ctx, logged.AccessToken))
	_, err = authority.Verify(ctx, logged.AccessToken)
	assert.ErrorIs(t, err, auth.ErrRevoked)

	details, err := svc.Details(ctx, models.Identity{UserID: created.UserID})
	require.NoError(t, err)
	assert.Equal(t, "Lee", details.Details.LastName)
	assert.Empty(t, details.AccessToken)
}

func TestSignUp_Validation(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := map[string]func(*models.SignUpRequest){
		"bad email":      func(r *models.SignUpRequest) { r.Email = "not-an-email" },
		"short password": func(r *models.SignUpRequest) { r.Password = "123" },
		"unknown role":   func(r *models.SignUpRequest) { r.Role = "Admin" },
		"missing name":   func(r *models.SignUpRequest) { r.FirstName = " " },
	}
	for name, mutate := range cases {
		req := signUpRequest("x@example.com")
		mutate(&req)
		_, err := svc.SignUp(ctx, req)
		assert.True(t, utils.IsKind(err, utils.KindValidation), name)
	}
}
