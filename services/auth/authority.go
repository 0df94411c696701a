// Package auth issues, verifies and revokes bearer tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	revocationRepo "hairbook/database/repository/revocation"
	"hairbook/models"
	"hairbook/utils"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrMalformed    = utils.NewError(utils.KindMalformed, "Missing or malformed authorization header")
	ErrInvalidToken = utils.NewError(utils.KindInvalidToken, "Invalid token")
	ErrRevoked      = utils.NewError(utils.KindRevoked, "Token has been revoked")
)

// Claims are the verified contents of a token.
type Claims struct {
	Email string
	Role  models.Role
}

// Authority signs tokens with a shared HMAC secret. Tokens carry no expiry;
// they stay valid until revoked.
type Authority struct {
	secret      []byte
	revocations revocationRepo.RevocationRepository
	cache       *redis.Client
	logger      *zap.Logger
	Now         func() time.Time
}

// NewAuthority builds an Authority. cache may be nil, in which case every check goes to the store.
func NewAuthority(secret string, revocations revocationRepo.RevocationRepository, cache *redis.Client) (*Authority, error) {
	if secret == "" {
		return nil, errors.New("JWT secret must not be empty")
	}
	return &Authority{
		secret:      []byte(secret),
		revocations: revocations,
		cache:       cache,
		logger:      utils.GetLogger(),
		Now:         time.Now,
	}, nil
}

// Issue signs a token for the given email and role. A random jti makes every token distinct,
// so revoking one session never affects a later login.
func (a *Authority) Issue(email string, role models.Role) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"role":  string(role),
		"iat":   a.Now().Unix(),
		"jti":   uuid.New().String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", utils.Internal("failed to sign token", err)
	}
	return signed, nil
}

func (a *Authority) parse(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, utils.WrapError(utils.KindInvalidToken, ErrInvalidToken.Message, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	roleName, _ := claims["role"].(string)
	if email == "" {
		return nil, ErrInvalidToken
	}
	role, err := models.ParseRole(roleName)
	if err != nil {
		return nil, utils.WrapError(utils.KindInvalidToken, ErrInvalidToken.Message, err)
	}
	return &Claims{Email: email, Role: role}, nil
}

// Verify checks the signature and the revocation list.
func (a *Authority) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := a.parse(tokenString)
	if err != nil {
		return nil, err
	}
	revoked, err := a.isRevoked(ctx, utils.HashToken(tokenString))
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrRevoked
	}
	return claims, nil
}

func (a *Authority) isRevoked(ctx context.Context, hash string) (bool, error) {
	key := utils.RevokedCachePrefix + hash
	if a.cache != nil {
		n, err := a.cache.Exists(ctx, key).Result()
		if err == nil && n > 0 {
			return true, nil
		}
		if err != nil {
			a.logger.Warn("Revocation cache unavailable, falling back to store", zap.Error(err))
		}
	}

	revoked, err := a.revocations.IsRevoked(ctx, hash)
	if err != nil {
		return false, utils.Internal("failed to check token revocation", err)
	}
	if revoked {
		a.remember(ctx, key)
	}
	return revoked, nil
}

func (a *Authority) remember(ctx context.Context, key string) {
	if a.cache == nil {
		return
	}
	if err := a.cache.Set(ctx, key, 1, 0).Err(); err != nil {
		a.logger.Warn("Failed to cache revoked token", zap.Error(err))
	}
}

// Revoke adds the token to the revocation list. Revoking twice is a no-op.
func (a *Authority) Revoke(ctx context.Context, tokenString string) error {
	hash := utils.HashToken(tokenString)
	if err := a.revocations.Revoke(ctx, hash, tokenString, a.Now()); err != nil {
		return utils.Internal("failed to revoke token", err)
	}
	a.remember(ctx, utils.RevokedCachePrefix+hash)
	return nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", ErrMalformed
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", ErrMalformed
	}
	return token, nil
}
