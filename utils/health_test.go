package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestCheckHealth(t *testing.T) {
	ctx := context.Background()

	status := CheckHealth(ctx, pingFunc(func(context.Context) error { return nil }), nil)
	assert.True(t, status.Store)
	assert.Empty(t, status.Redis)
	assert.Equal(t, status, GetHealthStatus())

	status = CheckHealth(ctx, pingFunc(func(context.Context) error { return errors.New("down") }), nil)
	assert.False(t, status.Store)
	assert.False(t, GetHealthStatus().Store)
}
