package cron

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"hairbook/utils"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecomputer struct {
	calls []string
	err   error
}

func (f *fakeRecomputer) Recompute(_ context.Context, shopID string) (float64, error) {
	f.calls = append(f.calls, shopID)
	return 4.5, f.err
}

func TestNewRecomputeTask(t *testing.T) {
	task, err := NewRecomputeTask("shop-1")
	require.NoError(t, err)
	assert.Equal(t, TypeRatingRecompute, task.Type())

	var p RecomputePayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, "shop-1", p.ShopID)
}

func TestHandleRatingTask(t *testing.T) {
	ctx := context.Background()

	t.Run("recomputes the shop", func(t *testing.T) {
		rec := &fakeRecomputer{}
		task, err := NewRecomputeTask("shop-1")
		require.NoError(t, err)

		require.NoError(t, handleRatingTask(rec)(ctx, task))
		assert.Equal(t, []string{"shop-1"}, rec.calls)
	})

	t.Run("bad payload is not retried", func(t *testing.T) {
		rec := &fakeRecomputer{}
		err := handleRatingTask(rec)(ctx, asynq.NewTask(TypeRatingRecompute, []byte("{")))
		assert.ErrorIs(t, err, asynq.SkipRetry)
		assert.Empty(t, rec.calls)
	})

	t.Run("missing shop is dropped", func(t *testing.T) {
		rec := &fakeRecomputer{err: utils.NewError(utils.KindNotFound, "Shop not found")}
		task, _ := NewRecomputeTask("gone")
		assert.NoError(t, handleRatingTask(rec)(ctx, task))
	})

	t.Run("store failure is retried", func(t *testing.T) {
		rec := &fakeRecomputer{err: utils.Internal("failed to store rating", errors.New("boom"))}
		task, _ := NewRecomputeTask("shop-1")
		err := handleRatingTask(rec)(ctx, task)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, asynq.SkipRetry)
	})
}
