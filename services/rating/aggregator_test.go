package rating

import (
	"context"
	"errors"
	"testing"

	"hairbook/database/docstore"
	reviewRepo "hairbook/database/repository/review"
	shopRepo "hairbook/database/repository/shop"
	"hairbook/models"
	"hairbook/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingQueue struct {
	shops []string
	err   error
}

func (q *recordingQueue) EnqueueRecompute(_ context.Context, shopID string) error {
	q.shops = append(q.shops, shopID)
	return q.err
}

func setup(t *testing.T, ratings ...int) (*Aggregator, shopRepo.ShopRepository) {
	t.Helper()
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	shops := shopRepo.NewShopRepo(store)
	reviews := reviewRepo.NewReviewRepo(store)
	require.NoError(t, shops.Create(ctx, &models.Shop{ID: "s1", Rating: DefaultRating}))
	for i, r := range ratings {
		require.NoError(t, reviews.Create(ctx, &models.Review{ShopID: "s1", CustomerID: string(rune('a' + i)), Rating: r}))
	}
	return NewAggregator(reviews, shops, nil), shops
}

func TestMean(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 5.0, Mean(nil))
	assert.Equal(t, 4.0, Mean([]int{5, 3, 4}))
	assert.Equal(t, 1.5, Mean([]int{1, 2}))
}

func TestRecompute(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	agg, shops := setup(t, 5, 3, 4)
	value, err := agg.Recompute(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, value)
	shop, err := shops.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, shop.Rating)

	agg, _ = setup(t)
	value, err = agg.Recompute(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 5.0, value)

	_, err = agg.Recompute(ctx, "gone")
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestTrigger_UsesQueue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	agg, shops := setup(t, 1)
	queue := &recordingQueue{}
	agg.Queue = queue

	agg.Trigger(ctx, "s1")
	assert.Equal(t, []string{"s1"}, queue.shops)
	shop, err := shops.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, DefaultRating, shop.Rating)

	queue.err = errors.New("redis down")
	agg.Trigger(ctx, "s1")
	shop, err = shops.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1.0, shop.Rating)
}
