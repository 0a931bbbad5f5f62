package engagement

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/store"
)

func seedItem(t *testing.T, st store.Store) string {
	t.Helper()
	item := models.ContentModel{
		Base:        models.NewBase(),
		Kind:        models.KindBlog,
		Title:       "Post A",
		IsPublished: true,
		Engagement: models.Engagement{
			ViewedBy: []string{},
			LikedBy:  []string{},
		},
	}
	require.NoError(t, st.Collection(store.ColContent).InsertOne(context.Background(), &item))
	return item.ID
}

func readItem(t *testing.T, st store.Store, id string) models.ContentModel {
	t.Helper()
	var item models.ContentModel
	require.NoError(t, st.Collection(store.ColContent).FindByID(context.Background(), id, &item))
	return item
}

func TestToggleLikeSymmetry(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := NewService(st)
	id := seedItem(t, st)

	liked, err := svc.ToggleLike(ctx, id, "u1")
	require.NoError(t, err)
	assert.True(t, liked)

	item := readItem(t, st, id)
	assert.Equal(t, int64(1), item.Engagement.LikeCount)
	assert.Equal(t, []string{"u1"}, item.Engagement.LikedBy)

	liked, err = svc.ToggleLike(ctx, id, "u1")
	require.NoError(t, err)
	assert.False(t, liked)

	item = readItem(t, st, id)
	assert.Equal(t, int64(0), item.Engagement.LikeCount)
	assert.Empty(t, item.Engagement.LikedBy)
}

func TestToggleLikeCounterMatchesSet(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := NewService(st)
	id := seedItem(t, st)

	users := []string{"u1", "u2", "u3", "u4"}
	for _, u := range users {
		_, err := svc.ToggleLike(ctx, id, u)
		require.NoError(t, err)
	}
	// u2 and u4 change their mind
	_, err := svc.ToggleLike(ctx, id, "u2")
	require.NoError(t, err)
	_, err = svc.ToggleLike(ctx, id, "u4")
	require.NoError(t, err)

	item := readItem(t, st, id)
	assert.Equal(t, int64(len(item.Engagement.LikedBy)), item.Engagement.LikeCount)
	assert.ElementsMatch(t, []string{"u1", "u3"}, item.Engagement.LikedBy)
}

func TestToggleLikeConcurrentUsers(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := NewService(st)
	id := seedItem(t, st)

	const users = 32
	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := svc.ToggleLike(ctx, id, fmt.Sprintf("user-%d", n))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	item := readItem(t, st, id)
	assert.Equal(t, int64(len(item.Engagement.LikedBy)), item.Engagement.LikeCount)
}

func TestRecordViewIdempotent(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := NewService(st)
	id := seedItem(t, st)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.RecordView(ctx, id, "u1"))
	}
	require.NoError(t, svc.RecordView(ctx, id, "u2"))

	item := readItem(t, st, id)
	assert.Equal(t, int64(2), item.Engagement.ViewCount)
	assert.ElementsMatch(t, []string{"u1", "u2"}, item.Engagement.ViewedBy)
}

func TestEngagementItemNotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory())

	_, err := svc.ToggleLike(ctx, "missing", "u1")
	assert.ErrorIs(t, err, ErrItemNotFound)

	err = svc.RecordView(ctx, "missing", "u1")
	assert.ErrorIs(t, err, ErrItemNotFound)
}
