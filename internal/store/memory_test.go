package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type memDoc struct {
	ID      string   `bson:"_id"`
	Name    string   `bson:"name"`
	Count   int64    `bson:"count"`
	Members []string `bson:"members"`
}

func TestMemoryInsertAndFindByID(t *testing.T) {
	ctx := context.Background()
	col := NewMemory().Collection("things")

	require.NoError(t, col.InsertOne(ctx, &memDoc{ID: "a", Name: "first", Members: []string{}}))

	var got memDoc
	require.NoError(t, col.FindByID(ctx, "a", &got))
	assert.Equal(t, "first", got.Name)

	err := col.FindByID(ctx, "missing", &got)
	assert.ErrorIs(t, err, ErrNotFound)

	err = col.InsertOne(ctx, &memDoc{ID: "a"})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestMemoryAddToSetAndPull(t *testing.T) {
	ctx := context.Background()
	col := NewMemory().Collection("things")
	require.NoError(t, col.InsertOne(ctx, &memDoc{ID: "a", Members: []string{}}))

	add := bson.M{
		"$addToSet": bson.M{"members": "u1"},
		"$inc":      bson.M{"count": 1},
	}
	require.NoError(t, col.UpdateByID(ctx, "a", add))
	// adding the same member again must not grow the set
	require.NoError(t, col.UpdateByID(ctx, "a", bson.M{"$addToSet": bson.M{"members": "u1"}}))

	var got memDoc
	require.NoError(t, col.FindByID(ctx, "a", &got))
	assert.Equal(t, []string{"u1"}, got.Members)
	assert.Equal(t, int64(1), got.Count)

	require.NoError(t, col.UpdateByID(ctx, "a", bson.M{
		"$pull": bson.M{"members": "u1"},
		"$inc":  bson.M{"count": -1},
	}))
	require.NoError(t, col.FindByID(ctx, "a", &got))
	assert.Empty(t, got.Members)
	assert.Equal(t, int64(0), got.Count)
}

func TestMemoryMembershipFilter(t *testing.T) {
	ctx := context.Background()
	col := NewMemory().Collection("things")
	require.NoError(t, col.InsertOne(ctx, &memDoc{ID: "a", Members: []string{"u1"}}))

	// $ne against an array means "does not contain"
	matched, err := col.UpdateOne(ctx,
		bson.M{"_id": "a", "members": bson.M{"$ne": "u1"}},
		bson.M{"$inc": bson.M{"count": 1}})
	require.NoError(t, err)
	assert.Zero(t, matched)

	// plain equality against an array means "contains"
	matched, err = col.UpdateOne(ctx,
		bson.M{"_id": "a", "members": "u1"},
		bson.M{"$inc": bson.M{"count": 1}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)
}

func TestMemoryUpsertSetOnInsert(t *testing.T) {
	ctx := context.Background()
	col := NewMemory().Collection("things")

	update := bson.M{
		"$set":         bson.M{"name": "fresh"},
		"$setOnInsert": bson.M{"count": 7},
	}
	require.NoError(t, col.UpsertByID(ctx, "a", update))

	var got memDoc
	require.NoError(t, col.FindByID(ctx, "a", &got))
	assert.Equal(t, int64(7), got.Count)

	// on an existing document $setOnInsert is skipped
	update["$setOnInsert"] = bson.M{"count": 99}
	require.NoError(t, col.UpsertByID(ctx, "a", update))
	require.NoError(t, col.FindByID(ctx, "a", &got))
	assert.Equal(t, int64(7), got.Count)
}

func TestMemoryFindConcurrentWithUpdates(t *testing.T) {
	ctx := context.Background()
	col := NewMemory().Collection("things")
	require.NoError(t, col.InsertOne(ctx, &memDoc{ID: "a", Members: []string{}}))
	require.NoError(t, col.InsertOne(ctx, &memDoc{ID: "b", Members: []string{}}))

	const rounds = 200
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_, err := col.UpdateOne(ctx, bson.M{"_id": "a"}, bson.M{
				"$inc":      bson.M{"count": 1},
				"$addToSet": bson.M{"members": "u1"},
			})
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			var docs []memDoc
			assert.NoError(t, col.Find(ctx, bson.M{}, bson.D{{Key: "count", Value: -1}}, &docs))
			assert.Len(t, docs, 2)
		}
	}()
	wg.Wait()

	var got memDoc
	require.NoError(t, col.FindByID(ctx, "a", &got))
	assert.Equal(t, int64(rounds), got.Count)
}

func TestMemoryFindSortAndDeleteMany(t *testing.T) {
	ctx := context.Background()
	col := NewMemory().Collection("things")
	require.NoError(t, col.InsertOne(ctx, &memDoc{ID: "a", Name: "alpha", Count: 2}))
	require.NoError(t, col.InsertOne(ctx, &memDoc{ID: "b", Name: "beta", Count: 1}))
	require.NoError(t, col.InsertOne(ctx, &memDoc{ID: "c", Name: "gamma", Count: 3}))

	var docs []memDoc
	require.NoError(t, col.Find(ctx, bson.M{}, bson.D{{Key: "count", Value: -1}}, &docs))
	require.Len(t, docs, 3)
	assert.Equal(t, "c", docs[0].ID)
	assert.Equal(t, "b", docs[2].ID)

	n, err := col.DeleteMany(ctx, bson.M{"name": "beta"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// deleting with a filter that matches nothing is a no-op, not an error
	n, err = col.DeleteMany(ctx, bson.M{"name": "beta"})
	require.NoError(t, err)
	assert.Zero(t, n)

	total, err := col.Count(ctx, bson.M{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
