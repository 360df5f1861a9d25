package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	issued := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	mt.Run("get", func(mt *mtest.T) {
		doc := bson.D{
			{Key: "_id", Value: "s1"},
			{Key: "userId", Value: "u1"},
			{Key: "email", Value: "ada@example.com"},
			{Key: "role", Value: "admin"},
			{Key: "issuedAt", Value: issued},
			{Key: "expiresAt", Value: issued.Add(time.Hour)},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".sessions", mtest.FirstBatch, doc))

		s, err := NewMongoStore(mt.DB).Get(context.Background(), "s1")
		require.NoError(mt, err)
		assert.True(mt, s.IsAdmin())
		assert.Equal(mt, issued.Add(time.Hour), s.ExpiresAt)
	})

	mt.Run("get missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".sessions", mtest.FirstBatch))

		_, err := NewMongoStore(mt.DB).Get(context.Background(), "gone")
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}})

		err := NewMongoStore(mt.DB).Delete(context.Background(), "gone")
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}
