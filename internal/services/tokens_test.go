package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/stockpile-app/stockpile-backend/internal/database"
)

func TestFindValidToken(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("match", func(mt *mtest.T) {
		database.DB = mt.Client.Database("stockpile_test")

		tokenID := primitive.NewObjectID()
		userID := primitive.NewObjectID()
		now := time.Now().UTC().Truncate(time.Millisecond)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "stockpile_test.tokens", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: tokenID},
			{Key: "user_id", Value: userID},
			{Key: "token", Value: "digest"},
			{Key: "created_at", Value: now},
			{Key: "expires_at", Value: now.Add(30 * time.Minute)},
		}))

		token, err := FindValidToken(context.Background(), "digest")
		require.NoError(mt.T, err)
		assert.Equal(mt.T, tokenID, token.ID)
		assert.Equal(mt.T, userID, token.UserID)

		// The lookup must exclude expired tokens server-side.
		evt := mt.GetStartedEvent()
		require.NotNil(mt.T, evt)
		assert.Equal(mt.T, "find", evt.CommandName)
		_, err = evt.Command.LookupErr("filter", "expires_at", "$gt")
		assert.NoError(mt.T, err, "find filter must carry expires_at $gt")
	})

	mt.Run("expired or unknown", func(mt *mtest.T) {
		database.DB = mt.Client.Database("stockpile_test")

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "stockpile_test.tokens", mtest.FirstBatch))

		_, err := FindValidToken(context.Background(), "stale-digest")
		assert.ErrorIs(mt.T, err, mongo.ErrNoDocuments)
	})
}

func TestDeleteTokensForUser(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("deletes by owner", func(mt *mtest.T) {
		database.DB = mt.Client.Database("stockpile_test")

		userID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		require.NoError(mt.T, DeleteTokensForUser(context.Background(), userID))

		evt := mt.GetStartedEvent()
		require.NotNil(mt.T, evt)
		assert.Equal(mt.T, "delete", evt.CommandName)
		got, err := evt.Command.LookupErr("deletes", "0", "q", "user_id")
		require.NoError(mt.T, err)
		oid, ok := got.ObjectIDOK()
		require.True(mt.T, ok)
		assert.Equal(mt.T, userID, oid)
	})
}
