package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/stockpile-app/stockpile-backend/internal/database"
)

func TestEnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates both indexes", func(mt *mtest.T) {
		database.DB = mt.Client.Database("stockpile_test")

		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		require.NoError(mt.T, EnsureIndexes(context.Background()))

		for _, name := range []string{"idx_email_unique", "idx_token_expiry"} {
			evt := mt.GetStartedEvent()
			require.NotNil(mt.T, evt)
			assert.Equal(mt.T, "createIndexes", evt.CommandName)
			got, err := evt.Command.LookupErr("indexes", "0", "name")
			require.NoError(mt.T, err)
			assert.Equal(mt.T, name, got.StringValue())
		}
	})

	mt.Run("one failure does not skip the other", func(mt *mtest.T) {
		database.DB = mt.Client.Database("stockpile_test")

		mt.AddMockResponses(
			mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code:    2,
				Message: "bad index spec",
				Name:    "BadValue",
			}),
			mtest.CreateSuccessResponse(),
		)

		err := EnsureIndexes(context.Background())
		require.Error(mt.T, err)
		assert.Contains(mt.T, err.Error(), "users email index")

		// The token TTL index creation must still have been attempted.
		first := mt.GetStartedEvent()
		second := mt.GetStartedEvent()
		require.NotNil(mt.T, first)
		require.NotNil(mt.T, second)
		assert.Equal(mt.T, "createIndexes", second.CommandName)
		got, lookupErr := second.Command.LookupErr("indexes", "0", "name")
		require.NoError(mt.T, lookupErr)
		assert.Equal(mt.T, "idx_token_expiry", got.StringValue())
	})
}
