package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stockpile-app/stockpile-backend/internal/database"
	"github.com/stockpile-app/stockpile-backend/internal/models"
)

const tokensCollection = "tokens"

// DeleteTokensForUser removes any outstanding reset tokens so at most
// one token is live per account.
func DeleteTokensForUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := database.DB.Collection(tokensCollection).
		DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

// CreateToken stores a hashed reset token.
func CreateToken(ctx context.Context, token *models.Token) error {
	res, err := database.DB.Collection(tokensCollection).InsertOne(ctx, token)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		token.ID = id
	}
	return nil
}

// FindValidToken looks up a reset token by its hash, skipping expired
// ones. Returns mongo.ErrNoDocuments when there is no live match.
func FindValidToken(ctx context.Context, tokenHash string) (*models.Token, error) {
	var token models.Token
	err := database.DB.Collection(tokensCollection).
		FindOne(ctx, bson.M{
			"token":      tokenHash,
			"expires_at": bson.M{"$gt": time.Now().UTC()},
		}).
		Decode(&token)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// DeleteToken removes a consumed reset token so it cannot be replayed.
func DeleteToken(ctx context.Context, id primitive.ObjectID) error {
	_, err := database.DB.Collection(tokensCollection).DeleteOne(ctx, bson.M{"_id": id})
	return err
}
