package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stockpile-app/stockpile-backend/internal/database"
	"github.com/stockpile-app/stockpile-backend/internal/models"
)

const usersCollection = "users"

// EnsureIndexes configures the indexes the services rely on. Called on
// startup from main after Mongo has connected. Both creations are
// attempted even when one fails; the result joins every failure.
func EnsureIndexes(ctx context.Context) error {
	var errs []error

	users := database.DB.Collection(usersCollection)
	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("idx_email_unique").SetUnique(true),
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("users email index: %w", err))
	}

	// Expired reset tokens are reaped by Mongo itself.
	tokens := database.DB.Collection(tokensCollection)
	_, err = tokens.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetName("idx_token_expiry").SetExpireAfterSeconds(0),
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("tokens expiry index: %w", err))
	}

	return errors.Join(errs...)
}

// FindUserByEmail returns mongo.ErrNoDocuments when no account exists.
func FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := database.DB.Collection(usersCollection).
		FindOne(ctx, bson.M{"email": email}).
		Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByID returns mongo.ErrNoDocuments when no account exists.
func FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := database.DB.Collection(usersCollection).
		FindOne(ctx, bson.M{"_id": id}).
		Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts the account and fills in its generated id.
func CreateUser(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := database.DB.Collection(usersCollection).InsertOne(ctx, user)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

// UpdateUserProfile applies the given field set and returns the updated
// account.
func UpdateUserProfile(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error) {
	fields["updated_at"] = time.Now().UTC()

	var updated models.User
	err := database.DB.Collection(usersCollection).
		FindOneAndUpdate(ctx,
			bson.M{"_id": id},
			bson.M{"$set": fields},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).
		Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateUserPassword replaces the stored password hash.
func UpdateUserPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	_, err := database.DB.Collection(usersCollection).UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"password":   passwordHash,
			"updated_at": time.Now().UTC(),
		},
	})
	return err
}
