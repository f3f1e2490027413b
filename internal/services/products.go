package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stockpile-app/stockpile-backend/internal/database"
	"github.com/stockpile-app/stockpile-backend/internal/models"
)

const productsCollection = "products"

// CreateProduct inserts the record and fills in its generated id.
func CreateProduct(ctx context.Context, product *models.Product) error {
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	res, err := database.DB.Collection(productsCollection).InsertOne(ctx, product)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = id
	}
	return nil
}

// FindProductsByOwner returns the owner's records, newest first. An
// owner with no products gets an empty (non-nil) slice.
func FindProductsByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := database.DB.Collection(productsCollection).
		Find(ctx, bson.M{"user": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FindProductByID returns mongo.ErrNoDocuments when no record exists.
func FindProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := database.DB.Collection(productsCollection).
		FindOne(ctx, bson.M{"_id": id}).
		Decode(&product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct applies the given field set and returns the updated
// record.
func UpdateProduct(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Product, error) {
	fields["updated_at"] = time.Now().UTC()

	var updated models.Product
	err := database.DB.Collection(productsCollection).
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

// DeleteProduct removes the record.
func DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	_, err := database.DB.Collection(productsCollection).DeleteOne(ctx, bson.M{"_id": id})
	return err
}
