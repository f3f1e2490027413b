package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FileData is the stored metadata for an uploaded product image.
type FileData struct {
	FileName string `bson:"file_name,omitempty" json:"fileName,omitempty"`
	FilePath string `bson:"file_path,omitempty" json:"filePath,omitempty"`
	FileType string `bson:"file_type,omitempty" json:"fileType,omitempty"`
	FileSize int64  `bson:"file_size,omitempty" json:"fileSize,omitempty"`
}

// Product is an inventory record owned by a single user. Quantity and
// price arrive as multipart form values and are kept as strings, the
// way the frontend sends them.
type Product struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Name        string   `bson:"name" json:"name"`
	SKU         string   `bson:"sku,omitempty" json:"sku,omitempty"`
	Category    string   `bson:"category" json:"category"`
	Quantity    string   `bson:"quantity" json:"quantity"`
	Price       string   `bson:"price" json:"price"`
	Description string   `bson:"description" json:"description"`
	Image       FileData `bson:"image,omitempty" json:"image,omitempty"`
}
