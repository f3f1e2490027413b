package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile defaults applied at registration when the client sends nothing.
const (
	DefaultPhoto = "https://i.ibb.co/4pDNDk1/avatar.png"
	DefaultPhone = "+234"
	DefaultBio   = "bio"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	Password string `bson:"password" json:"-"` // Don't return password in JSON

	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
	Photo string `bson:"photo,omitempty" json:"photo,omitempty"`
	Bio   string `bson:"bio,omitempty" json:"bio,omitempty"`
}
