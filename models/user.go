package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role of an authenticated caller.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User account. The password hash is never serialized to JSON.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name"          json:"name"`
	Email        string             `bson:"email"         json:"email"`
	PasswordHash string             `bson:"password"      json:"-"`
	Role         Role               `bson:"role"          json:"role"`
	CreatedAt    time.Time          `bson:"createdAt"     json:"createdAt"`
}

// UserRef is the display subset of a user attached to reports.
type UserRef struct {
	ID    primitive.ObjectID `bson:"_id"   json:"id"`
	Name  string             `bson:"name"  json:"name"`
	Email string             `bson:"email" json:"email"`
}
