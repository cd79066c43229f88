package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// User is an admin back-office account. The password field only ever holds a
// bcrypt hash and is never serialized into responses.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string        `bson:"username" json:"username"`
	PasswordHash string        `bson:"password" json:"-"`
	Role         string        `bson:"role" json:"role"`
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
}

func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEditor
}
