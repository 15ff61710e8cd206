// Package models defines the records persisted by the server: registered
// users and chat messages.
package models

import "time"

// User is a registered account. PasswordHash holds a bcrypt hash, never the
// raw password.
type User struct {
	ID           string    `db:"id" bson:"_id"`
	UserName     string    `db:"username" bson:"username"`
	PasswordHash string    `db:"password_hash" bson:"password"`
	CreatedAt    time.Time `db:"created_at" bson:"createdAt"`
}
