package models

import "time"

// Sender identifies who authored a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Valid reports whether s is one of the known senders.
func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderBot
}

// ChatMessage is one immutable entry of a conversation. UserID may belong to
// a registered user or to a client-generated guest id.
type ChatMessage struct {
	ID        string    `db:"id" bson:"_id" json:"id"`
	UserID    string    `db:"user_id" bson:"userId" json:"userId"`
	Sender    Sender    `db:"sender" bson:"sender" json:"sender"`
	Text      string    `db:"text" bson:"text" json:"text"`
	Timestamp time.Time `db:"created_at" bson:"timestamp" json:"timestamp"`
}
