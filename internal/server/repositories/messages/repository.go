// Package messages is the append-only chat message log. Messages are never
// updated or deleted; listings are ordered by timestamp ascending.
package messages

import (
	"context"

	"github.com/dmitrijs2005/supportchat/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, msg *models.ChatMessage) error
	// ListByUser returns the messages of userID, oldest first. An empty
	// userID lists every message in the log.
	ListByUser(ctx context.Context, userID string) ([]*models.ChatMessage, error)
}
