package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/supportchat/internal/common"
	"github.com/dmitrijs2005/supportchat/internal/server/models"
	"github.com/dmitrijs2005/supportchat/internal/server/repositories/messages"
	"github.com/google/uuid"
)

const msgSaveFieldsRequired = "UserId, sender, and text are required to save a message."

// MessageLog is the append-only record of every chat message. It assigns ids
// and timestamps; the repository only stores them.
type MessageLog struct {
	repo  messages.Repository
	now   func() time.Time
	newID func() string
}

func NewMessageLog(repo messages.Repository) *MessageLog {
	return &MessageLog{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Append stores one message and returns the persisted record.
func (l *MessageLog) Append(ctx context.Context, userID string, sender models.Sender, text string) (*models.ChatMessage, error) {
	if userID == "" || text == "" || sender == "" {
		return nil, common.ValidationError(msgSaveFieldsRequired)
	}
	if !sender.Valid() {
		return nil, common.ValidationError(fmt.Sprintf("Unknown sender %q.", sender))
	}

	msg := &models.ChatMessage{
		ID:        l.newID(),
		UserID:    userID,
		Sender:    sender,
		Text:      text,
		Timestamp: l.now().UTC(),
	}

	if err := l.repo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	return msg, nil
}

// ListByUser returns the messages of userID oldest first. An empty userID
// returns the whole log.
func (l *MessageLog) ListByUser(ctx context.Context, userID string) ([]*models.ChatMessage, error) {
	msgs, err := l.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	return msgs, nil
}
