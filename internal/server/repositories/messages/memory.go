package messages

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/supportchat/internal/server/models"
)

// MemoryRepository keeps the log in process memory in insertion order.
type MemoryRepository struct {
	mu   sync.RWMutex
	msgs []models.ChatMessage
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(_ context.Context, msg *models.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.msgs = append(r.msgs, *msg)
	return nil
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID string) ([]*models.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.ChatMessage, 0)
	for i := range r.msgs {
		if userID != "" && r.msgs[i].UserID != userID {
			continue
		}
		m := r.msgs[i]
		result = append(result, &m)
	}

	// Stable so equal timestamps keep insertion order.
	slices.SortStableFunc(result, func(a, b *models.ChatMessage) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	return result, nil
}
