package repomanager

import (
	"context"

	"github.com/dmitrijs2005/supportchat/internal/server/repositories/messages"
	"github.com/dmitrijs2005/supportchat/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory. Data is lost on
// restart.
type MemoryRepositoryManager struct {
	users    *users.MemoryRepository
	messages *messages.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:    users.NewMemoryRepository(),
		messages: messages.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *MemoryRepositoryManager) Messages() messages.Repository {
	return m.messages
}

func (m *MemoryRepositoryManager) Ping(context.Context) error {
	return nil
}

func (m *MemoryRepositoryManager) Close(context.Context) error {
	return nil
}
