// Package repomanager opens the configured store and vends the user and
// message repositories bound to it. The backend is chosen by the DSN scheme.
package repomanager

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/supportchat/internal/server/repositories/messages"
	"github.com/dmitrijs2005/supportchat/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Messages() messages.Repository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// New connects to the store named by dsn, verifies the connection and
// prepares the schema (migrations or indexes). Supported schemes:
// postgres, postgresql, mongodb, mongodb+srv and memory.
func New(ctx context.Context, dsn string) (RepositoryManager, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid database dsn: %w", err)
	}

	switch u.Scheme {
	case "postgres", "postgresql":
		m, err := NewPostgresRepositoryManager(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return m, nil
	case "mongodb", "mongodb+srv":
		m, err := NewMongoRepositoryManager(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return m, nil
	case "memory":
		return NewMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unsupported database scheme %q", u.Scheme)
	}
}
