package messages

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/supportchat/internal/dbx"
	"github.com/dmitrijs2005/supportchat/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, msg *models.ChatMessage) error {
	query :=
		`INSERT INTO chat_messages (id, user_id, sender, text, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query, msg.ID, msg.UserID, string(msg.Sender), msg.Text, msg.Timestamp)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.ChatMessage, error) {
	query :=
		`SELECT id, user_id, sender, text, created_at FROM chat_messages
		 WHERE ($1 = '' OR user_id = $1)
		 ORDER BY created_at, seq
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.ChatMessage, 0)
	for rows.Next() {
		var (
			m      models.ChatMessage
			sender string
		)
		if err := rows.Scan(&m.ID, &m.UserID, &sender, &m.Text, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		m.Sender = models.Sender(sender)
		result = append(result, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
