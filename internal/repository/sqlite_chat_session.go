package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bnde/leuk/internal/db"
	"github.com/bnde/leuk/internal/domain"
)

// SQLiteChatSessionRepo implements ChatSessionRepo using a SQLite database.
type SQLiteChatSessionRepo struct {
	db db.DBTX
}

// NewSQLiteChatSessionRepo creates a repo over a *sql.DB or a *sql.Tx.
func NewSQLiteChatSessionRepo(db db.DBTX) *SQLiteChatSessionRepo {
	return &SQLiteChatSessionRepo{db: db}
}

func (r *SQLiteChatSessionRepo) Create(ctx context.Context, s *domain.ChatSession) error {
	query := `INSERT INTO chat_sessions (id, created_at) VALUES (?, ?)`
	if _, err := r.db.ExecContext(ctx, query, s.ID, formatTime(s.CreatedAt)); err != nil {
		return fmt.Errorf("inserting chat session: %w", err)
	}
	return nil
}

func (r *SQLiteChatSessionRepo) GetByID(ctx context.Context, id string) (*domain.ChatSession, error) {
	query := `SELECT id, created_at FROM chat_sessions WHERE id = ?`

	var s domain.ChatSession
	var createdAtStr string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &createdAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("chat session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning chat session: %w", err)
	}

	s.CreatedAt, err = parseTime("created_at", createdAtStr)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete removes the session and, through the foreign key cascade, its
// messages.
func (r *SQLiteChatSessionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM chat_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting chat session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting chat session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("chat session: %w", ErrNotFound)
	}
	return nil
}
