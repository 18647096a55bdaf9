package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bnde/leuk/internal/db"
	"github.com/bnde/leuk/internal/domain"
)

// SQLiteChatMessageRepo implements ChatMessageRepo using a SQLite database.
type SQLiteChatMessageRepo struct {
	db db.DBTX
}

// NewSQLiteChatMessageRepo creates a repo over a *sql.DB or a *sql.Tx.
func NewSQLiteChatMessageRepo(db db.DBTX) *SQLiteChatMessageRepo {
	return &SQLiteChatMessageRepo{db: db}
}

// Append allocates the next sequence number of the session and inserts the
// message. Run it inside a UnitOfWork when several goroutines may append to
// the same session; the (session_id, seq) unique key rejects a lost race.
func (r *SQLiteChatMessageRepo) Append(ctx context.Context, m *domain.ChatMessage) error {
	var seq int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM chat_messages WHERE session_id = ?`, m.SessionID,
	).Scan(&seq)
	if err != nil {
		return fmt.Errorf("allocating message seq: %w", err)
	}

	query := `INSERT INTO chat_messages (id, session_id, seq, role, content, filtered, failed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		m.ID,
		m.SessionID,
		seq,
		string(m.Role),
		m.Content,
		boolToInt(m.Filtered),
		boolToInt(m.Failed),
		formatTime(m.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting chat message: %w", err)
	}
	m.Seq = seq
	return nil
}

func (r *SQLiteChatMessageRepo) ListBySession(ctx context.Context, sessionID string) ([]*domain.ChatMessage, error) {
	query := `SELECT id, session_id, seq, role, content, filtered, failed, created_at
		FROM chat_messages WHERE session_id = ? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing chat messages: %w", err)
	}
	defer rows.Close()
	return r.scanMessages(rows)
}

func (r *SQLiteChatMessageRepo) CountBySession(ctx context.Context, sessionID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chat_messages WHERE session_id = ?`, sessionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting chat messages: %w", err)
	}
	return n, nil
}

func (r *SQLiteChatMessageRepo) DeleteBySession(ctx context.Context, sessionID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM chat_messages WHERE session_id = ?`, sessionID)
	if err != nil {
		return 0, fmt.Errorf("deleting chat messages: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleting chat messages: %w", err)
	}
	return n, nil
}

func (r *SQLiteChatMessageRepo) scanMessages(rows *sql.Rows) ([]*domain.ChatMessage, error) {
	var messages []*domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		var role, createdAtStr string
		var filtered, failed int

		err := rows.Scan(&m.ID, &m.SessionID, &m.Seq, &role, &m.Content, &filtered, &failed, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("scanning chat message row: %w", err)
		}

		m.Role = domain.Role(role)
		m.Filtered = intToBool(filtered)
		m.Failed = intToBool(failed)
		m.CreatedAt, err = parseTime("created_at", createdAtStr)
		if err != nil {
			return nil, err
		}

		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chat messages: %w", err)
	}
	return messages, nil
}
