package chat

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sarahkali/oracle/backend/internal/model/chat"
)

// SQLiteLog persists transcripts in a local SQLite database.
type SQLiteLog struct {
	db *sql.DB
}

// NewSQLiteLog opens (and if needed creates) the transcript database.
func NewSQLiteLog(dbPath string) (*SQLiteLog, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	l := &SQLiteLog{db: db}
	if err := l.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	log.WithField("path", dbPath).Info("transcript database ready")
	return l, nil
}

func (l *SQLiteLog) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS conversations (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		session_id TEXT NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_conversations_session ON conversations(session_id, seq);
	`
	if _, err := l.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Append inserts a message row.
func (l *SQLiteLog) Append(ctx context.Context, message chat.Message) (chat.Message, error) {
	message, err := prepare(message)
	if err != nil {
		return chat.Message{}, err
	}

	query := `INSERT INTO conversations (id, session_id, role, content, created_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := l.db.ExecContext(ctx, query,
		message.ID, message.SessionID, string(message.Role), message.Content, message.CreatedAt.UnixMilli(),
	); err != nil {
		return chat.Message{}, fmt.Errorf("insert message: %w", err)
	}
	return message, nil
}

// History returns the newest limit messages of the session, oldest first.
func (l *SQLiteLog) History(ctx context.Context, sessionID string, limit int) ([]chat.Message, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	if limit <= 0 {
		limit = -1
	}

	query := `
		SELECT id, session_id, role, content, created_at FROM (
			SELECT seq, id, session_id, role, content, created_at
			FROM conversations WHERE session_id = ?
			ORDER BY seq DESC LIMIT ?
		) ORDER BY seq ASC`

	rows, err := l.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var messages []chat.Message
	for rows.Next() {
		var msg chat.Message
		var role string
		var createdAt int64
		if err := rows.Scan(&msg.ID, &msg.SessionID, &role, &msg.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scan message row: %w", err)
		}
		msg.Role = chat.Role(role)
		msg.CreatedAt = time.UnixMilli(createdAt).UTC()
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return messages, nil
}

// Close releases the database handle.
func (l *SQLiteLog) Close() error {
	return l.db.Close()
}
