// /internal/storage/messages.go
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Message is one tracked guild message.
type Message struct {
	UserID    string
	GuildID   string
	Content   string
	Timestamp time.Time
}

// MessageStore is the append-only log of tracked messages, backed by sqlite.
type MessageStore struct {
	db *sql.DB
}

// timeLayout is fixed-width so stored timestamps sort lexicographically.
const timeLayout = "2006-01-02 15:04:05.000000000"

const messagesSchema = `
CREATE TABLE IF NOT EXISTS messages (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id   TEXT NOT NULL,
	guild_id  TEXT NOT NULL,
	content   TEXT NOT NULL,
	timestamp TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_user_guild_ts ON messages (user_id, guild_id, timestamp);
`

// OpenMessageStore opens (and if needed creates) the message log at path.
func OpenMessageStore(path string) (*MessageStore, error) {
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open message store: %w", err)
	}

	// A single connection serializes the insert-and-count transactions below.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(messagesSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init message store schema: %w", err)
	}
	return &MessageStore{db: db}, nil
}

func (s *MessageStore) Close() error {
	return s.db.Close()
}

// Insert appends one message and returns the total count for its
// (user, guild) key. Insert and count share a transaction, so two
// concurrent inserts for the same key can never observe the same total.
// A milestone decision made on the returned value fires exactly once.
func (s *MessageStore) Insert(m Message) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("insert message: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO messages (user_id, guild_id, content, timestamp) VALUES (?, ?, ?, ?)",
		m.UserID, m.GuildID, m.Content, m.Timestamp.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("insert message: %w", err)
	}

	var total int64
	err = tx.QueryRow(
		"SELECT COUNT(*) FROM messages WHERE user_id = ? AND guild_id = ?",
		m.UserID, m.GuildID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("insert message: %w", err)
	}
	return total, nil
}

// Count returns the total number of messages stored for the key.
func (s *MessageStore) Count(userID, guildID string) (int64, error) {
	var total int64
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM messages WHERE user_id = ? AND guild_id = ?",
		userID, guildID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return total, nil
}

// FindRecent returns up to limit messages for the key, newest first.
func (s *MessageStore) FindRecent(userID, guildID string, limit int) ([]Message, error) {
	rows, err := s.db.Query(
		`SELECT content, timestamp FROM messages
		 WHERE user_id = ? AND guild_id = ?
		 ORDER BY timestamp DESC, id DESC
		 LIMIT ?`,
		userID, guildID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("find recent messages: %w", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var (
			m  Message
			ts string
		)
		if err := rows.Scan(&m.Content, &ts); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.UserID = userID
		m.GuildID = guildID
		if parsed, err := time.ParseInLocation(timeLayout, ts, time.UTC); err == nil {
			m.Timestamp = parsed
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find recent messages: %w", err)
	}
	return messages, nil
}
