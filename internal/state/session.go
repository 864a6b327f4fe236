package state

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ShayCichocki/atlas/pkg/models"
)

// SessionStatus represents the status of a conversation session.
type SessionStatus string

const (
	SessionActive   SessionStatus = "active"
	SessionArchived SessionStatus = "archived"
)

// Session represents one student conversation with ATLAS.
type Session struct {
	ID        string        `json:"id"`
	StudentID string        `json:"student_id"`
	StartedAt time.Time     `json:"started_at"`
	Status    SessionStatus `json:"status"`
}

// CreateSession creates a new session row.
func (db *DB) CreateSession(s *Session) error {
	_, err := db.Exec(`
		INSERT INTO sessions (id, student_id, started_at, status)
		VALUES (?, ?, ?, ?)
	`, s.ID, s.StudentID, formatTime(s.StartedAt), string(s.Status))
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID. Returns nil if not found.
func (db *DB) GetSession(id string) (*Session, error) {
	row := db.QueryRow(`
		SELECT id, student_id, started_at, status
		FROM sessions WHERE id = ?
	`, id)

	var s Session
	var startedAt string
	err := row.Scan(&s.ID, &s.StudentID, &startedAt, &s.Status)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	s.StartedAt, _ = parseTime(startedAt)
	return &s, nil
}

// ListSessions returns all sessions for a student, newest first.
func (db *DB) ListSessions(studentID string) ([]*Session, error) {
	rows, err := db.Query(`
		SELECT id, student_id, started_at, status
		FROM sessions WHERE student_id = ?
		ORDER BY started_at DESC
	`, studentID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		var s Session
		var startedAt string
		if err := rows.Scan(&s.ID, &s.StudentID, &startedAt, &s.Status); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		s.StartedAt, _ = parseTime(startedAt)
		sessions = append(sessions, &s)
	}
	return sessions, rows.Err()
}

// ArchiveSession marks a session archived.
func (db *DB) ArchiveSession(id string) error {
	_, err := db.Exec(`UPDATE sessions SET status = ? WHERE id = ?`, string(SessionArchived), id)
	if err != nil {
		return fmt.Errorf("archive session: %w", err)
	}
	return nil
}

// AppendMessage persists a conversation turn for a session.
func (db *DB) AppendMessage(sessionID string, m models.Message) error {
	_, err := db.Exec(`
		INSERT INTO messages (session_id, role, content, created_at)
		VALUES (?, ?, ?, ?)
	`, sessionID, string(m.Role), m.Content, formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// SessionMessages returns a session's conversation in chronological
// order.
func (db *DB) SessionMessages(sessionID string) ([]models.Message, error) {
	rows, err := db.Query(`
		SELECT role, content FROM messages
		WHERE session_id = ?
		ORDER BY id ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var role, content string
		if err := rows.Scan(&role, &content); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, models.Message{Role: models.MessageRole(role), Content: content})
	}
	return messages, rows.Err()
}
