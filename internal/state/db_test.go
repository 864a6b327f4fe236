package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ShayCichocki/atlas/pkg/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "atlas.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSessionRoundTrip(t *testing.T) {
	db := openTestDB(t)

	s := &Session{
		ID:        "sess-1",
		StudentID: "student_123",
		StartedAt: time.Now(),
		Status:    SessionActive,
	}
	if err := db.CreateSession(s); err != nil {
		t.Fatalf("create session: %v", err)
	}

	got, err := db.GetSession("sess-1")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got == nil {
		t.Fatal("expected session, got nil")
	}
	if got.StudentID != "student_123" || got.Status != SessionActive {
		t.Errorf("unexpected session: %+v", got)
	}
}

func TestGetSessionMissing(t *testing.T) {
	db := openTestDB(t)

	got, err := db.GetSession("nope")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing session, got %+v", got)
	}
}

func TestSessionMessagesChronological(t *testing.T) {
	db := openTestDB(t)

	s := &Session{ID: "sess-2", StudentID: "student_123", StartedAt: time.Now(), Status: SessionActive}
	if err := db.CreateSession(s); err != nil {
		t.Fatalf("create session: %v", err)
	}

	turns := []models.Message{
		{Role: models.RoleUser, Content: "Help me plan my week"},
		{Role: models.RoleAssistant, Content: "Here is a plan"},
		{Role: models.RoleUser, Content: "Make it shorter"},
	}
	for _, m := range turns {
		if err := db.AppendMessage("sess-2", m); err != nil {
			t.Fatalf("append message: %v", err)
		}
	}

	got, err := db.SessionMessages("sess-2")
	if err != nil {
		t.Fatalf("session messages: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(got))
	}
	for i := range turns {
		if got[i].Role != turns[i].Role || got[i].Content != turns[i].Content {
			t.Errorf("message %d = %+v, want %+v", i, got[i], turns[i])
		}
	}
}

func TestListSessionsNewestFirst(t *testing.T) {
	db := openTestDB(t)

	older := &Session{ID: "old", StudentID: "student_123", StartedAt: time.Now().Add(-time.Hour), Status: SessionActive}
	newer := &Session{ID: "new", StudentID: "student_123", StartedAt: time.Now(), Status: SessionActive}
	for _, s := range []*Session{older, newer} {
		if err := db.CreateSession(s); err != nil {
			t.Fatalf("create session: %v", err)
		}
	}

	sessions, err := db.ListSessions("student_123")
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != "new" {
		t.Errorf("expected newest session first, got %s", sessions[0].ID)
	}
}

func TestArchiveSession(t *testing.T) {
	db := openTestDB(t)

	s := &Session{ID: "sess-3", StudentID: "student_123", StartedAt: time.Now(), Status: SessionActive}
	if err := db.CreateSession(s); err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := db.ArchiveSession("sess-3"); err != nil {
		t.Fatalf("archive session: %v", err)
	}

	got, err := db.GetSession("sess-3")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got.Status != SessionArchived {
		t.Errorf("expected archived status, got %s", got.Status)
	}
}
