package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/thenoetrevino/trtodo/internal/models"
	_ "modernc.org/sqlite"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

var testTime = time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.UTC)

// setupTestStore opens an in-memory store with the full schema
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), MemoryPath)
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// setupTestStoreFile opens a file-backed store for persistence tests
func setupTestStoreFile(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "trtodo.db")
	s, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	return s, path
}

// setupRawConn returns a bare connection with foreign keys on and no schema
func setupRawConn(t *testing.T) *sql.Conn {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	conn, err := db.Conn(context.Background())
	if err != nil {
		t.Fatalf("Failed to acquire connection: %v", err)
	}
	if _, err := conn.ExecContext(context.Background(), "PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
		_ = db.Close()
	})
	return conn
}

func tableExists(t *testing.T, q rowQuerier, name string) bool {
	t.Helper()
	rows, err := q.QueryContext(context.Background(),
		"SELECT name FROM sqlite_master WHERE type IN ('table', 'index') AND name = ?", name)
	if err != nil {
		t.Fatalf("Failed to query sqlite_master: %v", err)
	}
	defer rows.Close()
	return rows.Next()
}

// sampleSnapshot exercises every column, NULL ones included
func sampleSnapshot() *models.Snapshot {
	due := testTime.Add(72 * time.Hour)
	lifespan := 30
	current := 1

	s := models.NewSnapshot()
	s.LastSync = testTime
	s.CurrentCategory = &current
	s.Config = models.Settings{
		DeletedTaskLifespan: &lifespan,
		DefaultCategory:     "Work",
		DefaultPriority:     models.PriorityHigh,
	}
	s.Categories = []models.Category{
		{ID: 1, Name: "Work", Description: "day job", CreatedAt: testTime},
		{ID: 2, Name: "Personal", Order: 1, CreatedAt: testTime},
	}
	s.Tasks = []models.Task{
		{ID: 1, Title: "Write report", Description: "numbers", CategoryID: 1,
			Priority: models.PriorityHigh, DueDate: &due, CreatedAt: testTime, UpdatedAt: testTime},
		{ID: 2, Title: "Review PR", CategoryID: 1, Completed: true, Order: 1,
			Priority: models.PriorityMedium, CreatedAt: testTime, UpdatedAt: testTime.Add(time.Minute)},
		{ID: 3, Title: "Old idea", CategoryID: models.UncategorizedID,
			Priority: models.PriorityLow, CreatedAt: testTime, UpdatedAt: testTime},
	}
	return s
}
