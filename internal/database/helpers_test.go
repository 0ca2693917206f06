package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"
)

// ============================================================================
// Transaction Helper Tests
// ============================================================================

func createScratchTable(t *testing.T, conn *sql.Conn) {
	t.Helper()
	if _, err := conn.ExecContext(context.Background(), "CREATE TABLE scratch (name TEXT NOT NULL)"); err != nil {
		t.Fatalf("Failed to create scratch table: %v", err)
	}
}

func countScratch(t *testing.T, conn *sql.Conn) int {
	t.Helper()
	var count int
	if err := conn.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM scratch").Scan(&count); err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return count
}

func TestWithTx_Success_Commit(t *testing.T) {
	conn := setupRawConn(t)
	createScratchTable(t, conn)

	ctx := context.Background()
	err := withTx(ctx, conn, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "INSERT INTO scratch (name) VALUES (?)", "row")
		return err
	})
	if err != nil {
		t.Fatalf("Expected transaction to succeed, got error: %v", err)
	}

	if count := countScratch(t, conn); count != 1 {
		t.Errorf("Expected 1 row, got %d", count)
	}
}

func TestWithTx_Error_Rollback(t *testing.T) {
	conn := setupRawConn(t)
	createScratchTable(t, conn)

	ctx := context.Background()
	expectedErr := errors.New("intentional error")
	err := withTx(ctx, conn, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO scratch (name) VALUES (?)", "row"); err != nil {
			return err
		}
		return expectedErr
	})

	if !errors.Is(err, expectedErr) {
		t.Fatalf("Expected error %v, got %v", expectedErr, err)
	}
	if count := countScratch(t, conn); count != 0 {
		t.Errorf("Expected 0 rows (rollback), got %d", count)
	}
}

func TestWithTx_Error_BeginFails(t *testing.T) {
	conn := setupRawConn(t)
	_ = conn.Close()

	err := withTx(context.Background(), conn, func(tx *sql.Tx) error {
		return nil
	})
	if err == nil {
		t.Fatal("Expected error when beginning transaction on closed connection, got nil")
	}
}

// ============================================================================
// Null Conversion Tests
// ============================================================================

func TestNullInt64ToPtr(t *testing.T) {
	if got := nullInt64ToPtr(sql.NullInt64{Int64: 42, Valid: true}); got == nil || *got != 42 {
		t.Errorf("Expected pointer to 42, got %v", got)
	}
	if got := nullInt64ToPtr(sql.NullInt64{}); got != nil {
		t.Errorf("Expected nil for SQL NULL, got %v", got)
	}
}

func TestNullStringToString(t *testing.T) {
	if got := nullStringToString(sql.NullString{String: "test string", Valid: true}); got != "test string" {
		t.Errorf("Expected 'test string', got '%s'", got)
	}
	if got := nullStringToString(sql.NullString{}); got != "" {
		t.Errorf("Expected empty string for SQL NULL, got '%s'", got)
	}
}

func TestCategoryIDToNull(t *testing.T) {
	if v := categoryIDToNull(0); v.Valid {
		t.Error("Expected category 0 to map to NULL")
	}
	if v := categoryIDToNull(7); !v.Valid || v.Int64 != 7 {
		t.Errorf("Expected 7, got %+v", v)
	}
}

func TestFormatAndParseTime(t *testing.T) {
	local := time.Date(2025, 6, 1, 12, 30, 0, 123456789, time.FixedZone("CEST", 2*3600))

	s := formatTime(local)
	if s != "2025-06-01T10:30:00.123456789Z" {
		t.Errorf("Unexpected encoding %q", s)
	}

	got, err := parseTime(s)
	if err != nil {
		t.Fatalf("parseTime: %v", err)
	}
	if !got.Equal(local) || got.Location() != time.UTC {
		t.Errorf("Expected %v in UTC, got %v", local, got)
	}

	if _, err := parseTime("yesterday"); err == nil {
		t.Error("Expected error for unparsable timestamp")
	}
}
