package database

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"testing"
	"time"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(db.Close)
	return db
}

func TestLogEntries(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	ts := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, lvl := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		err := db.SaveLogEntry(ctx, LogEntryRow{
			Timestamp: ts.Add(time.Duration(i) * time.Second),
			Level:     int(lvl),
			Message:   fmt.Sprintf("message %d", i),
			Attrs:     `[{"module":"test"}]`,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	entries, err := db.GetLogEntries(ctx, slog.LevelInfo, 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Message != "message 3" || entries[0].LevelName() != "ERROR" {
		t.Errorf("expected newest first, got %+v", entries[0])
	}
	if !entries[2].Timestamp.Equal(ts.Add(time.Second)) {
		t.Errorf("unexpected timestamp %v", entries[2].Timestamp)
	}

	page2, err := db.GetLogEntries(ctx, slog.LevelDebug, 2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page2) != 1 || page2[0].Message != "message 0" {
		t.Errorf("unexpected second page %+v", page2)
	}
}

func TestPurgeLog(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := db.SaveLogEntry(ctx, LogEntryRow{Timestamp: time.Now(), Level: 0, Message: fmt.Sprint(i)}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	n, err := db.PurgeLog(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 purged rows, got %d", n)
	}

	entries, err := db.GetLogEntries(ctx, slog.LevelDebug, 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 || entries[0].Message != "4" || entries[1].Message != "3" {
		t.Errorf("unexpected remaining entries %+v", entries)
	}
}

func TestMigrateTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	for i := 0; i < 2; i++ {
		db, err := New(context.Background(), path)
		if err != nil {
			t.Fatalf("open %d failed: %v", i, err)
		}
		db.Close()
	}
}
