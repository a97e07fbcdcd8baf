package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"smokebin/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestEventAppend_FillsDefaults(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewEventSQLite(db)

	// Generated id and current timestamp are unknown; match shape and the
	// normalized event type.
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO device_events (id, device_id, event_type, occurred_at, data)`)).
		WithArgs(sqlmock.AnyArg(), "SB001", "drop", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	stored, err := repo.Append(ctx(t), models.Event{
		DeviceID:  "SB001",
		EventType: "  DROP ",
		Data:      map[string]any{"battery": 87},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if stored.ID == "" {
		t.Fatalf("expected generated id")
	}
	if stored.Timestamp.IsZero() {
		t.Fatalf("expected timestamp default")
	}
	if stored.EventType != "drop" {
		t.Fatalf("expected normalized type, got %q", stored.EventType)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestEventAppend_KeepsExplicitValues(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewEventSQLite(db)

	ts := time.Date(2025, 8, 27, 10, 30, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO device_events").
		WithArgs("ev-1", "SB001", "full", "2025-08-27 10:30:00", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	stored, err := repo.Append(ctx(t), models.Event{
		ID:        "ev-1",
		DeviceID:  "SB001",
		EventType: "full",
		Timestamp: ts,
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if stored.ID != "ev-1" || !stored.Timestamp.Equal(ts) {
		t.Fatalf("explicit values altered: %+v", stored)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestEventAppend_DBError(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewEventSQLite(db)

	mock.ExpectExec("INSERT INTO device_events").
		WillReturnError(errors.New("down"))

	_, err := repo.Append(ctx(t), models.Event{DeviceID: "SB001", EventType: "drop"})
	if err == nil || !strings.Contains(err.Error(), "down") {
		t.Fatalf("expected error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestEventList_RangeArgsAndDataParsing(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewEventSQLite(db)

	from := time.Date(2025, 8, 27, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 8, 27, 23, 59, 59, 0, time.UTC)

	query := `SELECT id, device_id, event_type, occurred_at, data FROM device_events WHERE device_id = ? AND occurred_at >= ? AND occurred_at <= ? ORDER BY occurred_at DESC`
	rows := sqlmock.NewRows([]string{"id", "device_id", "event_type", "occurred_at", "data"}).
		AddRow("ev-2", "SB001", "drop", to.Add(-time.Hour), `{"simulated":true}`).
		AddRow("ev-1", "SB001", "full", from.Add(time.Hour), nil)

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs("SB001", "2025-08-27 00:00:00", "2025-08-27 23:59:59").
		WillReturnRows(rows)

	got, err := repo.List(ctx(t), "SB001", from, to)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2, got %d", len(got))
	}
	if sim, _ := got[0].Data["simulated"].(bool); !sim {
		t.Fatalf("data not parsed: %+v", got[0].Data)
	}
	if got[1].Data != nil {
		t.Fatalf("expected nil data, got %#v", got[1].Data)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestEventList_NoBounds(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewEventSQLite(db)

	query := `SELECT id, device_id, event_type, occurred_at, data FROM device_events WHERE device_id = ? ORDER BY occurred_at DESC`
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs("SB001").
		WillReturnRows(sqlmock.NewRows([]string{"id", "device_id", "event_type", "occurred_at", "data"}))

	got, err := repo.List(ctx(t), "SB001", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("want empty, got %+v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestEventList_ScanError(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewEventSQLite(db)

	rows := sqlmock.NewRows([]string{"id", "device_id", "event_type", "occurred_at", "data"}).
		// occurred_at wrong type to force scan error
		AddRow("ev-1", "SB001", "drop", "not a time", nil)

	mock.ExpectQuery("SELECT id, device_id, event_type, occurred_at, data FROM device_events").
		WillReturnRows(rows)

	_, err := repo.List(ctx(t), "SB001", time.Time{}, time.Time{})
	if err == nil {
		t.Fatalf("expected scan error, got nil")
	}
}

func TestEventCount_KindAndRange(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewEventSQLite(db)

	from := time.Date(2025, 8, 27, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 8, 27, 14, 0, 0, 0, time.UTC)

	query := `SELECT COUNT(*) FROM device_events WHERE device_id = ? AND event_type = ? AND occurred_at >= ? AND occurred_at <= ?`
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs("SB001", "drop", "2025-08-27 00:00:00", "2025-08-27 14:00:00").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := repo.Count(ctx(t), "SB001", " DROP ", from, to)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 7 {
		t.Fatalf("got %d, want 7", n)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}
