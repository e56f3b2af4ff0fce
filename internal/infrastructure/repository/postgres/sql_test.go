package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
)

func TestPQErrorClassification(t *testing.T) {
	t.Run("unique violation through wrapping", func(t *testing.T) {
		err := fmt.Errorf("insert user: %w", &pq.Error{Code: "23505"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected unique violation")
		}
		if isUndefinedTable(err) {
			t.Fatalf("unique violation misread as undefined table")
		}
	})

	t.Run("undefined table", func(t *testing.T) {
		if !isUndefinedTable(&pq.Error{Code: "42P01"}) {
			t.Fatalf("expected undefined table")
		}
	})

	t.Run("foreign key violation", func(t *testing.T) {
		if !isForeignKeyViolation(&pq.Error{Code: "23503"}) {
			t.Fatalf("expected foreign key violation")
		}
	})

	t.Run("plain error has no code", func(t *testing.T) {
		if code := pqCode(fakeErr("boom")); code != "" {
			t.Fatalf("unexpected code %q", code)
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("other")) {
		t.Fatalf("unexpected not found")
	}
}

func TestOptionalHelpers(t *testing.T) {
	if optionalString("   ") != nil {
		t.Fatalf("blank string should be nil")
	}
	if got := optionalString(" Leeds "); got == nil || *got != "Leeds" {
		t.Fatalf("unexpected trimmed value: %v", got)
	}

	dob := time.Date(2004, time.May, 17, 0, 0, 0, 0, time.UTC)
	if got := optionalDate(&dob); got == nil || *got != "2004-05-17" {
		t.Fatalf("unexpected date: %v", got)
	}
	if optionalDate(nil) != nil {
		t.Fatalf("nil date should stay nil")
	}

	if nullInt64Ptr(sql.NullInt64{}) != nil {
		t.Fatalf("null int should be nil")
	}
	if got := nullInt64Ptr(sql.NullInt64{Int64: 9, Valid: true}); got == nil || *got != 9 {
		t.Fatalf("unexpected int: %v", got)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
