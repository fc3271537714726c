package shared

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Run("date only", func(t *testing.T) {
		got, err := ParseDate("2026-03-15")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Year() != 2026 || got.Month() != time.March || got.Day() != 15 {
			t.Fatalf("parsed %v", got)
		}
	})

	t.Run("rfc3339", func(t *testing.T) {
		got, err := ParseDate("2026-03-15T10:30:00Z")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Hour() != 10 {
			t.Fatalf("parsed %v", got)
		}
	})

	t.Run("empty is zero", func(t *testing.T) {
		got, err := ParseDate("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.IsZero() {
			t.Fatalf("parsed %v, want zero", got)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := ParseDate("15/03/2026"); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestValidatorRequired(t *testing.T) {
	v := NewValidator()
	v.Required("name", "  ", "name is required")
	v.Required("role", "hr", "role is required")
	if !v.HasIssues() {
		t.Fatal("expected issues")
	}
	issues := v.Issues()
	if len(issues) != 1 || issues[0].Field != "name" {
		t.Fatalf("issues = %+v", issues)
	}
}

func TestValidatorEnum(t *testing.T) {
	allowed := []string{"hr", "committee", "evaluatee"}

	v := NewValidator()
	v.Enum("role", "Committee", allowed, "unknown role")
	if v.HasIssues() {
		t.Fatalf("case-insensitive match rejected: %+v", v.Issues())
	}

	v = NewValidator()
	v.Enum("role", "manager", allowed, "unknown role")
	if !v.HasIssues() {
		t.Fatal("expected issue for unknown value")
	}

	// Empty values are for Required to catch.
	v = NewValidator()
	v.Enum("role", "", allowed, "unknown role")
	if v.HasIssues() {
		t.Fatal("empty value must not trip the enum check")
	}
}

func TestValidatorRange(t *testing.T) {
	v := NewValidator()
	v.Range("weight", 100, 0, 100, "out of range")
	v.Range("weight2", 100.5, 0, 100, "out of range")
	issues := v.Issues()
	if len(issues) != 1 || issues[0].Field != "weight2" {
		t.Fatalf("issues = %+v", issues)
	}
}

func TestValidatorDateOrder(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	v := NewValidator()
	v.DateOrder("startDate", start, "endDate", end)
	if len(v.Issues()) != 2 {
		t.Fatalf("issues = %+v", v.Issues())
	}

	v = NewValidator()
	v.DateOrder("startDate", end, "endDate", start)
	if v.HasIssues() {
		t.Fatalf("ordered dates rejected: %+v", v.Issues())
	}

	v = NewValidator()
	v.DateOrder("startDate", time.Time{}, "endDate", end)
	if v.HasIssues() {
		t.Fatal("zero dates must be skipped")
	}
}

func TestValidatorReject(t *testing.T) {
	v := NewValidator()
	rec := httptest.NewRecorder()
	if v.Reject(rec, "req-1") {
		t.Fatal("clean validator must not reject")
	}

	v.Add("field", "broken")
	rec = httptest.NewRecorder()
	if !v.Reject(rec, "req-1") {
		t.Fatal("expected rejection")
	}
	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
