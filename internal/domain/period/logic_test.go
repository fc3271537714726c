package period

import (
	"testing"
	"time"
)

func day(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     string
		want                           bool
	}{
		{"disjoint before", "2025-01-01", "2025-03-31", "2025-04-01", "2025-06-30", false},
		{"disjoint after", "2025-07-01", "2025-09-30", "2025-04-01", "2025-06-30", false},
		{"shared boundary day", "2025-01-01", "2025-06-30", "2025-06-30", "2025-12-31", true},
		{"partial overlap", "2025-01-01", "2025-05-15", "2025-05-01", "2025-08-31", true},
		{"candidate contains existing", "2025-01-01", "2025-12-31", "2025-04-01", "2025-06-30", true},
		{"existing contains candidate", "2025-04-01", "2025-06-30", "2025-01-01", "2025-12-31", true},
		{"identical", "2025-01-01", "2025-06-30", "2025-01-01", "2025-06-30", true},
	}
	for _, tc := range cases {
		got := Overlaps(day(tc.aStart), day(tc.aEnd), day(tc.bStart), day(tc.bEnd))
		if got != tc.want {
			t.Fatalf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIsOpen(t *testing.T) {
	start, end := day("2025-01-01"), day("2025-06-30")

	if !IsOpen(true, start, end, day("2025-03-15")) {
		t.Fatal("expected open inside range")
	}
	if !IsOpen(true, start, end, day("2025-01-01")) {
		t.Fatal("expected open on start date")
	}
	if !IsOpen(true, start, end, day("2025-06-30")) {
		t.Fatal("expected open on end date")
	}
	if IsOpen(true, start, end, day("2025-07-01")) {
		t.Fatal("expected closed after end date")
	}
	if IsOpen(true, start, end, day("2024-12-31")) {
		t.Fatal("expected closed before start date")
	}
	if IsOpen(false, start, end, day("2025-03-15")) {
		t.Fatal("expected closed when inactive flag set")
	}
}

func TestIsOpenIgnoresTimeOfDay(t *testing.T) {
	start, end := day("2025-01-01"), day("2025-06-30")
	lateOnEndDate := time.Date(2025, 6, 30, 23, 59, 0, 0, time.UTC)
	if !IsOpen(true, start, end, lateOnEndDate) {
		t.Fatal("expected open at any time on the end date")
	}
}
