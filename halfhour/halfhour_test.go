package halfhour

import (
	"errors"
	"testing"
	"time"
)

func TestFloor(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "already aligned",
			input:    time.Date(2025, 1, 1, 10, 30, 0, 0, time.UTC),
			expected: time.Date(2025, 1, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			name:     "first half",
			input:    time.Date(2025, 1, 1, 10, 14, 59, 0, time.UTC),
			expected: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			name:     "second half",
			input:    time.Date(2025, 1, 1, 10, 59, 59, 999, time.UTC),
			expected: time.Date(2025, 1, 1, 10, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Floor(tt.input); !got.Equal(tt.expected) {
				t.Errorf("Floor(%v) expected %v, got %v", tt.input, tt.expected, got)
			}
		})
	}
}

func TestKeyIgnoresLocation(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}
	utc := time.Date(2025, time.July, 1, 11, 30, 0, 0, time.UTC)
	local := utc.In(london)
	if Key(utc) != Key(local) {
		t.Errorf("expected equal keys for %v and %v", utc, local)
	}
}

func TestGridSpacing(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)

	grid, err := Grid(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(grid) != 97 {
		t.Fatalf("expected 97 buckets, got %d", len(grid))
	}
	if !grid[0].Equal(start) {
		t.Errorf("expected first bucket %v, got %v", start, grid[0])
	}
	if !grid[len(grid)-1].Equal(end) {
		t.Errorf("expected last bucket %v, got %v", end, grid[len(grid)-1])
	}
	for i := 1; i < len(grid); i++ {
		if d := grid[i].Sub(grid[i-1]); d != Length {
			t.Fatalf("bucket %d is %v after the previous one", i, d)
		}
		if grid[i].Before(start) || grid[i].After(end) {
			t.Fatalf("bucket %v outside window", grid[i])
		}
	}
}

func TestGridEndNotOnBoundary(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 1, 1, 10, 0, 0, time.UTC)

	grid, err := Grid(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(grid) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(grid))
	}
	if want := time.Date(2025, 1, 1, 1, 0, 0, 0, time.UTC); !grid[2].Equal(want) {
		t.Errorf("expected last bucket %v, got %v", want, grid[2])
	}
}

func TestGridKeepsLocation(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}
	start, end, err := Window(
		time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.July, 2, 0, 0, 0, 0, time.UTC),
		london)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	grid, err := Grid(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, b := range grid {
		if b.Location() != london {
			t.Fatalf("expected bucket in %v, got %v", london, b.Location())
		}
	}
	if grid[0].Hour() != 0 {
		t.Errorf("expected grid to start at local midnight, got %v", grid[0])
	}
}

func TestGridInvalidRange(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, end := range []time.Time{start, start.Add(-Length)} {
		_, err := Grid(start, end)
		var rangeErr *InvalidRangeError
		if !errors.As(err, &rangeErr) {
			t.Errorf("expected InvalidRangeError for end %v, got %v", end, err)
		}
	}
}

func TestWindowSameDate(t *testing.T) {
	d := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	_, _, err := Window(d, d, time.UTC)
	var rangeErr *InvalidRangeError
	if !errors.As(err, &rangeErr) {
		t.Errorf("expected InvalidRangeError, got %v", err)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-02-28", time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Equal(time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("got %v", d)
	}

	if _, err := ParseDate("28/02/2025", time.UTC); err == nil {
		t.Errorf("expected an error for a malformed date")
	}
}

func TestLabel(t *testing.T) {
	if err := SetGuiTimezone("UTC"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := Label(time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC))
	if got != "2025-01-01 09:30" {
		t.Errorf("got %q, wanted %q", got, "2025-01-01 09:30")
	}
}
