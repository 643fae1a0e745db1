package chat

import (
	"testing"
	"time"
)

func TestClassifyLine_Header(t *testing.T) {
	h, ok := ClassifyLine("[15/3/2024, 14:30:00] Alice: hello there")
	if !ok {
		t.Fatal("expected header match")
	}
	if h.Sender != "Alice" {
		t.Errorf("sender = %q, want %q", h.Sender, "Alice")
	}
	if h.Body != "hello there" {
		t.Errorf("body = %q, want %q", h.Body, "hello there")
	}
	want := time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)
	if !h.Timestamp.Equal(want) {
		t.Errorf("timestamp = %v, want %v", h.Timestamp, want)
	}
}

func TestClassifyLine_UnpaddedDayMonthHour(t *testing.T) {
	h, ok := ClassifyLine("[1/1/2024, 9:00:00] Bob: hi")
	if !ok {
		t.Fatal("expected header match")
	}
	if h.Timestamp.Month() != time.January {
		t.Errorf("month = %v, want January", h.Timestamp.Month())
	}
	if h.Timestamp.Hour() != 9 {
		t.Errorf("hour = %d, want 9", h.Timestamp.Hour())
	}

	h, ok = ClassifyLine("[31/12/2024, 23:59:59] Bob: bye")
	if !ok {
		t.Fatal("expected header match")
	}
	if h.Timestamp.Month() != time.December {
		t.Errorf("month = %v, want December", h.Timestamp.Month())
	}
}

func TestClassifyLine_TwoDigitYear(t *testing.T) {
	h, ok := ClassifyLine("[5/6/24, 8:15:30] Carol: short year")
	if !ok {
		t.Fatal("expected header match")
	}
	if h.Timestamp.Year() != 2024 {
		t.Errorf("year = %d, want 2024", h.Timestamp.Year())
	}
}

func TestClassifyLine_SenderWithSpaces(t *testing.T) {
	h, ok := ClassifyLine("[1/1/2024, 9:00:00] Alice Smith: msg")
	if !ok {
		t.Fatal("expected header match")
	}
	if h.Sender != "Alice Smith" {
		t.Errorf("sender = %q, want %q", h.Sender, "Alice Smith")
	}
}

func TestClassifyLine_Continuation(t *testing.T) {
	cases := []string{
		"just some text",
		"",
		"1/1/2024, 9:00:00 Alice: no brackets",
		"[not a date] Alice: nope",
		"[1/1/2024] Alice: missing time",
	}
	for _, line := range cases {
		if _, ok := ClassifyLine(line); ok {
			t.Errorf("ClassifyLine(%q) matched, want continuation", line)
		}
	}
}

func TestClassifyLine_InvalidDate(t *testing.T) {
	// Matches the shape but is not a real calendar date.
	if _, ok := ClassifyLine("[32/13/2024, 9:00:00] Alice: hm"); ok {
		t.Error("expected invalid calendar date to be rejected")
	}
}
