package output

import (
	"testing"
	"time"
)

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{15728640, "15,728,640"},
		{1234567890123, "1,234,567,890,123"},
	}
	for _, tt := range tests {
		if got := FormatCount(tt.in); got != tt.want {
			t.Errorf("FormatCount(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripExtension(t *testing.T) {
	tests := map[string]string{
		"Program Book.pdf": "Program Book",
		"Program Book":     "Program Book",
		"archive.tar.gz":   "archive.tar",
		".hidden":          ".hidden",
		"trailing.":        "trailing",
		"":                 "",
	}
	for in, want := range tests {
		if got := StripExtension(in); got != want {
			t.Errorf("StripExtension(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestJoinItems(t *testing.T) {
	got := joinItems([]string{"PR 1.pdf", "PR 2.PDF", "Flyer"})
	want := "PR 1, PR 2, Flyer"
	if got != want {
		t.Errorf("joinItems() = %q, want %q", got, want)
	}
}

func TestDateRange(t *testing.T) {
	got := dateRange(time.Date(2021, 2, 3, 0, 0, 0, 0, time.UTC), time.Date(2021, 12, 25, 18, 0, 0, 0, time.UTC))
	want := "February 03, 2021 -- December 25, 2021"
	if got != want {
		t.Errorf("dateRange() = %q, want %q", got, want)
	}
}
