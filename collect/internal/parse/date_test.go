package parse

import (
	"testing"
	"time"
)

func TestPublishedDateBilingualEquivalence(t *testing.T) {
	// Same calendar date expressed in both languages must normalise to
	// the identical ISO date and ISO weekday.
	en, enWd, ok := PublishedDate("Published: January 13th 2026")
	if !ok {
		t.Fatal("EN sentence did not parse")
	}
	ru, ruWd, ok := PublishedDate("Опубликовано: 13 января 2026 г.")
	if !ok {
		t.Fatal("RU sentence did not parse")
	}
	if en != ru {
		t.Errorf("dates differ: EN %q, RU %q", en, ru)
	}
	if enWd != ruWd {
		t.Errorf("weekdays differ: EN %d, RU %d", enWd, ruWd)
	}
	if en != "2026-01-13" {
		t.Errorf("date = %q, want 2026-01-13", en)
	}
	// 2026-01-13 is a Tuesday.
	if enWd != 2 {
		t.Errorf("weekday = %d, want 2", enWd)
	}
}

func TestPublishedDate(t *testing.T) {
	tests := []struct {
		in       string
		wantISO  string
		wantWd   int
		wantOK   bool
	}{
		{"Published: March 1st 2025", "2025-03-01", 6, true},
		{"Published: May 22nd 2024", "2024-05-22", 3, true},
		{"Опубликовано: 7 мая 2024 г.", "2024-05-07", 2, true},
		{"Published: nonsense text", "", 0, false},
		{"Опубликовано: 32 января 2026 г.", "", 0, false}, // day out of range
		{"", "", 0, false},
	}
	for _, tt := range tests {
		iso, wd, ok := PublishedDate(tt.in)
		if ok != tt.wantOK || iso != tt.wantISO || wd != tt.wantWd {
			t.Errorf("PublishedDate(%q) = (%q, %d, %v), want (%q, %d, %v)",
				tt.in, iso, wd, ok, tt.wantISO, tt.wantWd, tt.wantOK)
		}
	}
}

func TestMemberSince(t *testing.T) {
	tests := []struct {
		in      string
		wantISO string
		wantOK  bool
	}{
		{"Member Since: February 12, 2024", "2024-02-12", true},
		{"Участник с: 12 февраля 2024 г.", "2024-02-12", true},
		{"На Behance с: 3 июня 2021 г.", "2021-06-03", true},
		{"Member Since: yesterday", "", false},
	}
	for _, tt := range tests {
		iso, ok := MemberSince(tt.in)
		if ok != tt.wantOK || iso != tt.wantISO {
			t.Errorf("MemberSince(%q) = (%q, %v), want (%q, %v)",
				tt.in, iso, ok, tt.wantISO, tt.wantOK)
		}
	}
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC)
	got, ok := DaysSince("2026-01-13", now)
	if !ok {
		t.Fatal("DaysSince did not parse")
	}
	if got != 7.5 {
		t.Errorf("DaysSince = %v, want 7.5", got)
	}
	if _, ok := DaysSince("not-a-date", now); ok {
		t.Error("expected failure on garbage input")
	}
}
