package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// months maps lowercase English month names and Russian genitive forms
// to month numbers. Pages render one of the two depending on the
// session locale.
var months = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,

	"января": time.January, "февраля": time.February, "марта": time.March,
	"апреля": time.April, "мая": time.May, "июня": time.June,
	"июля": time.July, "августа": time.August, "сентября": time.September,
	"октября": time.October, "ноября": time.November, "декабря": time.December,
}

var ordinalSuffix = regexp.MustCompile(`(\d+)(st|nd|rd|th)`)

var publishedPrefixes = []string{"Published:", "Опубликовано:"}
var memberPrefixes = []string{"Member Since:", "Участник с:", "На Behance с:"}

// PublishedDate parses a project publish sentence in either language:
//
//	EN: "Published: January 13th 2026"
//	RU: "Опубликовано: 13 января 2026 г."
//
// It returns the ISO calendar date, the ISO weekday (Monday=1..Sunday=7)
// and whether parsing succeeded. The hour of day is not rendered on the
// page and is never derived.
func PublishedDate(text string) (iso string, weekday int, ok bool) {
	d, ok := parseDateSentence(text, publishedPrefixes)
	if !ok {
		return "", 0, false
	}
	return d.Format("2006-01-02"), isoWeekday(d), true
}

// MemberSince parses a profile membership sentence in either language:
//
//	EN: "Member Since: February 12, 2024"
//	RU: "На Behance с: 12 февраля 2024 г."
//
// It returns the ISO calendar date and whether parsing succeeded.
func MemberSince(text string) (iso string, ok bool) {
	d, ok := parseDateSentence(text, memberPrefixes)
	if !ok {
		return "", false
	}
	return d.Format("2006-01-02"), true
}

func parseDateSentence(text string, prefixes []string) (time.Time, bool) {
	if text == "" {
		return time.Time{}, false
	}
	for _, p := range prefixes {
		text = strings.ReplaceAll(text, p, "")
	}
	text = strings.ReplaceAll(text, "г.", "")
	text = strings.ReplaceAll(text, ",", "")
	text = ordinalSuffix.ReplaceAllString(text, "$1")

	parts := strings.Fields(text)
	if len(parts) < 3 {
		return time.Time{}, false
	}

	// RU order: "13 января 2026".
	if month, found := months[strings.ToLower(parts[1])]; found {
		if d, ok := makeDate(parts[2], month, parts[0]); ok {
			return d, true
		}
	}

	// EN order: "January 13 2026".
	month, found := months[strings.ToLower(parts[0])]
	if !found {
		return time.Time{}, false
	}
	return makeDate(parts[2], month, parts[1])
}

func makeDate(yearStr string, month time.Month, dayStr string) (time.Time, bool) {
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return time.Time{}, false
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// time.Date normalises out-of-range days; reject those.
	if d.Day() != day || d.Month() != month || d.Year() != year {
		return time.Time{}, false
	}
	return d, true
}

// isoWeekday converts Go's Sunday=0 weekday to ISO-8601 Monday=1..Sunday=7.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// DaysSince returns the fractional days elapsed from an ISO date (as
// produced by PublishedDate) to now, rounded to two decimal places.
func DaysSince(iso string, now time.Time) (float64, bool) {
	d, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return 0, false
	}
	days := now.UTC().Sub(d).Seconds() / 86400
	v, err := strconv.ParseFloat(fmt.Sprintf("%.2f", days), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
