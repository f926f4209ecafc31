package assistant

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// defaultHour is used when a date cue comes without a time of day
const defaultHour = 10

var (
	clockPattern   = regexp.MustCompile(`\b(\d{1,2})(?::(\d{2}))?\s*(a\.?m\.?|p\.?m\.?)(?:[^a-z]|$)`)
	weekdayPattern = regexp.MustCompile(`\b(sunday|monday|tuesday|wednesday|thursday|friday|saturday)\b`)
	tomorrowWord   = regexp.MustCompile(`\btomorrow\b`)
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// absoluteLayouts are tried in order before falling back to phrase resolution
var absoluteLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// dateOnlyLayout is booked at defaultHour, like "tomorrow"
const dateOnlyLayout = "2006-01-02"

// HasRelativeCue reports whether phrase carries a date or time cue that
// ResolveRelativeTime understands.
func HasRelativeCue(phrase string) bool {
	p := strings.ToLower(phrase)
	if tomorrowWord.MatchString(p) || weekdayPattern.MatchString(p) {
		return true
	}
	_, _, ok := parseClock(p)
	return ok
}

// ResolveRelativeTime turns a natural-language phrase into an instant relative
// to anchor. The result is in the anchor's location.
//
//   - "tomorrow" is the next calendar day, at 10:00 when no time is given
//   - a weekday name is its next occurrence strictly after the anchor's day
//   - a time alone is today at that time, or tomorrow if that is not after anchor
//   - a phrase with no cue resolves to one hour after anchor
func ResolveRelativeTime(phrase string, anchor time.Time) time.Time {
	p := strings.ToLower(phrase)
	hour, minute, hasClock := parseClock(p)

	day := now.With(anchor).BeginningOfDay()
	hasDate := true
	switch {
	case tomorrowWord.MatchString(p):
		day = day.AddDate(0, 0, 1)
	case weekdayPattern.MatchString(p):
		target := weekdays[weekdayPattern.FindString(p)]
		diff := (int(target) - int(anchor.Weekday()) + 7) % 7
		if diff == 0 {
			diff = 7
		}
		day = day.AddDate(0, 0, diff)
	default:
		hasDate = false
	}

	if hasDate {
		if !hasClock {
			hour, minute = defaultHour, 0
		}
		return at(day, hour, minute)
	}

	if hasClock {
		t := at(day, hour, minute)
		if !t.After(anchor) {
			t = at(day.AddDate(0, 0, 1), hour, minute)
		}
		return t
	}

	return anchor.Add(time.Hour)
}

// FormatInstant renders t as an ISO 8601 timestamp with offset
func FormatInstant(t time.Time) string {
	return t.Format(time.RFC3339)
}

// ParseDateTime interprets a dateTime slot. Absolute timestamps are parsed
// first; a timestamp without offset is read in the anchor's location. Relative
// phrases are resolved against anchor. ok is false when raw is neither.
func ParseDateTime(raw string, anchor time.Time) (t time.Time, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range absoluteLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, anchor.Location()); err == nil {
			return parsed, true
		}
	}
	if day, err := time.ParseInLocation(dateOnlyLayout, raw, anchor.Location()); err == nil {
		return at(day, defaultHour, 0), true
	}

	if HasRelativeCue(raw) {
		return ResolveRelativeTime(raw, anchor), true
	}
	return time.Time{}, false
}

// parseClock extracts a 12-hour clock time ("3 PM", "4:30 p.m.") as 24-hour values
func parseClock(p string) (hour, minute int, ok bool) {
	m := clockPattern.FindStringSubmatch(p)
	if m == nil {
		return 0, 0, false
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil || hour < 1 || hour > 12 {
		return 0, 0, false
	}
	if m[2] != "" {
		minute, err = strconv.Atoi(m[2])
		if err != nil || minute > 59 {
			return 0, 0, false
		}
	}

	pm := strings.HasPrefix(m[3], "p")
	switch {
	case pm && hour != 12:
		hour += 12
	case !pm && hour == 12:
		hour = 0
	}
	return hour, minute, true
}

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}
