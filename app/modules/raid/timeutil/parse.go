// Package raidtime converts user-entered schedule text into UTC timestamps.
package raidtime

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"
)

// TimeParserInterface defines the methods for schedule parsing and timezone
// handling.
type TimeParserInterface interface {
	ResolveTimezone(input string) (string, bool)
	ParseScheduleInput(input string, timezone string, clock Clock) (time.Time, error)
}

// TimeParser holds the timezone mappings and implements TimeParserInterface.
type TimeParser struct {
	TimezoneMap map[string]string
}

// NewTimeParser creates a TimeParser with the European realm timezones plus
// the common NA abbreviations.
func NewTimeParser() *TimeParser {
	return &TimeParser{
		TimezoneMap: map[string]string{
			"CET":  "Europe/Paris",
			"CEST": "Europe/Paris",
			"GMT":  "Europe/London",
			"BST":  "Europe/London",
			"EET":  "Europe/Helsinki",
			"EEST": "Europe/Helsinki",
			"MSK":  "Europe/Moscow",
			"PST":  "America/Los_Angeles",
			"PDT":  "America/Los_Angeles",
			"EST":  "America/New_York",
			"EDT":  "America/New_York",
		},
	}
}

// ResolveTimezone maps an abbreviation or full IANA name to an IANA zone.
func (tp *TimeParser) ResolveTimezone(input string) (string, bool) {
	inputUpper := strings.ToUpper(strings.TrimSpace(input))

	for _, fullName := range tp.TimezoneMap {
		if inputUpper == strings.ToUpper(fullName) {
			return fullName, true
		}
	}
	if fullName, exists := tp.TimezoneMap[inputUpper]; exists {
		return fullName, true
	}
	return "", false
}

var compactTimePattern = regexp.MustCompile(`(\d{1,2})(\d{2})(am|pm)`)

// ParseScheduleInput parses user-provided schedule text ("wednesday 19:30",
// "tomorrow 8pm") in the given timezone and returns the UTC time. The result
// must be in the future relative to the clock.
func (tp *TimeParser) ParseScheduleInput(input string, timezone string, clock Clock) (time.Time, error) {
	zone, found := tp.ResolveTimezone(timezone)
	if !found {
		return time.Time{}, fmt.Errorf("invalid timezone: %s", timezone)
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to load timezone: %s", timezone)
	}

	input = strings.ToLower(strings.TrimSpace(input))
	input = strings.ReplaceAll(input, "today ", "today at ")
	// "830pm" -> "8:30 pm"
	input = compactTimePattern.ReplaceAllString(input, "$1:$2 $3")

	w := when.New(nil)
	w.Add(en.All...)

	r, err := w.Parse(input, clock.Now().In(loc))
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse schedule input %q: %w", input, err)
	}
	if r == nil {
		// Fall back to "Monday 3:04 PM" within the current week.
		manual := fmt.Sprintf("%s %s", clock.Now().Weekday().String(), input)
		parsed, err := time.ParseInLocation("Monday 3:04 PM", manual, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("could not recognize schedule format: %s", input)
		}
		return parsed.UTC(), nil
	}

	parsed := r.Time.In(loc).Truncate(time.Minute)
	now := clock.Now().In(loc).Truncate(time.Minute)
	if parsed.Before(now) {
		return time.Time{}, fmt.Errorf("scheduled time must be in the future (parsed: %s, now: %s)", parsed, now)
	}
	return parsed.UTC(), nil
}
