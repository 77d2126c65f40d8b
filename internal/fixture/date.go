package fixture

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parse failures are skip signals, not fatal errors: callers drop the row
// and continue with the rest of the table.
var (
	ErrEmptyDate   = errors.New("empty date phrase")
	ErrNoDay       = errors.New("no day number in date phrase")
	ErrNoMonth     = errors.New("no recognizable month in date phrase")
	ErrInvalidDate = errors.New("day out of range for month")
)

// Spanish three-letter month abbreviations as ESPN Argentina renders them.
var spanishMonths = []struct {
	abbrev string
	month  time.Month
}{
	{"ene", time.January},
	{"feb", time.February},
	{"mar", time.March},
	{"abr", time.April},
	{"may", time.May},
	{"jun", time.June},
	{"jul", time.July},
	{"ago", time.August},
	{"sep", time.September},
	{"oct", time.October},
	{"nov", time.November},
	{"dic", time.December},
}

// Sentinels ESPN uses when kickoff time is not yet announced.
var unknownTimes = map[string]bool{
	"P.A.":    true,
	"TBD":     true,
	"-":       true,
	"A conf.": true,
}

var (
	dayPattern   = regexp.MustCompile(`\d{1,2}`)
	clockPattern = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
)

// ParseKickoff normalizes a scraped date phrase ("Dom., 1 de Feb.") and time
// phrase ("9:30 PM", "21:30", "P.A.") into an absolute timestamp in loc.
//
// The first integer token is taken as the day of month and the first Spanish
// month abbreviation found as the month. The year is now's year, unless the
// month is more than one month behind now's month, in which case the fixture
// belongs to the next calendar year (schedules cross year boundaries without
// carrying a year field). Unknown-time sentinels resolve to 00:00.
func ParseKickoff(datePhrase, timePhrase string, now time.Time, loc *time.Location) (time.Time, error) {
	if strings.TrimSpace(datePhrase) == "" {
		return time.Time{}, ErrEmptyDate
	}

	dayText := dayPattern.FindString(datePhrase)
	if dayText == "" {
		return time.Time{}, ErrNoDay
	}
	day, err := strconv.Atoi(dayText)
	if err != nil || day == 0 {
		return time.Time{}, ErrNoDay
	}

	month, ok := findMonth(datePhrase)
	if !ok {
		return time.Time{}, ErrNoMonth
	}

	year := now.Year()
	if int(month) < int(now.Month())-1 {
		year++
	}

	hour, minute := parseClock(timePhrase)

	t := time.Date(year, month, day, hour, minute, 0, 0, loc)
	if t.Day() != day || t.Month() != month {
		// time.Date normalizes overflow (e.g. Feb 30) instead of failing.
		return time.Time{}, ErrInvalidDate
	}

	return t, nil
}

// findMonth scans the phrase for any Spanish month abbreviation, first match
// wins.
func findMonth(phrase string) (time.Month, bool) {
	lower := strings.ToLower(phrase)
	for _, m := range spanishMonths {
		if strings.Contains(lower, m.abbrev) {
			return m.month, true
		}
	}
	return 0, false
}

// parseClock extracts hour and minute from a time phrase. Sentinel values,
// empty phrases, and phrases without an H:MM token all resolve to midnight.
// A meridiem marker converts 12-hour to 24-hour; without one the hour is
// taken as already 24-hour.
func parseClock(phrase string) (hour, minute int) {
	trimmed := strings.TrimSpace(phrase)
	if trimmed == "" || unknownTimes[trimmed] {
		return 0, 0
	}

	upper := strings.ToUpper(trimmed)
	match := clockPattern.FindStringSubmatch(upper)
	if match == nil {
		return 0, 0
	}

	hour, _ = strconv.Atoi(match[1])
	minute, _ = strconv.Atoi(match[2])

	switch {
	case strings.Contains(upper, "PM") && hour != 12:
		hour += 12
	case strings.Contains(upper, "AM") && hour == 12:
		hour = 0
	}

	return hour, minute
}
