package helper

import (
	"errors"
	"time"
)

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// ParseDateYMD parses a "YYYY-MM-DD" string as a civil date in loc.
func ParseDateYMD(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// WeekWindow turns a [weekStart, weekEnd] date pair into the inclusive
// instant window [weekStart 00:00:00, weekEnd 23:59:59] in loc.
func WeekWindow(weekStart, weekEnd string, loc *time.Location) (time.Time, time.Time, error) {
	from, err := ParseDateYMD(weekStart, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	toDay, err := ParseDateYMD(weekEnd, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to := time.Date(toDay.Year(), toDay.Month(), toDay.Day(), 23, 59, 59, 0, loc)
	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("weekEnd before weekStart")
	}
	return from, to, nil
}

// EndOfNextYear is the series-expansion horizon: 31 Dec 23:59:59 of the
// calendar year after now, in loc.
func EndOfNextYear(now time.Time, loc *time.Location) time.Time {
	return time.Date(now.In(loc).Year()+1, time.December, 31, 23, 59, 59, 0, loc)
}
