package domain

import "time"

const DateLayout = "2006-01-02"

// DayWindow returns the bounds of the reporting day for date in loc.
// The upper bound is 23:59:59 and is exclusive, so the final second of the
// day belongs to no window.
func DayWindow(date time.Time, loc *time.Location) (start, end time.Time) {
	y, m, d := date.In(loc).Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, loc)
	end = time.Date(y, m, d, 23, 59, 59, 0, loc)
	return start, end
}

func InDayWindow(t, date time.Time, loc *time.Location) bool {
	start, end := DayWindow(date, loc)
	return !t.Before(start) && t.Before(end)
}

// ParseDate parses YYYY-MM-DD in loc. Empty input means today.
func ParseDate(s string, loc *time.Location, now time.Time) (time.Time, error) {
	if s == "" {
		return now.In(loc), nil
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}
