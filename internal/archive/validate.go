package archive

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// YearRange is the selectable year span of the archive.
type YearRange struct {
	Min int
	Max int
}

// Contains reports whether year falls inside the range.
func (r YearRange) Contains(year int) bool {
	return year >= r.Min && year <= r.Max
}

// RawQuery carries the user's form fields exactly as entered. Validation
// operates on the raw strings: the two-digit limit is a literal length
// check, so "007" is rejected even though the value 7 would be in range.
type RawQuery struct {
	Year   string
	Month  string
	Day    string
	Hour   string
	Minute string
}

// ParseQuery validates every field of a raw query and builds a Query.
// Checks run in order month, year, day, hour, minute; the first failure
// aborts the request.
func ParseQuery(raw RawQuery, years YearRange) (Query, error) {
	month, err := ParseMonth(raw.Month)
	if err != nil {
		return Query{}, err
	}
	year, err := ParseYear(raw.Year, years)
	if err != nil {
		return Query{}, err
	}
	day, err := ParseDay(raw.Day, year, month)
	if err != nil {
		return Query{}, err
	}
	hour, err := parseClockField(raw.Hour, "hour", 23)
	if err != nil {
		return Query{}, err
	}
	minute, err := parseClockField(raw.Minute, "minute", 59)
	if err != nil {
		return Query{}, err
	}
	return Query{Year: year, Month: month, Day: day, Hour: hour, Minute: minute}, nil
}

// ParseMonth accepts a selected month in 1..12.
func ParseMonth(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if s == "" || err != nil || n < 1 || n > 12 {
		return 0, &MissingFieldError{Field: "month"}
	}
	return n, nil
}

// ParseYear accepts a selected year within the supported range.
func ParseYear(s string, years YearRange) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if s == "" || err != nil || !years.Contains(n) {
		return 0, &MissingFieldError{Field: "year"}
	}
	return n, nil
}

// ParseDay accepts a day of the given month: at most two digits and within
// the Gregorian length of the month.
func ParseDay(s string, year, month int) (int, error) {
	if s == "" {
		return 0, &MissingFieldError{Field: "day"}
	}
	if len(s) > 2 {
		return 0, &InvalidRangeError{Field: "day", Reason: "must have at most 2 digits"}
	}
	max := DaysInMonth(year, month)
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > max {
		return 0, &InvalidRangeError{
			Field:  "day",
			Reason: fmt.Sprintf("must be between 1 and %d for month %02d", max, month),
		}
	}
	return n, nil
}

// parseClockField accepts hour/minute style fields: at most two digits,
// 0..max inclusive.
func parseClockField(s, field string, max int) (int, error) {
	if s == "" {
		return 0, &MissingFieldError{Field: field}
	}
	if len(s) > 2 {
		return 0, &InvalidRangeError{Field: field, Reason: "must have at most 2 digits"}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > max {
		return 0, &InvalidRangeError{
			Field:  field,
			Reason: fmt.Sprintf("must be between 0 and %d", max),
		}
	}
	return n, nil
}

// DaysInMonth returns the number of days in the given Gregorian month,
// leap years included. Day 0 of the following month normalizes to the last
// day of this one.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
