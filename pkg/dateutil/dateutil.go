package dateutil

import (
	"time"
)

// Age calculates the age in whole years at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// DateAtAge returns the date on which a person born on birthDate reaches the
// given age in years. The birth month and day are preserved.
func DateAtAge(birthDate time.Time, years int) time.Time {
	return birthDate.AddDate(years, 0, 0)
}

// MonthsBetween calculates the difference in whole calendar months between two
// (year, month) pairs, computed as (yearB*12+monthB) - (yearA*12+monthA).
// The result is negative when the end precedes the start; callers that need a
// clamped value must clamp themselves.
func MonthsBetween(yearA, monthA, yearB, monthB int) int {
	return (yearB*12 + monthB) - (yearA*12 + monthA)
}

// MonthsBetweenDates calculates the whole-calendar-month difference between
// two dates, ignoring the day of month.
func MonthsBetweenDates(from, to time.Time) int {
	return MonthsBetween(from.Year(), int(from.Month()), to.Year(), int(to.Month()))
}

// AddMonths advances a (year, month) pair by n months, normalizing the month
// into 1..12 and carrying into the year.
func AddMonths(year, month, n int) (int, int) {
	total := month - 1 + n
	return year + total/12, total%12 + 1
}

// MonthIndex returns a single comparable ordinal for a (year, month) pair.
func MonthIndex(year, month int) int {
	return year*12 + month
}

// SameMonth reports whether a date falls in the given (year, month).
func SameMonth(t time.Time, year, month int) bool {
	return t.Year() == year && int(t.Month()) == month
}

// IsLeapYear checks if a year is a leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns the number of days in a given year
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// AddYears adds a specified number of years to a date
func AddYears(date time.Time, years int) time.Time {
	return date.AddDate(years, 0, 0)
}

// BeginningOfMonth returns the first day of the month for a given date
func BeginningOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}
